package cardgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dawitk/faydagen/pkg/carddata"
)

// CombineMode declares how a bilingual, newline-joined field value is
// laid out on the card.
type CombineMode string

const (
	// CombineStacked draws the two scripts on separate lines.
	CombineStacked CombineMode = "stacked"
	// CombineJoined draws them on one line with a bar separator.
	CombineJoined CombineMode = "joined"
)

// Placement declares where and how one text field is drawn, in design
// coordinates. All coordinates and the font size are multiplied by the
// template's uniform scale factor before drawing, so one table works
// across differently-sized template assets.
type Placement struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	MaxWidth float64 `yaml:"max_width"`

	FontSize   float64 `yaml:"font_size"`
	FontFamily string  `yaml:"font_family"`
	FontWeight string  `yaml:"font_weight"`

	Rotation float64     `yaml:"rotation"`
	Mode     CombineMode `yaml:"mode"`
}

// ImageSlot declares where one sub-image is drawn, in design
// coordinates. The sub-image is stretched to the slot's size.
type ImageSlot struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SideSpec is the full placement table for one card side, tied to the
// design resolution its coordinates were authored against.
type SideSpec struct {
	DesignWidth  float64 `yaml:"design_width"`
	DesignHeight float64 `yaml:"design_height"`

	Fields map[string]Placement `yaml:"fields"`
	Images map[string]ImageSlot `yaml:"images"`
}

// Design resolution of the built-in placement tables: CR80 card at
// 300dpi.
const (
	designWidth  = 1012
	designHeight = 638
)

// DefaultPlacements returns the built-in placement table for a side.
func DefaultPlacements(side carddata.Side) SideSpec {
	if side == carddata.SideBack {
		return SideSpec{
			DesignWidth:  designWidth,
			DesignHeight: designHeight,
			Fields: map[string]Placement{
				"phone":         {X: 60, Y: 120, MaxWidth: 420, FontSize: 26, FontFamily: "latin"},
				"region":        {X: 60, Y: 190, MaxWidth: 420, FontSize: 24, FontFamily: "ethiopic", Mode: CombineStacked},
				"zone":          {X: 60, Y: 280, MaxWidth: 420, FontSize: 24, FontFamily: "ethiopic", Mode: CombineStacked},
				"woreda":        {X: 60, Y: 370, MaxWidth: 420, FontSize: 24, FontFamily: "ethiopic", Mode: CombineStacked},
				"fin":           {X: 60, Y: 470, MaxWidth: 420, FontSize: 28, FontFamily: "latin", FontWeight: "bold"},
				"serial_number": {X: 60, Y: 540, MaxWidth: 420, FontSize: 22, FontFamily: "latin"},
				"date_of_birth": {
					X: 980, Y: 580, MaxWidth: 520, FontSize: 20,
					FontFamily: "latin", Rotation: 270,
				},
			},
			Images: map[string]ImageSlot{
				"qr_code": {X: 560, Y: 100, Width: 400, Height: 400},
			},
		}
	}
	return SideSpec{
		DesignWidth:  designWidth,
		DesignHeight: designHeight,
		Fields: map[string]Placement{
			"name":          {X: 330, Y: 150, MaxWidth: 620, FontSize: 30, FontFamily: "ethiopic", FontWeight: "bold", Mode: CombineStacked},
			"date_of_birth": {X: 330, Y: 270, MaxWidth: 620, FontSize: 24, FontFamily: "latin", Mode: CombineJoined},
			"sex":           {X: 330, Y: 330, MaxWidth: 620, FontSize: 24, FontFamily: "ethiopic", Mode: CombineJoined},
			"nationality":   {X: 330, Y: 390, MaxWidth: 620, FontSize: 24, FontFamily: "ethiopic", Mode: CombineJoined},
			"fcn":           {X: 330, Y: 560, MaxWidth: 620, FontSize: 34, FontFamily: "latin", FontWeight: "bold"},
		},
		Images: map[string]ImageSlot{
			"photo":     {X: 50, Y: 140, Width: 240, Height: 300},
			"signature": {X: 50, Y: 460, Width: 240, Height: 90},
			"barcode":   {X: 330, Y: 440, Width: 620, Height: 90},
		},
	}
}

// LoadPlacementTables reads per-side placement tables from a YAML
// file, overriding the compiled-in defaults for the sides it declares.
func LoadPlacementTables(path string) (map[carddata.Side]SideSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read placement table: %w", err)
	}

	var raw map[string]SideSpec
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse placement table: %w", err)
	}

	tables := map[carddata.Side]SideSpec{
		carddata.SideFront: DefaultPlacements(carddata.SideFront),
		carddata.SideBack:  DefaultPlacements(carddata.SideBack),
	}
	for side, spec := range raw {
		tables[carddata.Side(side)] = spec
	}
	return tables, nil
}
