package pageraster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dawitk/faydagen/pkg/carddata"
)

// RegionSpec declares one rectangular sub-image of a document page:
// where it lives in unscaled page units, the render scale, an optional
// rotation in degrees, and post-processing flags. Region tables are
// static configuration loaded at startup and never mutated.
type RegionSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	Scale    float64 `yaml:"scale"`
	Rotation float64 `yaml:"rotation"`

	RemoveBackground bool `yaml:"remove_background"`
	Grayscale        bool `yaml:"grayscale"`
}

// RegionTable maps slot names to region specs for one card side.
type RegionTable map[string]RegionSpec

// Slot names shared between the region tables, the codec merge step
// and the compositor's image placements.
const (
	SlotPhoto     = "photo"
	SlotBarcode   = "barcode"
	SlotQRCode    = "qr_code"
	SlotDateStrip = "date_strip"
	SlotSignature = "signature"
)

// DefaultRegions returns the region table for one side of the source
// document. Coordinates assume the base render of the standard
// single-page Fayda PDF; documents at a different resolution need a
// YAML override table.
func DefaultRegions(side carddata.Side) RegionTable {
	switch side {
	case carddata.SideBack:
		return RegionTable{
			SlotQRCode: {
				X: 360, Y: 40, Width: 180, Height: 180,
				Scale: 3, Grayscale: true,
			},
			SlotDateStrip: {
				X: 20, Y: 250, Width: 28, Height: 160,
				Scale: 3, Rotation: 270, Grayscale: true,
			},
		}
	default:
		return RegionTable{
			SlotPhoto: {
				X: 40, Y: 120, Width: 130, Height: 160,
				Scale: 3, RemoveBackground: true, Grayscale: true,
			},
			SlotBarcode: {
				X: 40, Y: 300, Width: 220, Height: 60,
				Scale: 3, Grayscale: true,
			},
			SlotSignature: {
				X: 40, Y: 380, Width: 130, Height: 50,
				Scale: 3, RemoveBackground: true, Grayscale: true,
			},
		}
	}
}

// LoadRegionTables reads per-side region tables from a YAML file,
// overriding the compiled-in defaults for the sides it declares.
func LoadRegionTables(path string) (map[carddata.Side]RegionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read region table: %w", err)
	}

	var raw map[string]RegionTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse region table: %w", err)
	}

	tables := map[carddata.Side]RegionTable{
		carddata.SideFront: DefaultRegions(carddata.SideFront),
		carddata.SideBack:  DefaultRegions(carddata.SideBack),
	}
	for side, table := range raw {
		tables[carddata.Side(side)] = table
	}
	return tables, nil
}
