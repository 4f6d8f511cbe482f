// faydagen is a command-line tool for digitizing a Fayda national ID
// PDF and rendering printable front/back card images from it.
//
// The tool extracts the bilingual profile record from the document's
// text layer (falling back to Google Document AI OCR for scanned
// documents when configured), cuts out the photo, barcode and date
// sub-images, re-encodes the optical codes, and composes the two card
// sides from template images.
//
// Usage:
//
//	faydagen -config config.yml -pdf id.pdf -out ./cards
//
// Required flags:
//
//	-config string  Path to the config YAML file
//	-pdf string     Path to the input ID document PDF
//	-out string     Output directory for rendered files
//
// Processing options:
//
//	-format string       Export format, png or jpeg (default png)
//	-jpeg-quality int    JPEG quality when -format=jpeg (default 90)
//	-print-sheet         Also write an A4 print sheet PDF of both sides
//	-profile             Also write the extracted profile record as JSON
//	-overwrite           Overwrite existing output files
//	-debug               Enable debug output
//
// Example config:
//
//	front_template: assets/front.png
//	back_template: assets/back.png
//	fonts:
//	  latin: assets/NotoSans-Regular.ttf
//	  latin-bold: assets/NotoSans-Bold.ttf
//	  ethiopic: assets/NotoSansEthiopic-Regular.ttf
//	  ethiopic-bold: assets/NotoSansEthiopic-Bold.ttf
//	region_table: assets/regions.yml
//	placement_table: assets/placements.yml
//	documentai:
//	  project_id: my-project
//	  location: eu
//	  processor_id: abc123
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dawitk/faydagen/pkg/cardgen"
	"github.com/dawitk/faydagen/pkg/pageraster"
	"github.com/dawitk/faydagen/pkg/pipeline"
	"github.com/dawitk/faydagen/pkg/visionai"
)

type yamlConfig struct {
	FrontTemplate  string            `yaml:"front_template"`
	BackTemplate   string            `yaml:"back_template"`
	Fonts          map[string]string `yaml:"fonts"`
	RegionTable    string            `yaml:"region_table"`
	PlacementTable string            `yaml:"placement_table"`
	DocumentAI     *visionai.Config  `yaml:"documentai"`
}

// loadConfig reads the YAML config and assembles the pipeline
// configuration from it, applying the built-in region and placement
// tables when no override files are named.
func loadConfig(path string) (pipeline.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Config{}, err
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return pipeline.Config{}, err
	}

	assets := cardgen.NewAssets(cardgen.AssetConfig{
		FrontTemplate: yc.FrontTemplate,
		BackTemplate:  yc.BackTemplate,
		Fonts:         yc.Fonts,
	})
	cfg := pipeline.DefaultConfig(assets)
	cfg.VisionAI = yc.DocumentAI

	if yc.RegionTable != "" {
		regions, err := pageraster.LoadRegionTables(yc.RegionTable)
		if err != nil {
			return pipeline.Config{}, err
		}
		cfg.Regions = regions
	}
	if yc.PlacementTable != "" {
		placements, err := cardgen.LoadPlacementTables(yc.PlacementTable)
		if err != nil {
			return pipeline.Config{}, err
		}
		cfg.Placements = placements
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "Path to the config YAML file (required)")
	pdfPath := flag.String("pdf", "", "Path to the input ID document PDF (required)")
	outDir := flag.String("out", "", "Output directory for rendered files (required)")
	format := flag.String("format", "png", "Export format, png or jpeg")
	jpegQuality := flag.Int("jpeg-quality", 90, "JPEG quality when -format=jpeg")
	printSheet := flag.Bool("print-sheet", false, "Also write an A4 print sheet PDF of both sides")
	writeProfile := flag.Bool("profile", false, "Also write the extracted profile record as JSON")
	overwrite := flag.Bool("overwrite", false, "Overwrite existing output files")
	debug := flag.Bool("debug", false, "Enable debug output")
	flag.Parse()

	if *configPath == "" || *pdfPath == "" || *outDir == "" {
		fmt.Fprintln(os.Stderr, "Error: -config, -pdf and -out flags are required")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.ExportFormat = *format
	cfg.JPEGQuality = *jpegQuality
	cfg.Debug = *debug
	cfg.Logger = os.Stderr

	pdfBytes, err := os.ReadFile(*pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading PDF: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	result, err := pipeline.DigitizeAndRender(context.Background(), pdfBytes, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outputs := map[string][]byte{
		result.FrontName: result.FrontImage,
		result.BackName:  result.BackImage,
	}
	if *writeProfile {
		profileJSON, err := json.MarshalIndent(result.Profile, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding profile: %v\n", err)
			os.Exit(1)
		}
		outputs["profile.json"] = profileJSON
	}
	if *printSheet {
		sheet, err := cardgen.PrintSheet(result.FrontImage, result.BackImage)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building print sheet: %v\n", err)
			os.Exit(1)
		}
		outputs["print_sheet.pdf"] = sheet
	}

	for name, data := range outputs {
		path := filepath.Join(*outDir, name)
		if _, err := os.Stat(path); err == nil && !*overwrite {
			fmt.Fprintf(os.Stderr, "Output file %s already exists. Use -overwrite to overwrite.\n", path)
			os.Exit(1)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	}
}
