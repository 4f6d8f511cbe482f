// Package pipeline wires the document-to-card flow together: glyph
// extraction, layout reconstruction, field extraction, region
// rasterization, optical code decode/re-encode, and card composition.
//
// One invocation is synchronous and owns all of its per-document
// state; the only shared state is the read-only configuration and the
// memoized template/font assets, so independent invocations can run
// concurrently without locking.
//
// Main function:
//
// - DigitizeAndRender: PDF bytes in, profile record + front/back card
//   images out
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/dawitk/faydagen/pkg/carddata"
	"github.com/dawitk/faydagen/pkg/cardgen"
	"github.com/dawitk/faydagen/pkg/fields"
	"github.com/dawitk/faydagen/pkg/optcode"
	"github.com/dawitk/faydagen/pkg/pageraster"
	"github.com/dawitk/faydagen/pkg/pagetext"
	"github.com/dawitk/faydagen/pkg/visionai"
)

var (
	// ErrExtractionFailed reports a document whose text yielded no
	// usable field at all.
	ErrExtractionFailed = errors.New("field extraction failed")
	// ErrRenderFailed reports that one of the two card sides could not
	// be composed or exported.
	ErrRenderFailed = errors.New("card rendering failed")
)

// Config is the read-only configuration of a pipeline instance,
// assembled once at startup.
type Config struct {
	Regions    map[carddata.Side]pageraster.RegionTable
	Placements map[carddata.Side]cardgen.SideSpec
	Assets     *cardgen.Assets

	// VisionAI, when configured, is the fallback glyph source for
	// scanned documents without a text layer.
	VisionAI *visionai.Config

	ExportFormat string // "png" (default) or "jpeg"
	JPEGQuality  int

	Debug  bool
	Logger io.Writer
}

// DefaultConfig returns a pipeline configuration with the built-in
// region and placement tables.
func DefaultConfig(assets *cardgen.Assets) Config {
	return Config{
		Regions: map[carddata.Side]pageraster.RegionTable{
			carddata.SideFront: pageraster.DefaultRegions(carddata.SideFront),
			carddata.SideBack:  pageraster.DefaultRegions(carddata.SideBack),
		},
		Placements: map[carddata.Side]cardgen.SideSpec{
			carddata.SideFront: cardgen.DefaultPlacements(carddata.SideFront),
			carddata.SideBack:  cardgen.DefaultPlacements(carddata.SideBack),
		},
		Assets:       assets,
		ExportFormat: "png",
	}
}

// Result is everything one invocation hands back: the profile record
// for persistence, the two rendered sides as raw bytes, and suggested
// filenames. Storage identity is the caller's concern.
type Result struct {
	Profile    *carddata.ProfileRecord
	FrontImage []byte
	BackImage  []byte
	FrontName  string
	BackName   string
}

// DigitizeAndRender runs the full document-to-card pipeline over one
// single-page card PDF.
func DigitizeAndRender(ctx context.Context, pdfBytes []byte, cfg Config) (*Result, error) {
	runs, err := glyphRuns(ctx, pdfBytes, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	lines := pagetext.ReconstructLines(runs)
	record, err := fields.Extract(lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	page, err := pageraster.RenderPage(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	subs, err := rasterizeRegions(page, cfg)
	if err != nil {
		return nil, err
	}

	mergeDecodedCodes(pdfBytes, record, subs, cfg)

	result := &Result{Profile: record}
	for side, out := range map[carddata.Side]*[]byte{
		carddata.SideFront: &result.FrontImage,
		carddata.SideBack:  &result.BackImage,
	} {
		img, err := cardgen.Compose(side, record, subs[side], cfg.Placements[side], cfg.Assets)
		if err != nil {
			return nil, fmt.Errorf("%w: side %s: %v", ErrRenderFailed, side, err)
		}
		data, err := cardgen.Export(img, cfg.ExportFormat, cfg.JPEGQuality)
		if err != nil {
			return nil, fmt.Errorf("%w: side %s: %v", ErrRenderFailed, side, err)
		}
		*out = data
	}

	base := suggestedBase(record)
	ext := strings.ToLower(cfg.ExportFormat)
	if ext == "" {
		ext = "png"
	}
	result.FrontName = fmt.Sprintf("%s_front.%s", base, ext)
	result.BackName = fmt.Sprintf("%s_back.%s", base, ext)
	return result, nil
}

// glyphRuns reads the PDF's own text layer, falling back to Document
// AI OCR when the document carries no usable glyphs.
func glyphRuns(ctx context.Context, pdfBytes []byte, cfg Config) ([]carddata.GlyphRun, error) {
	runs, err := pagetext.GlyphRuns(pdfBytes)
	if err == nil && len(runs) > 0 {
		return runs, nil
	}
	if !cfg.VisionAI.Enabled() {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("document has no text layer")
	}
	debugf(cfg, "pipeline: no text layer, falling back to Document AI\n")
	return visionai.GlyphRuns(ctx, pdfBytes, cfg.VisionAI)
}

// rasterizeRegions cuts every declared region of every side out of the
// rendered page. A region leaving the page bounds is configuration
// error and aborts the document, surfaced under the rendering error of
// the pipeline contract.
func rasterizeRegions(page *pageraster.Page, cfg Config) (map[carddata.Side]map[string]image.Image, error) {
	subs := make(map[carddata.Side]map[string]image.Image, len(cfg.Regions))
	for side, table := range cfg.Regions {
		subs[side] = make(map[string]image.Image, len(table))
		for name, spec := range table {
			img, err := page.Region(spec)
			if err != nil {
				return nil, fmt.Errorf("%w: region %s/%s: %v", ErrRenderFailed, side, name, err)
			}
			subs[side][name] = img
		}
	}
	return subs, nil
}

// mergeDecodedCodes scans the code regions, folds decoded identifiers
// into the record (a scanned identifier beats a regex-extracted one),
// and replaces the noisy scanned code sub-images with crisp re-encoded
// ones. Decode failures leave the record and sub-images as they were.
func mergeDecodedCodes(pdfBytes []byte, record *carddata.ProfileRecord, subs map[carddata.Side]map[string]image.Image, cfg Config) {
	barOpts := optcode.DecodeOptions{
		Formats: []optcode.Format{optcode.FormatCode128, optcode.FormatCode39, optcode.FormatEAN13},
		Debug:   cfg.Debug,
		Logger:  cfg.Logger,
	}
	qrOpts := optcode.DecodeOptions{
		Formats: []optcode.Format{optcode.FormatQR},
		Debug:   cfg.Debug,
		Logger:  cfg.Logger,
	}

	if decoded := decodeSlot(subs, carddata.SideFront, pageraster.SlotBarcode, pdfBytes, barOpts); decoded != nil {
		debugf(cfg, "pipeline: barcode decoded via window=%.2f pass=%s\n", decoded.Window, decoded.Pass)
		if fcn := fields.NormalizeFCN(decoded.Payload); fcn != "" {
			record.FCN = fcn
		}
		if clean, err := optcode.Encode(decoded.Payload, decoded.Format, 620, 90); err == nil {
			subs[carddata.SideFront][pageraster.SlotBarcode] = clean
		}
	}

	if decoded := decodeSlot(subs, carddata.SideBack, pageraster.SlotQRCode, pdfBytes, qrOpts); decoded != nil {
		debugf(cfg, "pipeline: QR decoded via window=%.2f pass=%s\n", decoded.Window, decoded.Pass)
		if fin := fields.NormalizeFIN(decoded.Payload); fin != "" {
			record.FIN = fin
		}
		if clean, err := optcode.Encode(decoded.Payload, optcode.FormatQR, 400, 400); err == nil {
			subs[carddata.SideBack][pageraster.SlotQRCode] = clean
		}
	}
}

// decodeSlot decodes a code from a region sub-image, falling back to
// the PDF's embedded image objects when the cropped region does not
// scan.
func decodeSlot(subs map[carddata.Side]map[string]image.Image, side carddata.Side, slot string, pdfBytes []byte, opts optcode.DecodeOptions) *optcode.Decoded {
	if img, ok := subs[side][slot]; ok && img != nil {
		if decoded, err := optcode.Decode(img, opts); err == nil && decoded != nil {
			return decoded
		}
	}
	embedded, err := pageraster.EmbeddedImages(pdfBytes)
	if err != nil {
		return nil
	}
	for _, img := range embedded {
		if decoded, err := optcode.Decode(img, opts); err == nil && decoded != nil {
			return decoded
		}
	}
	return nil
}

// suggestedBase derives a filename stem from the strongest identifier
// available.
func suggestedBase(record *carddata.ProfileRecord) string {
	if digits := strings.ReplaceAll(record.FCN, " ", ""); digits != "" {
		return "fayda_" + digits
	}
	if digits := strings.ReplaceAll(record.FIN, " ", ""); digits != "" {
		return "fayda_" + digits
	}
	return "fayda_card"
}

func debugf(cfg Config, format string, args ...interface{}) {
	if cfg.Debug && cfg.Logger != nil {
		fmt.Fprintf(cfg.Logger, format, args...)
	}
}
