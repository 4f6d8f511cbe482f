// Package cardgen draws finished card images: it loads a side's
// template, places sub-images and word-wrapped bilingual text at
// declared coordinates scaled to the template's actual resolution, and
// exports the canvas to PNG or JPEG.
//
// Main functions:
//
// - Compose: render one card side from a profile record and sub-images
// - Export: serialize a rendered side to a raster format
// - PrintSheet: assemble both sides onto one printable A4 PDF page
package cardgen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/dawitk/faydagen/pkg/carddata"
)

var (
	// ErrTemplateLoad reports a template image that cannot be read or
	// decoded.
	ErrTemplateLoad = errors.New("failed to load card template")
	// ErrFontResolution reports a font face that is missing from the
	// compositor's configuration or cannot be parsed.
	ErrFontResolution = errors.New("failed to resolve font")
	// ErrUnsupportedFormat reports an export format the compositor does
	// not produce.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// Compose renders one side of the card: the template, every declared
// image slot that has a sub-image, and every declared text field that
// has a value. Missing sub-images and empty fields are skipped, not
// errors, since fields are independently optional. Template and font
// problems are hard errors.
func Compose(side carddata.Side, rec *carddata.ProfileRecord, subs map[string]image.Image, spec SideSpec, assets *Assets) (image.Image, error) {
	tpl, err := assets.Template(side)
	if err != nil {
		return nil, err
	}

	ratio := scaleRatio(tpl.Bounds(), spec)
	dc := gg.NewContextForImage(imaging.Clone(tpl))
	dc.SetRGB(0, 0, 0)

	for name, slot := range spec.Images {
		sub, ok := subs[name]
		if !ok || sub == nil {
			continue
		}
		w := int(math.Round(slot.Width * ratio))
		h := int(math.Round(slot.Height * ratio))
		if w < 1 || h < 1 {
			continue
		}
		resized := imaging.Resize(sub, w, h, imaging.Lanczos)
		dc.DrawImage(resized, int(math.Round(slot.X*ratio)), int(math.Round(slot.Y*ratio)))
	}

	values := rec.Fields()
	for key, pl := range spec.Fields {
		value := fieldValue(values, key)
		if value == "" {
			continue
		}
		font, err := assets.Font(faceKey(pl))
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: pl.FontSize * ratio}))
		drawField(dc, value, pl, ratio)
	}

	return dc.Image(), nil
}

// scaleRatio computes the single uniform factor mapping design
// coordinates onto the actual template resolution: the average of the
// horizontal and vertical ratios.
func scaleRatio(actual image.Rectangle, spec SideSpec) float64 {
	dw, dh := spec.DesignWidth, spec.DesignHeight
	if dw <= 0 || dh <= 0 {
		return 1
	}
	return (float64(actual.Dx())/dw + float64(actual.Dy())/dh) / 2
}

// fieldValue resolves a placement key against the record. A key with
// both an Amharic and an English variant yields the two joined with a
// newline (Amharic first); the combination mode decides later whether
// that break survives as stacked lines or a bar separator.
func fieldValue(values map[string]string, key string) string {
	if v, ok := values[key]; ok {
		return v
	}
	am, en := values[key+"_am"], values[key+"_en"]
	switch {
	case am != "" && en != "":
		return am + "\n" + en
	case am != "":
		return am
	default:
		return en
	}
}

// faceKey maps a placement's family/weight pair onto a font set key.
func faceKey(pl Placement) string {
	family := pl.FontFamily
	if family == "" {
		family = "latin"
	}
	if pl.FontWeight != "" && pl.FontWeight != "regular" {
		return family + "-" + pl.FontWeight
	}
	return family
}

// drawField word-wraps and draws one field value at its scaled anchor.
// A rotated field is drawn in a frame translated to the anchor and
// rotated about it, so wrapping happens in the field's own rotated
// coordinate space.
func drawField(dc *gg.Context, value string, pl Placement, ratio float64) {
	x := pl.X * ratio
	y := pl.Y * ratio
	maxWidth := pl.MaxWidth * ratio

	if pl.Rotation != 0 {
		dc.Push()
		dc.RotateAbout(gg.Radians(pl.Rotation), x, y)
		defer dc.Pop()
	}

	parts := strings.Split(value, "\n")
	if pl.Mode == CombineJoined {
		parts = []string{strings.Join(parts, " | ")}
	}

	lineHeight := dc.FontHeight() * 1.3
	cursorY := y
	for _, part := range parts {
		for _, line := range wrapLines(dc, part, maxWidth) {
			dc.DrawString(line, x, cursorY)
			cursorY += lineHeight
		}
	}
}

// wrapLines greedily fills lines up to maxWidth measured in the
// context's current face. A non-positive maxWidth disables wrapping.
func wrapLines(dc *gg.Context, text string, maxWidth float64) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	return dc.WordWrap(text, maxWidth)
}

// Export serializes a rendered card image. PNG is the lossless default;
// JPEG takes the caller's quality level (1-100, 0 means 90). Any other
// format is ErrUnsupportedFormat.
func Export(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "", "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	case "jpg", "jpeg":
		if quality <= 0 {
			quality = 90
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return buf.Bytes(), nil
}
