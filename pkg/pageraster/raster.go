// Package pageraster renders rectangular regions of a PDF page to
// isolated sub-images (photo, barcode strip, date strip) at a given
// scale and rotation, with optional near-white background stripping
// and grayscale normalization.
//
// Region coordinates are declared in unscaled page units. The page is
// rendered once at the requested scale and the crop happens in the
// scaled pixel space, so sub-pixel rounding error does not accumulate
// per field. A region that leaves the rendered page bounds is a hard
// ErrRegionOutOfBounds: the rasterizer never silently clamps, because
// clamping would mask a misconfigured region table.
package pageraster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/sunshineplan/imgconv"
	pdfimg "github.com/sunshineplan/pdf"
)

// ErrRegionOutOfBounds reports a crop rectangle extending beyond the
// rendered page. This is input misconfiguration, not a runtime
// condition to retry.
var ErrRegionOutOfBounds = errors.New("region extends beyond rendered page bounds")

// whiteCutoff is the per-channel threshold above which a pixel counts
// as near-white background.
const whiteCutoff = 240

// Page is a single rendered PDF page. Rendering happens once; regions
// are then cropped out of scaled copies of the base raster.
type Page struct {
	base image.Image
}

// RenderPage rasterizes the first page of a PDF document at its base
// resolution.
func RenderPage(pdfBytes []byte) (*Page, error) {
	img, err := imgconv.Decode(bytes.NewReader(pdfBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize PDF page: %w", err)
	}
	return &Page{base: img}, nil
}

// NewPage wraps an already rendered page image, used by tests and by
// callers that rasterize through another backend.
func NewPage(img image.Image) *Page {
	return &Page{base: img}
}

// EmbeddedImages returns every image embedded in the PDF, in document
// order. Code regions are sometimes stored as discrete image objects
// rather than drawn page content, and scanning those directly beats
// re-rasterizing the page.
func EmbeddedImages(pdfBytes []byte) (images []image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while extracting embedded images: %v", r)
			images = nil
		}
	}()
	images, err = pdfimg.DecodeAll(bytes.NewReader(pdfBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedded images: %w", err)
	}
	return images, nil
}

// Bounds returns the pixel bounds of the base render; page units for
// region specs are pixels of this base raster.
func (p *Page) Bounds() image.Rectangle {
	return p.base.Bounds()
}

// Region crops the given region out of the page at the spec's scale
// and applies the spec's rotation, background and grayscale settings.
// Output dimensions are {width*scale, height*scale}, swapped for 90°
// and 270° rotations.
func (p *Page) Region(spec RegionSpec) (image.Image, error) {
	scale := spec.Scale
	if scale <= 0 {
		scale = 1
	}

	scaled := p.base
	if scale != 1 {
		b := p.base.Bounds()
		scaled = imgconv.Resize(p.base, &imgconv.ResizeOption{
			Width:  int(math.Round(float64(b.Dx()) * scale)),
			Height: int(math.Round(float64(b.Dy()) * scale)),
		})
	}

	crop := image.Rect(
		int(math.Round(spec.X*scale)),
		int(math.Round(spec.Y*scale)),
		int(math.Round((spec.X+spec.Width)*scale)),
		int(math.Round((spec.Y+spec.Height)*scale)),
	)
	if !crop.In(scaled.Bounds()) {
		return nil, fmt.Errorf("%w: crop %v, page %v", ErrRegionOutOfBounds, crop, scaled.Bounds())
	}

	out := imaging.Crop(scaled, crop)

	switch normalizeAngle(spec.Rotation) {
	case 0:
	case 90:
		out = imaging.Rotate90(out)
	case 180:
		out = imaging.Rotate180(out)
	case 270:
		out = imaging.Rotate270(out)
	default:
		out = imaging.Rotate(out, spec.Rotation, color.Transparent)
	}

	var result image.Image = out
	if spec.RemoveBackground {
		result = removeNearWhite(result)
	}
	if spec.Grayscale {
		result = imaging.Grayscale(result)
	}
	return result, nil
}

// normalizeAngle maps a rotation in degrees onto [0,360).
func normalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// removeNearWhite makes every pixel whose channels all exceed the
// white cutoff fully transparent. This is the only place pixel color
// leaks out of rasterization.
func removeNearWhite(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R >= whiteCutoff && c.G >= whiteCutoff && c.B >= whiteCutoff {
				c = color.NRGBA{}
			}
			out.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, c)
		}
	}
	return out
}
