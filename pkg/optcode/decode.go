// Package optcode locates and decodes QR and 1D barcode symbols on
// raster images, and re-encodes clean replacement symbols for the
// rendered card.
//
// Decoding is a progressive search: the image is scanned top-down in
// four increasing vertical windows, and within each window a fixed
// ordered list of preprocessing passes is tried. The first pass that
// decodes wins, which keeps the common case fast and avoids false
// positives from noise lower in the page. The strategy table is data,
// not control flow, so passes can be added or removed and tested
// individually.
//
// Absence of a symbol is a nil result, never an error; only malformed
// input is an error.
package optcode

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Format identifies a supported optical code symbology.
type Format string

const (
	FormatQR      Format = "qr"
	FormatCode128 Format = "code128"
	FormatCode39  Format = "code39"
	FormatEAN13   Format = "ean13"
)

// Decoded is the outcome of a successful decode: the payload, the
// symbology, and which scan window and preprocessing pass found it.
type Decoded struct {
	Payload string
	Format  Format
	Window  float64
	Pass    string
}

// DecodeOptions configures a decode call. The format set is per call
// because the front and back of the document carry different code
// types.
type DecodeOptions struct {
	Formats      []Format  // symbologies to try, in order
	MinDimension int       // windows smaller than this get upscaled
	Debug        bool      // log each attempted (window, pass) pair
	Logger       io.Writer // debug output target (nil = discard)
}

// DefaultDecodeOptions returns options covering both code types used
// on the card.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		Formats:      []Format{FormatQR, FormatCode128},
		MinDimension: 300,
	}
}

// scanWindows are the vertical fractions of the image scanned in
// order. The target symbol sits near the top of the source material,
// so earlier (smaller) windows are preferred.
var scanWindows = []float64{0.25, 0.50, 0.75, 1.00}

// scanPass is one preprocessing strategy. apply returns nil when the
// pass is not applicable to the window, which skips it.
type scanPass struct {
	name  string
	apply func(img image.Image, opts DecodeOptions) image.Image
}

var scanPasses = []scanPass{
	{"raw", func(img image.Image, _ DecodeOptions) image.Image {
		return img
	}},
	{"contrast", func(img image.Image, _ DecodeOptions) image.Image {
		return imaging.AdjustContrast(img, 40)
	}},
	{"grayscale", func(img image.Image, _ DecodeOptions) image.Image {
		return imaging.Grayscale(img)
	}},
	{"upscale", func(img image.Image, opts DecodeOptions) image.Image {
		b := img.Bounds()
		min := b.Dx()
		if b.Dy() < min {
			min = b.Dy()
		}
		if min == 0 || min >= opts.MinDimension {
			return nil
		}
		factor := (opts.MinDimension + min - 1) / min
		return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.Lanczos)
	}},
}

// Decode searches the image for exactly one code symbol. It returns
// (nil, nil) when no symbol is found; an error indicates malformed
// input, not absence.
func Decode(img image.Image, opts DecodeOptions) (*Decoded, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	if img.Bounds().Empty() {
		return nil, errors.New("empty image")
	}
	if len(opts.Formats) == 0 {
		opts.Formats = DefaultDecodeOptions().Formats
	}
	if opts.MinDimension <= 0 {
		opts.MinDimension = DefaultDecodeOptions().MinDimension
	}

	readers := readersFor(opts.Formats)
	bounds := img.Bounds()

	for _, win := range scanWindows {
		h := int(float64(bounds.Dy()) * win)
		if h < 1 {
			continue
		}
		window := imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+h))

		for _, pass := range scanPasses {
			candidate := pass.apply(window, opts)
			if candidate == nil {
				continue
			}
			if opts.Debug && opts.Logger != nil {
				fmt.Fprintf(opts.Logger, "optcode: trying window=%.2f pass=%s\n", win, pass.name)
			}
			if decoded := tryReaders(candidate, readers); decoded != nil {
				decoded.Window = win
				decoded.Pass = pass.name
				return decoded, nil
			}
		}
	}
	return nil, nil
}

// tryReaders runs each configured reader over one preprocessed window.
func tryReaders(img image.Image, readers []gozxing.Reader) *Decoded {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil
	}
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	for _, reader := range readers {
		result, err := reader.Decode(bmp, hints)
		if err != nil || result.GetText() == "" {
			continue
		}
		return &Decoded{
			Payload: result.GetText(),
			Format:  formatOf(result.GetBarcodeFormat()),
		}
	}
	return nil
}

func readersFor(formats []Format) []gozxing.Reader {
	readers := make([]gozxing.Reader, 0, len(formats))
	for _, f := range formats {
		switch f {
		case FormatQR:
			readers = append(readers, qrcode.NewQRCodeReader())
		case FormatCode128:
			readers = append(readers, oned.NewCode128Reader())
		case FormatCode39:
			readers = append(readers, oned.NewCode39Reader())
		case FormatEAN13:
			readers = append(readers, oned.NewEAN13Reader())
		}
	}
	return readers
}

func formatOf(f gozxing.BarcodeFormat) Format {
	switch f {
	case gozxing.BarcodeFormat_QR_CODE:
		return FormatQR
	case gozxing.BarcodeFormat_CODE_128:
		return FormatCode128
	case gozxing.BarcodeFormat_CODE_39:
		return FormatCode39
	case gozxing.BarcodeFormat_EAN_13:
		return FormatEAN13
	default:
		return Format(f.String())
	}
}
