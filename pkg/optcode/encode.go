package optcode

import (
	"fmt"
	"image"
	"image/color"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Encode renders a payload string as a clean code image of the given
// symbology and size. Encoding is pure and deterministic: the same
// payload, format and size always produce an identical image. A
// payload the symbology cannot carry is a hard error.
func Encode(payload string, format Format, width, height int) (image.Image, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty payload")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid code dimensions %dx%d", width, height)
	}

	var (
		writer   gozxing.Writer
		zxFormat gozxing.BarcodeFormat
	)
	switch format {
	case FormatQR:
		writer, zxFormat = qrcode.NewQRCodeWriter(), gozxing.BarcodeFormat_QR_CODE
	case FormatCode128:
		writer, zxFormat = oned.NewCode128Writer(), gozxing.BarcodeFormat_CODE_128
	case FormatCode39:
		writer, zxFormat = oned.NewCode39Writer(), gozxing.BarcodeFormat_CODE_39
	case FormatEAN13:
		writer, zxFormat = oned.NewEAN13Writer(), gozxing.BarcodeFormat_EAN_13
	default:
		return nil, fmt.Errorf("unsupported code format %q", format)
	}

	matrix, err := writer.Encode(payload, zxFormat, width, height, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", format, err)
	}
	return matrixImage(matrix), nil
}

// matrixImage converts a bit matrix into a black-on-white grayscale
// image.
func matrixImage(m *gozxing.BitMatrix) *image.Gray {
	w, h := m.GetWidth(), m.GetHeight()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
