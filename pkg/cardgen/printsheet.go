package cardgen

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"codeberg.org/go-pdf/fpdf"
)

// Physical card size in points (CR80, 85.6mm x 54mm).
const (
	cardWidthPt  = 242.6
	cardHeightPt = 153.0
)

// PrintSheet assembles the rendered front and back images onto a
// single A4 PDF page at physical card size, stacked vertically and
// centered, for printing and manual lamination. Inputs are encoded
// image bytes as produced by Export.
func PrintSheet(frontImage, backImage []byte) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	x := (pageW - cardWidthPt) / 2
	y := 72.0

	for i, imgData := range [][]byte{frontImage, backImage} {
		if len(imgData) == 0 {
			return nil, fmt.Errorf("print sheet side %d is empty", i+1)
		}
		imageType, err := detectImageType(imgData)
		if err != nil {
			return nil, fmt.Errorf("print sheet side %d has invalid format: %w", i+1, err)
		}

		name := fmt.Sprintf("side%d", i)
		opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(imgData))
		pdf.ImageOptions(name, x, y, cardWidthPt, cardHeightPt, false, opts, 0, "")

		y += cardHeightPt + 36
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate print sheet: %w", err)
	}
	return buf.Bytes(), nil
}

// detectImageType tries to figure out whether the data is PNG, JPEG, etc.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), nil
}
