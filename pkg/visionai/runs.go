package visionai

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/dawitk/faydagen/pkg/carddata"
)

// GlyphRuns OCRs a PDF through Document AI and maps the recognized
// tokens onto positioned glyph runs.
func GlyphRuns(ctx context.Context, pdfBytes []byte, cfg *Config) ([]carddata.GlyphRun, error) {
	doc, err := ProcessDocument(ctx, pdfBytes, cfg)
	if err != nil {
		return nil, err
	}
	runs := RunsFromDocument(doc)
	if len(runs) == 0 {
		return nil, fmt.Errorf("document AI returned no tokens")
	}
	return runs, nil
}

// RunsFromDocument converts the first page's tokens of a Document AI
// response into glyph runs. Document AI positions are normalized with
// a top-down Y axis; runs use page units with the PDF bottom-up
// convention, so coordinates are denormalized against the page
// dimension and the Y axis flipped at the token baseline.
func RunsFromDocument(doc *documentaipb.Document) []carddata.GlyphRun {
	if doc == nil || len(doc.Pages) == 0 {
		return nil
	}
	page := doc.Pages[0]
	if page.Dimension == nil {
		return nil
	}
	pageW := float64(page.Dimension.Width)
	pageH := float64(page.Dimension.Height)

	runs := make([]carddata.GlyphRun, 0, len(page.Tokens))
	for _, token := range page.Tokens {
		text := strings.TrimSpace(textFromLayout(token.Layout, doc.Text))
		if text == "" {
			continue
		}
		left, top, bottom, ok := layoutBox(token.Layout)
		if !ok {
			continue
		}
		runs = append(runs, carddata.GlyphRun{
			Text:     text,
			X:        left * pageW,
			Y:        pageH - bottom*pageH,
			FontSize: (bottom - top) * pageH,
		})
	}
	return runs
}

// textFromLayout extracts text from a layout's text anchor segments.
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText string) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}
	runes := []rune(fullText)
	total := len(runes)
	var result strings.Builder
	for _, seg := range layout.TextAnchor.TextSegments {
		start := int(seg.StartIndex)
		end := int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > total {
			end = total
		}
		if start > end {
			start = end
		}
		result.WriteString(string(runes[start:end]))
	}
	return result.String()
}

// layoutBox returns the normalized left/top/bottom of a layout's
// bounding polygon.
func layoutBox(layout *documentaipb.Document_Page_Layout) (left, top, bottom float64, ok bool) {
	if layout == nil || layout.BoundingPoly == nil || len(layout.BoundingPoly.NormalizedVertices) < 4 {
		return 0, 0, 0, false
	}
	vs := layout.BoundingPoly.NormalizedVertices
	left, top = float64(vs[0].X), float64(vs[0].Y)
	bottom = top
	for _, v := range vs {
		if float64(v.X) < left {
			left = float64(v.X)
		}
		if float64(v.Y) < top {
			top = float64(v.Y)
		}
		if float64(v.Y) > bottom {
			bottom = float64(v.Y)
		}
	}
	return left, top, bottom, true
}
