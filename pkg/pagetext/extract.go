// Package pagetext reconstructs visual reading order from the positioned
// glyph runs of a single-page PDF.
//
// The reconstruction is a single linear pass tuned for the fixed,
// single-column card layout this pipeline targets: runs are sorted
// top-to-bottom, left-to-right, then grouped into lines by a fixed
// baseline tolerance. It is deliberately not a general layout engine.
//
// Main functions:
//
// - GlyphRuns: extract positioned glyph runs from PDF bytes
// - ReconstructLines: merge glyph runs into ordered text lines
package pagetext

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/dawitk/faydagen/pkg/carddata"
)

// GlyphRuns extracts the positioned glyph runs of the first page of a
// PDF document. The card documents this pipeline handles are always
// single-page, so only page 1 is read.
func GlyphRuns(pdfBytes []byte) (runs []carddata.GlyphRun, err error) {
	// The underlying parser panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			runs = nil
			err = fmt.Errorf("panic while reading PDF text: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	if reader.NumPage() < 1 {
		return nil, fmt.Errorf("PDF contains no pages")
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("PDF page 1 is empty")
	}

	texts := page.Content().Text
	runs = make([]carddata.GlyphRun, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		runs = append(runs, carddata.GlyphRun{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			FontSize: t.FontSize,
		})
	}
	return runs, nil
}
