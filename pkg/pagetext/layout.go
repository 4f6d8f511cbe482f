package pagetext

import (
	"sort"
	"strings"

	"github.com/dawitk/faydagen/pkg/carddata"
)

// DefaultLineTolerance is the maximum vertical distance, in page units,
// between two baselines that still belong to the same visual line.
// Tuned to the line height of the card documents this pipeline targets.
const DefaultLineTolerance = 4.0

// ReconstructLines converts an unordered set of glyph runs into an
// ordered sequence of text lines matching visual reading order.
//
// Runs are sorted by descending baseline Y (PDF Y grows upward), then
// ascending X, then content, so the ordering is total and the output is
// invariant to the input ordering. Grouping is a single linear pass:
// a run whose baseline is within tolerance of the previous run extends
// the current line, otherwise it starts a new one.
func ReconstructLines(runs []carddata.GlyphRun) []carddata.TextLine {
	return ReconstructLinesTolerance(runs, DefaultLineTolerance)
}

// ReconstructLinesTolerance is ReconstructLines with an explicit
// baseline grouping tolerance.
func ReconstructLinesTolerance(runs []carddata.GlyphRun, tolerance float64) []carddata.TextLine {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]carddata.GlyphRun, len(runs))
	copy(sorted, runs)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Y != b.Y {
			return a.Y > b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Text < b.Text
	})

	var lines []carddata.TextLine
	var current strings.Builder
	currentY := sorted[0].Y
	current.WriteString(sorted[0].Text)

	flush := func(y float64) {
		text := strings.TrimSpace(current.String())
		if text != "" {
			lines = append(lines, carddata.TextLine{Text: text, Y: y})
		}
		current.Reset()
	}

	prev := sorted[0]
	for _, run := range sorted[1:] {
		if prev.Y-run.Y > tolerance {
			flush(currentY)
			currentY = run.Y
		} else if !endsInSpace(prev.Text) {
			current.WriteByte(' ')
		}
		current.WriteString(run.Text)
		prev = run
	}
	flush(currentY)

	return lines
}

// Text joins reconstructed lines into one newline-separated string,
// the form the field extraction rules match against.
func Text(lines []carddata.TextLine) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

func endsInSpace(s string) bool {
	return s != "" && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t')
}
