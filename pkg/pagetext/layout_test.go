package pagetext

import (
	"testing"

	"github.com/dawitk/faydagen/pkg/carddata"
)

func TestReconstructLines_ReadingOrder(t *testing.T) {
	// Two visual lines on a bottom-up Y axis: the higher baseline
	// (Y=700) reads first.
	runs := []carddata.GlyphRun{
		{Text: "5678", X: 120, Y: 700, FontSize: 12},
		{Text: "FCN:", X: 50, Y: 700, FontSize: 12},
		{Text: "1234", X: 85, Y: 700, FontSize: 12},
		{Text: "SURNAME", X: 50, Y: 680, FontSize: 12},
		{Text: "Name", X: 120, Y: 680, FontSize: 12},
	}

	lines := ReconstructLines(runs)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].Text != "FCN: 1234 5678" {
		t.Errorf("line 1 = %q, want %q", lines[0].Text, "FCN: 1234 5678")
	}
	if lines[1].Text != "SURNAME Name" {
		t.Errorf("line 2 = %q, want %q", lines[1].Text, "SURNAME Name")
	}
}

func TestReconstructLines_InputOrderInvariant(t *testing.T) {
	runs := []carddata.GlyphRun{
		{Text: "alpha", X: 10, Y: 500},
		{Text: "beta", X: 60, Y: 500},
		{Text: "gamma", X: 10, Y: 480},
		{Text: "delta", X: 80, Y: 480},
		{Text: "epsilon", X: 10, Y: 300},
	}

	want := Text(ReconstructLines(runs))

	// Rotate through several permutations; the output must not depend
	// on input order.
	perms := [][]int{
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 4, 0, 3, 2},
	}
	for _, perm := range perms {
		shuffled := make([]carddata.GlyphRun, len(runs))
		for i, j := range perm {
			shuffled[i] = runs[j]
		}
		if got := Text(ReconstructLines(shuffled)); got != want {
			t.Errorf("permutation %v changed output:\ngot  %q\nwant %q", perm, got, want)
		}
	}
}

func TestReconstructLines_ToleranceGroupsJaggedBaselines(t *testing.T) {
	// Slightly jagged baselines within tolerance stay on one line.
	runs := []carddata.GlyphRun{
		{Text: "one", X: 10, Y: 100},
		{Text: "two", X: 50, Y: 98.5},
		{Text: "three", X: 90, Y: 101},
	}
	lines := ReconstructLines(runs)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %+v", len(lines), lines)
	}
}

func TestReconstructLines_NoDoubleSpace(t *testing.T) {
	runs := []carddata.GlyphRun{
		{Text: "left ", X: 10, Y: 100},
		{Text: "right", X: 60, Y: 100},
	}
	lines := ReconstructLines(runs)
	if len(lines) != 1 || lines[0].Text != "left right" {
		t.Fatalf("got %+v, want single line %q", lines, "left right")
	}
}

func TestReconstructLines_Empty(t *testing.T) {
	if lines := ReconstructLines(nil); lines != nil {
		t.Errorf("expected nil for empty input, got %+v", lines)
	}
}
