package xword

import (
	"testing"

	"crosswarped.com/xword/pkg/primitives"
)

func findingsByCode(fs []Finding) map[string]Finding {
	out := make(map[string]Finding, len(fs))
	for _, f := range fs {
		out[f.Code] = f
	}
	return out
}

func cluesForAll(g Grid) Clues {
	c := Clues{}
	for _, e := range DeriveEntries(g) {
		c = c.Set(e.Direction, e.Label, "clue")
	}
	return c
}

func TestValidateForPublish_MissingClueIsError(t *testing.T) {
	g := mustGrid(t, 5, 5)
	findings := ValidateForPublish(g, Clues{})

	errs := Errors(findings)
	if len(errs) != 10 {
		t.Fatalf("got %d errors, want 10 (one per unclued entry)", len(errs))
	}
	for _, f := range errs {
		if f.Code != CodeMissingClue {
			t.Errorf("error code = %q, want %q", f.Code, CodeMissingClue)
		}
	}
	if !PublishBlocked(findings) {
		t.Error("missing clues must block publish")
	}
}

func TestValidateForPublish_AllCluesNoErrors(t *testing.T) {
	g := mustGrid(t, 5, 5)
	findings := ValidateForPublish(g, cluesForAll(g))

	if errs := Errors(findings); len(errs) != 0 {
		t.Fatalf("got %d errors with all clues present: %v", len(errs), errs)
	}
	if PublishBlocked(findings) {
		t.Error("publish blocked with zero errors")
	}
}

func TestValidateForPublish_SymmetryMismatchIsWarningOnly(t *testing.T) {
	g := mustGrid(t, 5, 5)
	g = g.WithSymmetry(primitives.SymmetryRotational)
	// A lone corner block breaks 180-degree symmetry.
	g, err := g.ToggleBlock(0)
	if err != nil {
		t.Fatalf("ToggleBlock: %v", err)
	}

	findings := ValidateForPublish(g, cluesForAll(g))
	byCode := findingsByCode(findings)

	f, ok := byCode[CodeSymmetry]
	if !ok {
		t.Fatal("expected a symmetry-mismatch finding")
	}
	if f.Severity != SeverityWarning {
		t.Errorf("symmetry mismatch severity = %v, want warning", f.Severity)
	}
	// Zero errors: symmetry never blocks publish.
	if len(Errors(findings)) != 0 {
		t.Errorf("symmetry mismatch produced errors: %v", Errors(findings))
	}
}

func TestValidateForPublish_SymmetryHolds(t *testing.T) {
	g := mustGrid(t, 5, 5)
	g = g.WithSymmetry(primitives.SymmetryRotational)
	for _, idx := range []int{0, 24} { // corner and its 180-degree partner
		var err error
		if g, err = g.ToggleBlock(idx); err != nil {
			t.Fatalf("ToggleBlock(%d): %v", idx, err)
		}
	}

	findings := ValidateForPublish(g, cluesForAll(g))
	if _, ok := findingsByCode(findings)[CodeSymmetry]; ok {
		t.Error("symmetry warning on a symmetric layout")
	}
}

func TestValidateForPublish_SmallGridWarning(t *testing.T) {
	g := mustGrid(t, 4, 4)
	findings := ValidateForPublish(g, cluesForAll(g))

	f, ok := findingsByCode(findings)[CodeSmallGrid]
	if !ok {
		t.Fatal("expected a small-grid warning for 4x4")
	}
	if f.Severity != SeverityWarning {
		t.Errorf("small-grid severity = %v, want warning", f.Severity)
	}
}

func TestValidateForPublish_DisconnectedWarning(t *testing.T) {
	// Middle block column splits the board in two.
	g := gridFromRepr(t,
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
	)
	findings := ValidateForPublish(g, cluesForAll(g))
	if _, ok := findingsByCode(findings)[CodeDisconnected]; !ok {
		t.Fatal("expected a disconnected warning for a split board")
	}

	// Connected board: no warning.
	g2 := mustGrid(t, 5, 5)
	findings = ValidateForPublish(g2, cluesForAll(g2))
	if _, ok := findingsByCode(findings)[CodeDisconnected]; ok {
		t.Error("disconnected warning on a connected board")
	}
}

func TestValidateForPublish_UncheckedSquaresWarning(t *testing.T) {
	// A 1-row grid: every cell sits in exactly one (across) entry.
	g := mustGrid(t, 5, 1)
	findings := ValidateForPublish(g, cluesForAll(g))
	if _, ok := findingsByCode(findings)[CodeUnchecked]; !ok {
		t.Fatal("expected an unchecked-squares warning")
	}

	// On a blank 5x5 every cell is crossed by both directions.
	g2 := mustGrid(t, 5, 5)
	findings = ValidateForPublish(g2, cluesForAll(g2))
	if _, ok := findingsByCode(findings)[CodeUnchecked]; ok {
		t.Error("unchecked warning on a fully checked grid")
	}
}

func TestIsDividedAdjacency(t *testing.T) {
	// Diagonal-only contact does not connect regions.
	g := gridFromRepr(t,
		"..#",
		"..#",
		"##.",
	)
	if !isDivided(g) {
		t.Error("corner-touching regions should count as divided")
	}
}
