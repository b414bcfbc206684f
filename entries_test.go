package xword

import (
	"reflect"
	"testing"
)

// gridFromRepr builds a grid from the Repr format: '#' block, '.'
// empty, anything else a letter.
func gridFromRepr(t *testing.T, rows ...string) Grid {
	t.Helper()
	g, err := NewBlank(len(rows[0]), len(rows))
	if err != nil {
		t.Fatalf("NewBlank: %v", err)
	}
	for r, row := range rows {
		for c, ch := range row {
			idx := g.Index(r, c)
			switch ch {
			case '.':
			case '#':
				if g, err = g.ToggleBlock(idx); err != nil {
					t.Fatalf("ToggleBlock(%d): %v", idx, err)
				}
			default:
				if g, err = g.SetLetter(idx, string(ch)); err != nil {
					t.Fatalf("SetLetter(%d): %v", idx, err)
				}
			}
		}
	}
	return g
}

func TestDeriveEntries_BlankFiveByFive(t *testing.T) {
	g := mustGrid(t, 5, 5)
	entries := DeriveEntries(g)

	// 5 across + 5 down.
	if len(entries) != 10 {
		t.Fatalf("got %d entries, want 10", len(entries))
	}

	var across, down []Entry
	for _, e := range entries {
		if e.Direction == Across {
			across = append(across, e)
		} else {
			down = append(down, e)
		}
	}
	if len(across) != 5 || len(down) != 5 {
		t.Fatalf("got %d across, %d down; want 5 and 5", len(across), len(down))
	}

	// Across entries label 1-5, each of length 5. Down entries share
	// labels 1-5 with the across entries of row 0.
	for i, e := range across {
		if e.Length() != 5 {
			t.Errorf("across[%d] length = %d, want 5", i, e.Length())
		}
	}
	wantAcrossLabels := []int{1, 6, 7, 8, 9}
	for i, e := range across {
		if e.Label != wantAcrossLabels[i] {
			t.Errorf("across[%d] label = %d, want %d", i, e.Label, wantAcrossLabels[i])
		}
	}
	wantDownLabels := []int{1, 2, 3, 4, 5}
	for i, e := range down {
		if e.Label != wantDownLabels[i] {
			t.Errorf("down[%d] label = %d, want %d", i, e.Label, wantDownLabels[i])
		}
	}

	// Cell 0 starts both directions under one shared label.
	if across[0].Label != 1 || down[0].Label != 1 {
		t.Error("co-starting entries at cell 0 should share label 1")
	}
}

func TestDeriveEntries_SingleCellRunIsNotAnEntry(t *testing.T) {
	// Middle row is a lone cell between blocks: no across entry for it,
	// but it still belongs to the down entry of its column.
	g := gridFromRepr(t,
		"...",
		"#.#",
		"...",
	)
	for _, e := range DeriveEntries(g) {
		if e.Length() < 2 {
			t.Errorf("entry %d-%s has length %d; runs of one cell are never entries", e.Label, e.Direction, e.Length())
		}
		if e.Direction == Across && e.Start == g.Index(1, 1) {
			t.Error("lone middle cell must not start an across entry")
		}
	}
}

func TestDeriveEntries_OneByOne(t *testing.T) {
	g := mustGrid(t, 1, 1)
	if entries := DeriveEntries(g); len(entries) != 0 {
		t.Errorf("1x1 grid yielded %d entries, want 0", len(entries))
	}
}

func TestDeriveEntries_CornerBlock(t *testing.T) {
	// A single block at (0,0) shortens row 0 and column 0 to 4 cells —
	// still valid entries, so the counts stay at 5 across and 5 down.
	g := gridFromRepr(t,
		"#....",
		".....",
		".....",
		".....",
		".....",
	)
	entries := DeriveEntries(g)
	nAcross, nDown := 0, 0
	for _, e := range entries {
		switch e.Direction {
		case Across:
			nAcross++
		case Down:
			nDown++
		}
	}
	if nAcross != 5 || nDown != 5 {
		t.Errorf("got %d across, %d down; want 5 and 5", nAcross, nDown)
	}
}

func TestDeriveEntries_LabelsStrictlyIncreasing(t *testing.T) {
	g := gridFromRepr(t,
		".....",
		".#.#.",
		".....",
		".#.#.",
		".....",
	)
	entries := DeriveEntries(g)

	lastLabel := 0
	lastStart := -1
	for _, e := range entries {
		if e.Label < lastLabel {
			t.Fatalf("labels out of order: %d after %d", e.Label, lastLabel)
		}
		if e.Label == lastLabel {
			// Shared label: across must come before down, same start cell.
			if e.Direction != Down {
				t.Errorf("at label %d, second entry should be down", e.Label)
			}
			if e.Start != lastStart {
				t.Errorf("shared label %d with different starts %d and %d", e.Label, lastStart, e.Start)
			}
		}
		if e.Label > lastLabel && e.Start <= lastStart && lastStart != -1 {
			t.Errorf("label %d starts at %d, not after %d (row-major order)", e.Label, e.Start, lastStart)
		}
		lastLabel = e.Label
		lastStart = e.Start
	}
}

func TestDeriveEntries_Deterministic(t *testing.T) {
	g := gridFromRepr(t,
		"..#..",
		".....",
		"#...#",
		".....",
		"..#..",
	)
	first := DeriveEntries(g)
	second := DeriveEntries(g)
	if !reflect.DeepEqual(first, second) {
		t.Error("DeriveEntries is not deterministic for a fixed block layout")
	}
}

func TestDeriveEntries_IgnoresLetters(t *testing.T) {
	g := gridFromRepr(t,
		"..#",
		"...",
		"#..",
	)
	before := DeriveEntries(g)

	g2, err := g.SetLetter(0, "Z")
	if err != nil {
		t.Fatalf("SetLetter: %v", err)
	}
	after := DeriveEntries(g2)
	if !reflect.DeepEqual(before, after) {
		t.Error("letter edits must not change derived entries")
	}
}

func TestEntry_WordAndComplete(t *testing.T) {
	g := gridFromRepr(t,
		"...",
		"###",
		"...",
	)
	entries := DeriveEntries(g)
	top := entries[0]
	if top.Direction != Across || top.Start != 0 {
		t.Fatalf("expected first entry to be across at 0, got %+v", top)
	}

	if _, ok := top.Word(g); ok {
		t.Fatal("Word defined on an unfilled entry")
	}
	if top.Complete(g) {
		t.Fatal("empty entry reported complete")
	}

	letters := []string{"C", "A", "T"}
	for i, idx := range top.Cells {
		var err error
		if g, err = g.SetLetter(idx, letters[i]); err != nil {
			t.Fatalf("SetLetter: %v", err)
		}
		if i < len(top.Cells)-1 {
			if _, ok := top.Word(g); ok {
				t.Fatal("Word defined with a cell still empty")
			}
		}
	}

	if !top.Complete(g) {
		t.Error("filled entry reported incomplete")
	}
	word, ok := top.Word(g)
	if !ok || word != "CAT" {
		t.Errorf("Word() = %q, %v; want CAT, true", word, ok)
	}
}

func TestEntry_WordWithRebus(t *testing.T) {
	g := gridFromRepr(t,
		"...",
		"###",
		"...",
	)
	top := DeriveEntries(g)[0]

	var err error
	for i, fill := range []string{"S", "HIP", "S"} {
		if g, err = g.SetLetter(top.Cells[i], fill); err != nil {
			t.Fatalf("SetLetter: %v", err)
		}
	}
	word, ok := top.Word(g)
	if !ok || word != "SHIPS" {
		t.Errorf("Word() = %q, %v; want SHIPS, true", word, ok)
	}
}
