package xword

import (
	"fmt"
	"strings"
)

// Direction of an entry in the grid.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	switch d {
	case Across:
		return "across"
	case Down:
		return "down"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Entry is a maximal run of fillable cells in one direction, length >= 2.
// Entries are derived from a grid snapshot and never mutated.
type Entry struct {
	Direction Direction
	// Label is the number printed in the entry's starting cell. A single
	// label is shared between an Across and a Down entry starting at the
	// same cell.
	Label int
	// Start is the row-major index of the first cell.
	Start int
	// Cells holds the row-major indices of every cell in the entry, in
	// reading order.
	Cells []int
}

// Length returns the number of cells in the entry.
func (e Entry) Length() int { return len(e.Cells) }

// Complete reports whether every cell of the entry holds a value in g.
func (e Entry) Complete(g Grid) bool {
	for _, idx := range e.Cells {
		if !g.Cell(idx).Filled() {
			return false
		}
	}
	return true
}

// Word returns the concatenation of the entry's fills. It is defined
// only when the entry is complete; otherwise ok is false. Rebus fills
// contribute all of their runes.
func (e Entry) Word(g Grid) (string, bool) {
	var b strings.Builder
	for _, idx := range e.Cells {
		c := g.Cell(idx)
		if !c.Filled() {
			return "", false
		}
		b.WriteString(c.Value)
	}
	return b.String(), true
}

// DeriveEntries scans the grid in row-major order and returns its
// Across and Down entries with label numbers assigned.
//
// A cell starts an Across entry when it is fillable, has no fillable
// cell immediately to its left, and has one immediately to its right;
// symmetrically for Down. Runs of a single cell are not entries. The
// label counter increments once per cell that starts at least one
// entry, so co-starting Across/Down entries share a number. Results are
// ordered by label, Across before Down at equal label.
//
// Derivation depends only on the block layout: letter edits never
// change the result.
func DeriveEntries(g Grid) []Entry {
	var entries []Entry
	label := 0

	w, h := g.Width(), g.Height()
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			idx := g.Index(row, col)
			if g.Cell(idx).Block {
				continue
			}

			startsAcross := (col == 0 || g.Cell(idx-1).Block) &&
				col+1 < w && !g.Cell(idx+1).Block
			startsDown := (row == 0 || g.Cell(idx-w).Block) &&
				row+1 < h && !g.Cell(idx+w).Block

			if !startsAcross && !startsDown {
				continue
			}
			label++

			if startsAcross {
				cells := []int{idx}
				for c := col + 1; c < w && !g.Cell(g.Index(row, c)).Block; c++ {
					cells = append(cells, g.Index(row, c))
				}
				entries = append(entries, Entry{Direction: Across, Label: label, Start: idx, Cells: cells})
			}
			if startsDown {
				cells := []int{idx}
				for r := row + 1; r < h && !g.Cell(g.Index(r, col)).Block; r++ {
					cells = append(cells, g.Index(r, col))
				}
				entries = append(entries, Entry{Direction: Down, Label: label, Start: idx, Cells: cells})
			}
		}
	}
	return entries
}
