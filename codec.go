package xword

import (
	"encoding/json"
	"fmt"

	"crosswarped.com/xword/pkg/primitives"
)

// DecodeError reports a malformed puzzle document. It is always
// surfaced to the caller; decoding never silently repairs input.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode puzzle: %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErrf(field, format string, args ...any) *DecodeError {
	return &DecodeError{Field: field, Err: fmt.Errorf(format, args...)}
}

// blockToken marks a block cell in the document's cell array; an empty
// fillable cell is ".". Any other token is the cell's fill, with
// multi-rune tokens read as rebus values.
const (
	blockToken = "#"
	emptyToken = "."
)

// ClueText is one labeled clue in a document's per-direction array.
type ClueText struct {
	Label int    `json:"label"`
	Text  string `json:"text"`
}

// Document is the persisted puzzle format, as stored in the puzzles
// collection. Cells are row-major.
type Document struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`

	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  []string `json:"cells"`

	Symmetry string `json:"symmetry,omitempty"`

	Highlighted   []int  `json:"highlighted,omitempty"`
	HighlightMode string `json:"highlightMode,omitempty"`

	Across []ClueText `json:"across"`
	Down   []ClueText `json:"down"`
}

// Puzzle is a decoded document: the grid plus everything the core needs
// that is not derivable from it.
type Puzzle struct {
	ID     string
	Title  string
	Author string

	Grid  Grid
	Clues Clues

	Highlighted   []int
	HighlightMode primitives.Symmetry
}

// DecodePuzzle parses and validates a persisted puzzle document. Any
// malformed field produces a *DecodeError.
func DecodePuzzle(data []byte) (*Puzzle, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Field: "document", Err: err}
	}
	return DecodeDocument(doc)
}

// DecodeDocument validates an already-unmarshalled document.
func DecodeDocument(doc Document) (*Puzzle, error) {
	if doc.Width < 1 || doc.Height < 1 {
		return nil, decodeErrf("width/height", "invalid dimensions %dx%d", doc.Width, doc.Height)
	}
	if len(doc.Cells) != doc.Width*doc.Height {
		return nil, decodeErrf("cells", "want %d cells for %dx%d, got %d",
			doc.Width*doc.Height, doc.Width, doc.Height, len(doc.Cells))
	}

	grid, err := NewBlank(doc.Width, doc.Height)
	if err != nil {
		return nil, &DecodeError{Field: "width/height", Err: err}
	}

	for idx, token := range doc.Cells {
		switch token {
		case emptyToken:
		case blockToken:
			if grid, err = grid.ToggleBlock(idx); err != nil {
				return nil, &DecodeError{Field: "cells", Err: err}
			}
		case "":
			return nil, decodeErrf("cells", "cell %d is an empty token", idx)
		default:
			if grid, err = grid.SetLetter(idx, token); err != nil {
				return nil, &DecodeError{Field: "cells", Err: err}
			}
		}
	}

	sym, err := primitives.ParseSymmetry(doc.Symmetry)
	if err != nil {
		return nil, &DecodeError{Field: "symmetry", Err: err}
	}
	grid = grid.WithSymmetry(sym)

	highlightMode, err := primitives.ParseSymmetry(doc.HighlightMode)
	if err != nil {
		return nil, &DecodeError{Field: "highlightMode", Err: err}
	}
	for _, idx := range doc.Highlighted {
		if idx < 0 || idx >= grid.Size() {
			return nil, decodeErrf("highlighted", "cell %d out of range", idx)
		}
	}

	clues := Clues{}
	for _, dir := range []Direction{Across, Down} {
		texts := doc.Across
		if dir == Down {
			texts = doc.Down
		}
		for _, ct := range texts {
			if ct.Label < 1 {
				return nil, decodeErrf(dir.String(), "clue label %d out of range", ct.Label)
			}
			clues = clues.Set(dir, ct.Label, ct.Text)
		}
	}

	return &Puzzle{
		ID:            doc.ID,
		Title:         doc.Title,
		Author:        doc.Author,
		Grid:          grid,
		Clues:         clues,
		Highlighted:   doc.Highlighted,
		HighlightMode: highlightMode,
	}, nil
}

// SolvingGrid returns the puzzle's grid with block editing disabled,
// the form handed to solvers.
func (p *Puzzle) SolvingGrid() Grid {
	return p.Grid.WithBlockEditing(false)
}

// EncodeDocument converts a puzzle back to its persisted form.
func EncodeDocument(p *Puzzle) Document {
	cells := make([]string, p.Grid.Size())
	for idx := range cells {
		c := p.Grid.Cell(idx)
		switch {
		case c.Block:
			cells[idx] = blockToken
		case c.Value == "":
			cells[idx] = emptyToken
		default:
			cells[idx] = c.Value
		}
	}

	doc := Document{
		ID:            p.ID,
		Title:         p.Title,
		Author:        p.Author,
		Width:         p.Grid.Width(),
		Height:        p.Grid.Height(),
		Cells:         cells,
		Highlighted:   p.Highlighted,
		HighlightMode: p.HighlightMode.String(),
		Symmetry:      p.Grid.Symmetry().String(),
	}
	for key, text := range p.Clues {
		ct := ClueText{Label: key.Label, Text: text}
		if key.Direction == Across {
			doc.Across = append(doc.Across, ct)
		} else {
			doc.Down = append(doc.Down, ct)
		}
	}
	sortClueTexts(doc.Across)
	sortClueTexts(doc.Down)
	return doc
}

// EncodePuzzle marshals a puzzle to document JSON.
func EncodePuzzle(p *Puzzle) ([]byte, error) {
	return json.Marshal(EncodeDocument(p))
}

func sortClueTexts(cts []ClueText) {
	for i := 1; i < len(cts); i++ {
		for j := i; j > 0 && cts[j].Label < cts[j-1].Label; j-- {
			cts[j], cts[j-1] = cts[j-1], cts[j]
		}
	}
}
