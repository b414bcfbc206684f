package xword

import (
	"fmt"

	"crosswarped.com/xword/pkg/primitives"
)

// State is an immutable snapshot of a puzzle being edited: the grid,
// the entries derived from its block layout, and the clues bound to
// them. UI layers subscribe to snapshots; they never mutate one.
type State struct {
	Grid    Grid
	Entries []Entry
	Clues   Clues
}

// NewState derives the initial snapshot for a grid.
func NewState(g Grid) State {
	return State{
		Grid:    g,
		Entries: DeriveEntries(g),
		Clues:   Clues{},
	}
}

// Action is an edit applied to a State through Apply.
type Action interface {
	isAction()
}

// ToggleBlockAction flips a cell between block and empty.
type ToggleBlockAction struct {
	Index int
}

// SetLetterAction writes a fill value into a cell.
type SetLetterAction struct {
	Index int
	Value string
}

// ResizeAction changes the grid dimensions.
type ResizeAction struct {
	Width, Height int
}

// SetClueAction binds clue text to an entry key.
type SetClueAction struct {
	Direction Direction
	Label     int
	Text      string
}

// SetSymmetryAction declares the grid's symmetry.
type SetSymmetryAction struct {
	Symmetry primitives.Symmetry
}

func (ToggleBlockAction) isAction() {}
func (SetLetterAction) isAction()   {}
func (ResizeAction) isAction()      {}
func (SetClueAction) isAction()     {}
func (SetSymmetryAction) isAction() {}

// Apply is the pure state transition: it returns the snapshot that
// results from the action, leaving the input untouched.
//
// Entries are recomputed, and clues rebound, only for actions that
// change the block layout (toggle, resize). Letter edits reuse the
// previous entries unchanged.
func Apply(s State, a Action) (State, error) {
	switch act := a.(type) {
	case ToggleBlockAction:
		grid, err := s.Grid.ToggleBlock(act.Index)
		if err != nil {
			return State{}, err
		}
		return rederive(s, grid), nil

	case ResizeAction:
		grid, err := s.Grid.Resize(act.Width, act.Height)
		if err != nil {
			return State{}, err
		}
		return rederive(s, grid), nil

	case SetLetterAction:
		grid, err := s.Grid.SetLetter(act.Index, act.Value)
		if err != nil {
			return State{}, err
		}
		return State{Grid: grid, Entries: s.Entries, Clues: s.Clues}, nil

	case SetClueAction:
		return State{
			Grid:    s.Grid,
			Entries: s.Entries,
			Clues:   s.Clues.Set(act.Direction, act.Label, act.Text),
		}, nil

	case SetSymmetryAction:
		return State{
			Grid:    s.Grid.WithSymmetry(act.Symmetry),
			Entries: s.Entries,
			Clues:   s.Clues,
		}, nil
	}

	return State{}, fmt.Errorf("unknown action %T", a)
}

func rederive(s State, grid Grid) State {
	entries := DeriveEntries(grid)
	return State{
		Grid:    grid,
		Entries: entries,
		Clues:   Rebind(s.Clues, entries),
	}
}
