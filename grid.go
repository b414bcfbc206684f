package xword

import (
	"errors"
	"fmt"
	"strings"

	"crosswarped.com/xword/pkg/primitives"
)

var (
	// ErrInvalidDimension is returned when a grid dimension is < 1.
	ErrInvalidDimension = errors.New("grid dimensions must be at least 1x1")
	// ErrInvalidCell is returned when a cell index is out of range or the
	// operation does not apply to the cell's kind.
	ErrInvalidCell = errors.New("invalid cell for operation")
	// ErrEditNotAllowed is returned when a structural edit is attempted on
	// a grid that does not allow block editing (solving-mode grids).
	ErrEditNotAllowed = errors.New("block editing not allowed on this grid")
)

// Cell is a single square of a grid. A cell is a block, or it is
// fillable: empty when Value is "", filled otherwise. A Value longer
// than one rune is a rebus fill.
type Cell struct {
	Block bool
	Value string
}

// Filled reports whether the cell is fillable and holds a value.
func (c Cell) Filled() bool {
	return !c.Block && c.Value != ""
}

// Grid is a rectangular crossword grid.
//
// It is a value type: every mutating operation returns a new Grid and
// leaves the receiver untouched, so snapshots can be shared freely
// across callers (undo stacks, concurrent UI state).
type Grid struct {
	width  int
	height int
	cells  []Cell // row-major

	// blockEditing is false for solving-mode grids, where the block
	// layout is fixed and only letters may change.
	blockEditing bool

	symmetry primitives.Symmetry
}

// NewBlank creates an all-empty editable grid.
func NewBlank(width, height int) (Grid, error) {
	if width < 1 || height < 1 {
		return Grid{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	return Grid{
		width:        width,
		height:       height,
		cells:        make([]Cell, width*height),
		blockEditing: true,
	}, nil
}

func (g Grid) Width() int  { return g.width }
func (g Grid) Height() int { return g.height }

// Size returns the number of cells.
func (g Grid) Size() int { return g.width * g.height }

// Cell returns the cell at a row-major index. Out-of-range indices
// return the zero cell.
func (g Grid) Cell(idx int) Cell {
	if idx < 0 || idx >= len(g.cells) {
		return Cell{}
	}
	return g.cells[idx]
}

// Index converts (row, col) to a row-major cell index.
func (g Grid) Index(row, col int) int {
	return row*g.width + col
}

// Symmetry returns the declared symmetry of the grid.
func (g Grid) Symmetry() primitives.Symmetry { return g.symmetry }

// BlockEditingAllowed reports whether block toggles are permitted.
func (g Grid) BlockEditingAllowed() bool { return g.blockEditing }

// WithSymmetry returns a copy of the grid with the declared symmetry.
// The symmetry is advisory: it is checked at publish time, never
// enforced during editing.
func (g Grid) WithSymmetry(s primitives.Symmetry) Grid {
	out := g.clone()
	out.symmetry = s
	return out
}

// WithBlockEditing returns a copy of the grid with block editing
// enabled or disabled.
func (g Grid) WithBlockEditing(allowed bool) Grid {
	out := g.clone()
	out.blockEditing = allowed
	return out
}

// ToggleBlock flips a cell between Block and Empty. Toggling a filled
// cell to a block clears its letter.
func (g Grid) ToggleBlock(idx int) (Grid, error) {
	if !g.blockEditing {
		return Grid{}, ErrEditNotAllowed
	}
	if idx < 0 || idx >= len(g.cells) {
		return Grid{}, fmt.Errorf("%w: index %d out of range", ErrInvalidCell, idx)
	}

	out := g.clone()
	if out.cells[idx].Block {
		out.cells[idx] = Cell{}
	} else {
		out.cells[idx] = Cell{Block: true}
	}
	return out, nil
}

// SetLetter writes a value into a fillable cell. The empty string
// clears the cell; a multi-rune value is a rebus fill. Values are
// uppercased before storage.
func (g Grid) SetLetter(idx int, value string) (Grid, error) {
	if idx < 0 || idx >= len(g.cells) {
		return Grid{}, fmt.Errorf("%w: index %d out of range", ErrInvalidCell, idx)
	}
	if g.cells[idx].Block {
		return Grid{}, fmt.Errorf("%w: cell %d is a block", ErrInvalidCell, idx)
	}

	out := g.clone()
	out.cells[idx].Value = strings.ToUpper(strings.TrimSpace(value))
	return out, nil
}

// Resize returns a grid of the new dimensions. Cells that exist at the
// same (row, col) in both grids keep their contents; new cells are
// empty.
func (g Grid) Resize(newWidth, newHeight int) (Grid, error) {
	if newWidth < 1 || newHeight < 1 {
		return Grid{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, newWidth, newHeight)
	}

	out := Grid{
		width:        newWidth,
		height:       newHeight,
		cells:        make([]Cell, newWidth*newHeight),
		blockEditing: g.blockEditing,
		symmetry:     g.symmetry,
	}
	for row := 0; row < min(g.height, newHeight); row++ {
		for col := 0; col < min(g.width, newWidth); col++ {
			out.cells[row*newWidth+col] = g.cells[row*g.width+col]
		}
	}
	return out, nil
}

// Complete reports whether every fillable cell holds a value.
func (g Grid) Complete() bool {
	for _, c := range g.cells {
		if !c.Block && c.Value == "" {
			return false
		}
	}
	return true
}

// Repr renders the grid one row per line: '#' for blocks, '.' for empty
// cells, and the first rune of the fill otherwise.
func (g Grid) Repr() string {
	lines := make([]string, g.height)
	for row := range g.height {
		var b strings.Builder
		for col := range g.width {
			c := g.cells[row*g.width+col]
			switch {
			case c.Block:
				b.WriteByte('#')
			case c.Value == "":
				b.WriteByte('.')
			default:
				b.WriteRune([]rune(c.Value)[0])
			}
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

// DebugString is a verbose representation for troubleshooting.
func (g Grid) DebugString() string {
	return fmt.Sprintf("Grid{width: %d, height: %d, symmetry: %v, cells: %v}", g.width, g.height, g.symmetry, g.cells)
}

func (g Grid) clone() Grid {
	out := g
	out.cells = make([]Cell, len(g.cells))
	copy(out.cells, g.cells)
	return out
}
