package primitives

import "fmt"

// Symmetry is a declared geometric relation that block positions in a
// grid are expected to satisfy.
type Symmetry int

const (
	SymmetryNone Symmetry = iota
	// SymmetryRotational is 180-degree rotational symmetry, the standard
	// convention for American-style grids.
	SymmetryRotational
	// SymmetryMirrorHorizontal reflects across the vertical axis (left/right).
	SymmetryMirrorHorizontal
	// SymmetryMirrorVertical reflects across the horizontal axis (top/bottom).
	SymmetryMirrorVertical
	// SymmetryDiagonalNWSE reflects across the NW-SE diagonal. Square grids only.
	SymmetryDiagonalNWSE
	// SymmetryDiagonalNESW reflects across the NE-SW diagonal. Square grids only.
	SymmetryDiagonalNESW
)

var symmetryNames = map[Symmetry]string{
	SymmetryNone:             "none",
	SymmetryRotational:       "rotational",
	SymmetryMirrorHorizontal: "mirror-horizontal",
	SymmetryMirrorVertical:   "mirror-vertical",
	SymmetryDiagonalNWSE:     "diagonal-nwse",
	SymmetryDiagonalNESW:     "diagonal-nesw",
}

func (s Symmetry) String() string {
	if name, ok := symmetryNames[s]; ok {
		return name
	}
	return fmt.Sprintf("symmetry(%d)", int(s))
}

// ParseSymmetry parses the wire name of a symmetry category. The empty
// string parses as SymmetryNone.
func ParseSymmetry(name string) (Symmetry, error) {
	if name == "" {
		return SymmetryNone, nil
	}
	for s, n := range symmetryNames {
		if n == name {
			return s, nil
		}
	}
	return SymmetryNone, fmt.Errorf("unknown symmetry %q", name)
}

// Partner returns the cell index paired with idx under the symmetry in a
// width x height grid. The second return is false when the symmetry is
// undefined for the grid shape (diagonal symmetries on non-square grids)
// or idx is out of range. SymmetryNone pairs every cell with itself.
func (s Symmetry) Partner(idx, width, height int) (int, bool) {
	if idx < 0 || idx >= width*height {
		return 0, false
	}
	row, col := idx/width, idx%width

	switch s {
	case SymmetryNone:
		return idx, true
	case SymmetryRotational:
		return (height-1-row)*width + (width - 1 - col), true
	case SymmetryMirrorHorizontal:
		return row*width + (width - 1 - col), true
	case SymmetryMirrorVertical:
		return (height-1-row)*width + col, true
	case SymmetryDiagonalNWSE:
		if width != height {
			return 0, false
		}
		return col*width + row, true
	case SymmetryDiagonalNESW:
		if width != height {
			return 0, false
		}
		return (width-1-col)*width + (height - 1 - row), true
	}
	return 0, false
}
