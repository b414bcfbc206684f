package xword

import (
	"fmt"

	"crosswarped.com/xword/pkg/primitives"
)

// Severity distinguishes findings that block publishing from advisory
// ones.
type Severity int

const (
	// SeverityWarning findings are advisory; publishing proceeds.
	SeverityWarning Severity = iota
	// SeverityError findings block publishing.
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one result of publish-time validation.
type Finding struct {
	Severity Severity
	Code     string
	Message  string
}

// Finding codes emitted by ValidateForPublish.
const (
	CodeMissingClue  = "missing-clue"
	CodeSymmetry     = "symmetry-mismatch"
	CodeSmallGrid    = "small-grid"
	CodeDisconnected = "disconnected"
	CodeUnchecked    = "unchecked-squares"
)

// minComfortableDim is the smallest width/height below which a grid is
// flagged as unusually small.
const minComfortableDim = 5

// ValidateForPublish checks a grid and its clues for publication.
//
// A missing or empty clue for any entry is an error and blocks publish.
// Everything else — symmetry mismatch, size and connectivity
// heuristics, unchecked squares — is a warning and advisory only.
func ValidateForPublish(g Grid, clues Clues) []Finding {
	var findings []Finding
	entries := DeriveEntries(g)

	for _, e := range entries {
		if clues.Get(e.Direction, e.Label) == "" {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Code:     CodeMissingClue,
				Message:  fmt.Sprintf("%d-%s has no clue", e.Label, e.Direction),
			})
		}
	}

	if mismatches := symmetryMismatches(g); mismatches > 0 {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Code:     CodeSymmetry,
			Message:  fmt.Sprintf("block layout breaks %v symmetry at %d cells", g.Symmetry(), mismatches),
		})
	}

	if g.Width() < minComfortableDim || g.Height() < minComfortableDim {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Code:     CodeSmallGrid,
			Message:  fmt.Sprintf("grid is only %dx%d", g.Width(), g.Height()),
		})
	}

	if isDivided(g) {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Code:     CodeDisconnected,
			Message:  "fillable cells are split into disconnected regions",
		})
	}

	if n := uncheckedSquares(g, entries); n > 0 {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Code:     CodeUnchecked,
			Message:  fmt.Sprintf("%d squares appear in only one entry", n),
		})
	}

	return findings
}

// PublishBlocked reports whether any finding is an error.
func PublishBlocked(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the blocking findings.
func Errors(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Warnings returns only the advisory findings.
func Warnings(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// symmetryMismatches counts block cells whose symmetry partner is not a
// block. Zero when no symmetry is declared or the symmetry is undefined
// for the grid shape.
func symmetryMismatches(g Grid) int {
	sym := g.Symmetry()
	if sym == primitives.SymmetryNone {
		return 0
	}

	count := 0
	for idx := 0; idx < g.Size(); idx++ {
		if !g.Cell(idx).Block {
			continue
		}
		partner, ok := sym.Partner(idx, g.Width(), g.Height())
		if !ok {
			return 0
		}
		if !g.Cell(partner).Block {
			count++
		}
	}
	return count
}

// isDivided reports whether the fillable cells form more than one
// connected region. Flood fill from the first fillable cell; anything
// unreached afterwards means the board is divided.
func isDivided(g Grid) bool {
	const (
		unvisited = iota
		visited
		blocked
	)

	state := make([]int, g.Size())
	first := -1
	for idx := 0; idx < g.Size(); idx++ {
		if g.Cell(idx).Block {
			state[idx] = blocked
		} else if first == -1 {
			first = idx
		}
	}
	if first == -1 {
		return false
	}

	w := g.Width()
	explore := []int{first}
	for len(explore) > 0 {
		idx := explore[0]
		explore = explore[1:]

		if state[idx] != unvisited {
			continue
		}
		state[idx] = visited

		row, col := idx/w, idx%w
		if col > 0 && state[idx-1] == unvisited {
			explore = append(explore, idx-1)
		}
		if col+1 < w && state[idx+1] == unvisited {
			explore = append(explore, idx+1)
		}
		if row > 0 && state[idx-w] == unvisited {
			explore = append(explore, idx-w)
		}
		if idx+w < g.Size() && state[idx+w] == unvisited {
			explore = append(explore, idx+w)
		}
	}

	for _, s := range state {
		if s == unvisited {
			return true
		}
	}
	return false
}

// uncheckedSquares counts fillable cells that belong to fewer than two
// entries.
func uncheckedSquares(g Grid, entries []Entry) int {
	membership := make([]int, g.Size())
	for _, e := range entries {
		for _, idx := range e.Cells {
			membership[idx]++
		}
	}

	count := 0
	for idx := 0; idx < g.Size(); idx++ {
		if g.Cell(idx).Block {
			continue
		}
		if membership[idx] < 2 {
			count++
		}
	}
	return count
}
