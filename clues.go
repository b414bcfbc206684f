package xword

import (
	"maps"
	"strings"
	"unicode"
)

// maxClueLength caps stored clue text. Longer clues are truncated during
// sanitization rather than rejected.
const maxClueLength = 1024

// ClueKey identifies a clue by direction and label number.
type ClueKey struct {
	Direction Direction
	Label     int
}

// Clues maps (direction, label) to clue text. The map is treated as
// immutable: Set and Rebind return new maps.
type Clues map[ClueKey]string

// Set returns a copy of c with the clue text stored under the key,
// sanitized first. Setting empty text removes the key.
func (c Clues) Set(dir Direction, label int, text string) Clues {
	out := make(Clues, len(c)+1)
	maps.Copy(out, c)

	key := ClueKey{Direction: dir, Label: label}
	text = SanitizeClue(text)
	if text == "" {
		delete(out, key)
	} else {
		out[key] = text
	}
	return out
}

// Get returns the clue text for an entry, or "" if none is bound.
func (c Clues) Get(dir Direction, label int) string {
	return c[ClueKey{Direction: dir, Label: label}]
}

// Rebind drops clues whose (direction, label) key no longer matches any
// entry. Clues persist across grid edits as long as their key survives
// recomputation; orphans are removed here as a pure step after each
// structural change.
func Rebind(c Clues, entries []Entry) Clues {
	live := make(map[ClueKey]bool, len(entries))
	for _, e := range entries {
		live[ClueKey{Direction: e.Direction, Label: e.Label}] = true
	}

	out := make(Clues, len(c))
	for key, text := range c {
		if live[key] {
			out[key] = text
		}
	}
	return out
}

// SanitizeClue strips control characters, collapses surrounding
// whitespace and truncates over-long text before storage.
func SanitizeClue(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if runes := []rune(out); len(runes) > maxClueLength {
		out = strings.TrimSpace(string(runes[:maxClueLength]))
	}
	return out
}
