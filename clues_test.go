package xword

import (
	"strings"
	"testing"
)

func TestClues_SetAndGet(t *testing.T) {
	c := Clues{}
	c2 := c.Set(Across, 1, "Feline friend")

	if got := c2.Get(Across, 1); got != "Feline friend" {
		t.Errorf("Get = %q, want %q", got, "Feline friend")
	}
	if got := c2.Get(Down, 1); got != "" {
		t.Errorf("Get(Down, 1) = %q, want empty", got)
	}
	// Input map untouched.
	if len(c) != 0 {
		t.Error("Set mutated its receiver")
	}
}

func TestClues_SetEmptyRemoves(t *testing.T) {
	c := Clues{}.Set(Down, 3, "Opposite of up")
	c = c.Set(Down, 3, "")
	if len(c) != 0 {
		t.Errorf("clue not removed, map has %d entries", len(c))
	}
}

func TestRebind_DropsOrphans(t *testing.T) {
	g := mustGrid(t, 5, 5)
	entries := DeriveEntries(g)

	c := Clues{}.
		Set(Across, 1, "First across").
		Set(Down, 5, "Last down").
		Set(Across, 99, "No such entry")

	bound := Rebind(c, entries)
	if got := bound.Get(Across, 1); got != "First across" {
		t.Errorf("surviving clue lost: %q", got)
	}
	if got := bound.Get(Down, 5); got != "Last down" {
		t.Errorf("surviving clue lost: %q", got)
	}
	if got := bound.Get(Across, 99); got != "" {
		t.Errorf("orphan clue kept: %q", got)
	}
	// Original untouched.
	if got := c.Get(Across, 99); got != "No such entry" {
		t.Error("Rebind mutated its input")
	}
}

func TestSanitizeClue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Capital of France", "Capital of France"},
		{"trims whitespace", "  padded  ", "padded"},
		{"strips control characters", "no\x00control\x1bhere", "nocontrolhere"},
		{"strips newlines and tabs", "one\nline\tonly", "onelineonly"},
		{"keeps unicode", "Où est la bibliothèque ?", "Où est la bibliothèque ?"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeClue(tt.in); got != tt.want {
				t.Errorf("SanitizeClue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	t.Run("truncates long clues", func(t *testing.T) {
		long := strings.Repeat("x", maxClueLength+100)
		got := SanitizeClue(long)
		if len([]rune(got)) != maxClueLength {
			t.Errorf("len = %d, want %d", len([]rune(got)), maxClueLength)
		}
	})
}
