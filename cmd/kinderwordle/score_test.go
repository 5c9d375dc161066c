package main

import (
	"slices"
	"testing"

	"github.com/vovakirdan/kinderwordle/internal/scoring"
)

func TestParseStates(t *testing.T) {
	got, err := parseStates([]string{" Present", "absent", "present"})
	if err != nil {
		t.Fatalf("parseStates() failed: %v", err)
	}
	want := []scoring.LetterState{scoring.Present, scoring.Absent}
	if !slices.Equal(got, want) {
		t.Errorf("parseStates() = %v, want %v", got, want)
	}

	for _, bad := range []string{"tbd", "empty", "green"} {
		if _, err := parseStates([]string{bad}); err == nil {
			t.Errorf("parseStates(%q) should fail", bad)
		}
	}
}
