package main

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestSessionProfile(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		environ  []string
		expected termenv.Profile
	}{
		{"colorterm_truecolor", "xterm", []string{"LANG=C", "COLORTERM=truecolor"}, termenv.TrueColor},
		{"colorterm_24bit", "xterm", []string{"COLORTERM=24bit"}, termenv.TrueColor},
		{"xterm_256", "xterm-256color", nil, termenv.ANSI256},
		{"xterm_direct", "xterm-direct", nil, termenv.TrueColor},
		{"plain_xterm", "xterm", []string{"COLORTERM=yes"}, termenv.ANSI},
		{"dumb", "dumb", nil, termenv.Ascii},
		{"empty", "", nil, termenv.Ascii},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sessionProfile(tt.term, tt.environ); got != tt.expected {
				t.Errorf("sessionProfile(%q) = %s, expected %s", tt.term, profileName(got), profileName(tt.expected))
			}
		})
	}
}

func TestSizeTracker(t *testing.T) {
	st := newSizeTracker(80, 24)
	st.update(120, 40)

	w, h, err := st.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Errorf("getSize() = %d, %d, %v, expected 120, 40", w, h, err)
	}
}
