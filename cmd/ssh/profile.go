package main

import (
	"strings"

	"github.com/muesli/termenv"
)

// sessionProfile picks a color profile from the client's TERM and the
// COLORTERM variable it forwarded, if any.
func sessionProfile(termName string, environ []string) termenv.Profile {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key != "COLORTERM" {
			continue
		}
		if value == "truecolor" || value == "24bit" {
			return termenv.TrueColor
		}
	}

	switch {
	case termName == "" || termName == "dumb":
		return termenv.Ascii
	case strings.Contains(termName, "truecolor") || strings.Contains(termName, "direct"):
		return termenv.TrueColor
	case strings.Contains(termName, "256color"):
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}
