package input

import (
	"bufio"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		bytes    string
		expected Input
	}{
		{"quit", "q", Input{Quit: true}},
		{"ctrl_c", "\x03", Input{Quit: true}},
		{"pause", " ", Input{Pause: true}},
		{"pause_twice_cancels", "  ", Input{}},
		{"step_enter", "\r", Input{Step: true}},
		{"step_n", "n", Input{Step: true}},
		{"reseed", "R", Input{Reseed: true}},
		{"arrow_up", "\x1b[A", Input{Faster: true}},
		{"arrow_down", "\x1b[B", Input{Slower: true}},
		{"arrow_left_ignored", "\x1b[D", Input{}},
		{"plus_minus", "+-", Input{Faster: true, Slower: true}},
		{"vectors", "v", Input{Vectors: true}},
		{"combined", "rn v", Input{Reseed: true, Step: true, Pause: true, Vectors: true}},
		{"unknown", "xyz", Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.bytes))
			got.Pressed = nil
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Parse(%q) = %+v, expected %+v", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestParse_EscapeAlone(t *testing.T) {
	got := Parse([]byte{'\x1b'})
	if got.Quit || got.Faster || got.Slower {
		t.Errorf("lone escape produced controls: %+v", got)
	}
}

func TestReadInput_ClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("r")))

	deadline := time.Now().Add(2 * time.Second)
	sawReseed := false
	for time.Now().Before(deadline) {
		inp := ReadInput(s)
		sawReseed = sawReseed || inp.Reseed
		if inp.Quit {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if !s.Closed() {
		t.Fatal("expected stream closed after EOF")
	}
	if !sawReseed {
		t.Error("expected reseed byte to be delivered before close")
	}
	if !ReadInput(s).Quit {
		t.Error("expected closed stream to keep reporting Quit")
	}
}
