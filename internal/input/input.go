// Package input turns raw terminal bytes into per-frame simulation controls.
package input

import (
	"bufio"
)

// Input represents the controls pressed since the previous frame.
type Input struct {
	Quit    bool
	Pause   bool // Toggle pause
	Step    bool // Advance one tick while paused
	Reseed  bool // Replace the population
	Faster  bool
	Slower  bool
	Vectors bool // Toggle velocity vector overlay
	Pressed []byte
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Arrow up/down map to Faster/Slower. A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	inp := Parse(buf)
	if s.closed {
		inp.Quit = true
	}
	return inp
}

// Parse maps a batch of raw bytes to controls.
func Parse(buf []byte) Input {
	inp := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A': // Up arrow
				inp.Faster = true
				i += 2
				continue
			case 'B': // Down arrow
				inp.Slower = true
				i += 2
				continue
			case 'C', 'D':
				i += 2
				continue
			}
		}

		applyByte(&inp, b)
	}

	return inp
}

// applyByte sets the control for a single pressed byte.
func applyByte(inp *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		inp.Quit = true
	case ' ', 'p', 'P':
		inp.Pause = !inp.Pause
	case 'n', 'N', '\n', '\r':
		inp.Step = true
	case 'r', 'R':
		inp.Reseed = true
	case '+', '=':
		inp.Faster = true
	case '-', '_':
		inp.Slower = true
	case 'v', 'V':
		inp.Vectors = !inp.Vectors
	}
}
