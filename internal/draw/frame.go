package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Control sequences built from termenv's templates.
var (
	clearSeq      = termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1) + termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 2)
	hideCursorSeq = termenv.CSI + termenv.HideCursorSeq
	showCursorSeq = termenv.CSI + termenv.ShowCursorSeq
)

// Frame buffers one frame of terminal output and sends it in MTU-sized chunks.
// Canvas coordinates are shifted by the frame offset so overlays line up with a
// centered canvas; Status addresses the terminal directly.
type Frame struct {
	buf    strings.Builder
	out    *bufio.Writer
	numBuf [20]byte // Scratch for allocation-free integer formatting
	offCol int
	offRow int
}

// NewFrame creates a frame buffer writing to w with no offset.
func NewFrame(w io.Writer) *Frame {
	return &Frame{out: bufio.NewWriterSize(w, 8192)}
}

// SetOffset sets the 0-based terminal position of the canvas origin.
func (f *Frame) SetOffset(col, row int) {
	f.offCol = col
	f.offRow = row
}

// Begin starts a new frame by erasing the previous one.
func (f *Frame) Begin() {
	f.buf.WriteString(clearSeq)
}

// cursor appends an absolute 1-based cursor position.
func (f *Frame) cursor(col, row int) {
	f.buf.WriteString(termenv.CSI)
	f.buf.Write(strconv.AppendInt(f.numBuf[:0], int64(row), 10))
	f.buf.WriteByte(';')
	f.buf.Write(strconv.AppendInt(f.numBuf[:0], int64(col), 10))
	f.buf.WriteByte('H')
}

// MoveCursor positions the cursor at 1-based canvas coordinates.
func (f *Frame) MoveCursor(col, row int) {
	f.cursor(col+f.offCol, row+f.offRow)
}

// Write implements io.Writer so a Canvas can render into the frame.
func (f *Frame) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

// WriteString appends s at the current cursor.
func (f *Frame) WriteString(s string) {
	f.buf.WriteString(s)
}

// WriteAt writes s at 1-based canvas coordinates.
func (f *Frame) WriteAt(col, row int, s string) {
	f.MoveCursor(col, row)
	f.buf.WriteString(s)
}

// Status writes s from the first column of terminal row, cut to width bytes.
func (f *Frame) Status(row, width int, s string) {
	if width <= 0 || row <= 0 {
		return
	}
	if len(s) > width {
		s = s[:width]
	}
	f.cursor(1, row)
	f.buf.WriteString(s)
}

var _ io.Writer = (*Frame)(nil)

// Flush sends the buffered frame and resets the buffer.
func (f *Frame) Flush() error {
	data := f.buf.String()
	f.buf.Reset()
	if err := writeChunks(f.out, data); err != nil {
		return err
	}
	return f.out.Flush()
}

// maxChunkSize keeps single writes under a typical 1500 byte MTU.
const maxChunkSize = 1400

// writeChunks writes data to w at most maxChunkSize bytes at a time.
func writeChunks(w io.Writer, data string) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(w, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc reports terminal dimensions in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedTermSize returns a TermSizeFunc that always reports the given size.
func FixedTermSize(width, height int) TermSizeFunc {
	return func() (int, int, error) {
		return width, height, nil
	}
}

// ClearScreen erases the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearSeq)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, hideCursorSeq)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, showCursorSeq)
}
