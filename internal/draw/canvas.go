// Package draw renders colored shapes to a terminal using half-block characters.
package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// pixelSet marks an occupied pixel; the low 24 bits hold the RGB color.
const pixelSet = 1 << 24

// DefaultColor is used for pixels drawn without an explicit color.
var DefaultColor = colorful.Color{R: 200.0 / 255, G: 200.0 / 255, B: 200.0 / 255}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int      // Actual terminal columns
	termHeight     int      // Actual terminal rows
	subPixelHeight int      // termHeight * 2
	pixels         []uint32 // Flat slice: [y * termWidth + x] - pixelSet|rgb, 0 if empty

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height (in sub-pixels)
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	profile termenv.Profile
	fgSeq   map[uint32]string // Cached escape sequences per packed color
	bgSeq   map[uint32]string

	renderBuf strings.Builder // Buffer for batching render output
}

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
// No scaling is applied (1:1 mapping).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the simulation.
// termWidth/Height are the actual terminal dimensions.
// The canvas renders without color until SetProfile is called.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]uint32, subPixelHeight*termWidth),
		logicalWidth:   logicalWidth,
		logicalHeight:  logicalHeight,
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
		profile:        termenv.Ascii,
		fgSeq:          make(map[uint32]string),
		bgSeq:          make(map[uint32]string),
	}
}

// SetProfile selects the terminal color profile used by Render.
func (c *Canvas) SetProfile(p termenv.Profile) {
	if p == c.profile {
		return
	}
	c.profile = p
	clear(c.fgSeq)
	clear(c.bgSeq)
}

// Profile returns the color profile used by Render.
func (c *Canvas) Profile() termenv.Profile {
	return c.profile
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]uint32, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	// Update scale factors
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// pack converts a color to the pixel encoding.
func pack(col colorful.Color) uint32 {
	r, g, b := col.Clamped().RGB255()
	return pixelSet | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// unpack converts a pixel back to a color.
func unpack(px uint32) colorful.Color {
	return colorful.Color{
		R: float64(px>>16&0xff) / 255,
		G: float64(px>>8&0xff) / 255,
		B: float64(px&0xff) / 255,
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, px uint32) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = px
	}
}

// Set sets a pixel at logical coordinates (applies scaling).
func (c *Canvas) Set(x, y float64, col colorful.Color) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py, pack(col))
}

// At reports whether the pixel at actual terminal sub-pixel coordinates is set, and its color.
func (c *Canvas) At(x, y int) (colorful.Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return colorful.Color{}, false
	}
	px := c.pixels[y*c.termWidth+x]
	if px == 0 {
		return colorful.Color{}, false
	}
	return unpack(px), true
}

// colorSeq returns the cached SGR parameters for a packed color.
func (c *Canvas) colorSeq(px uint32, bg bool) string {
	cache := c.fgSeq
	if bg {
		cache = c.bgSeq
	}
	if seq, ok := cache[px]; ok {
		return seq
	}
	seq := c.profile.FromColor(unpack(px)).Sequence(bg)
	cache[px] = seq
	return seq
}

// writeCell appends one styled cell. Colors are skipped entirely for the Ascii profile.
func (c *Canvas) writeCell(row, col int, ch rune, fg, bg uint32) {
	fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
	if c.profile == termenv.Ascii {
		c.renderBuf.WriteRune(ch)
		return
	}

	c.renderBuf.WriteString(termenv.CSI)
	c.renderBuf.WriteString(c.colorSeq(fg, false))
	if bg != 0 {
		c.renderBuf.WriteByte(';')
		c.renderBuf.WriteString(c.colorSeq(bg, true))
	}
	c.renderBuf.WriteByte('m')
	c.renderBuf.WriteRune(ch)
	c.renderBuf.WriteString(termenv.CSI + termenv.ResetSeq + "m")
}

// Render outputs the canvas to the writer using half-block characters.
func (c *Canvas) Render(w io.Writer) {
	// Reset and pre-grow buffer for better performance
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 12) // Estimate ~12 bytes per cell

	for row := 0; row < c.termHeight; row++ {
		topY := row * 2
		bottomY := row*2 + 1
		topOffset := topY * c.termWidth
		bottomOffset := bottomY * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			var bottom uint32
			if bottomY < c.subPixelHeight {
				bottom = c.pixels[bottomOffset+col]
			}

			switch {
			case top != 0 && bottom != 0 && top == bottom:
				c.writeCell(row, col, BlockFull, top, 0)
			case top != 0 && bottom != 0:
				c.writeCell(row, col, BlockUpperHalf, top, bottom)
			case top != 0:
				c.writeCell(row, col, BlockUpperHalf, top, 0)
			case bottom != 0:
				c.writeCell(row, col, BlockLowerHalf, bottom, 0)
			}
		}
	}

	_ = writeChunks(w, c.renderBuf.String())
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution, in sub-pixels).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}
