package loop

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/circles/internal/draw"
	"github.com/tomz197/circles/internal/physics"
)

// statusRows is the number of terminal rows kept below the canvas.
const statusRows = 1

// vectorScale stretches velocity vectors so a speed of 2 is visible.
const vectorScale = 8

var vectorColor = colorful.Color{R: 1, G: 1, B: 1}

// fitCanvas sizes the render area to the largest rectangle matching the bounds'
// aspect ratio, centered in the terminal above the status line. One terminal
// column is as wide as two sub-pixel rows are tall.
func fitCanvas(termWidth, termHeight int, bounds physics.Region) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	avail := max(termHeight-statusRows, 1)
	renderWidth = max(termWidth, 1)
	renderHeight = avail

	if float64(renderWidth)*bounds.Height > float64(renderHeight*2)*bounds.Width {
		renderWidth = int(float64(renderHeight*2) * bounds.Width / bounds.Height)
	} else {
		renderHeight = int(float64(renderWidth) * bounds.Height / bounds.Width / 2)
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((avail-renderHeight)/2, 0)
	return
}

// updateScreen resizes the canvas when the terminal size changes.
// It reports whether the layout changed.
func (h *host) updateScreen() bool {
	termWidth, termHeight, err := h.termSize()
	if err != nil || termWidth <= 0 || termHeight <= 0 {
		return false
	}
	if termWidth == h.termWidth && termHeight == h.termHeight {
		return false
	}
	h.termWidth, h.termHeight = termWidth, termHeight

	renderWidth, renderHeight, offsetCol, offsetRow := fitCanvas(termWidth, termHeight, h.state.Sim.Bounds())
	h.canvas.Resize(renderWidth, renderHeight)
	h.canvas.SetOffset(offsetCol, offsetRow)
	h.frame.SetOffset(offsetCol, offsetRow)
	return true
}

// drawFrame draws every body as a filled circle, then the status line.
func (h *host) drawFrame() error {
	h.frame.Begin()
	h.canvas.Clear()

	bounds := h.state.Sim.Bounds()
	for v := range h.state.Sim.Bodies() {
		col, ok := v.Tag.(colorful.Color)
		if !ok {
			col = draw.DefaultColor
		}
		center := draw.Point{X: v.Pos[0] - bounds.X, Y: v.Pos[1] - bounds.Y}
		h.canvas.FillCircle(center, v.Radius, col)
	}

	// Vectors go on top so they stay visible over neighboring bodies
	if h.state.Vectors {
		for v := range h.state.Sim.Bodies() {
			from := draw.Point{X: v.Pos[0] - bounds.X, Y: v.Pos[1] - bounds.Y}
			to := draw.Point{X: from.X + v.Vel[0]*vectorScale, Y: from.Y + v.Vel[1]*vectorScale}
			h.canvas.DrawLine(from, to, vectorColor)
		}
	}

	h.canvas.Render(h.frame)
	h.canvas.RenderBorder(h.frame)
	h.drawStatus()

	return h.frame.Flush()
}

// drawStatus writes the counters line on the last terminal row.
func (h *host) drawStatus() {
	st := h.state.Sim.Stats()
	line := fmt.Sprintf("tick %d  bodies %d  pairs %d  nodes %d  depth %d  %s  %s  [space] pause [n] step [r] reseed [v] vectors [+/-] speed [q] quit",
		st.Tick, st.Bodies, st.Pairs, st.Nodes, st.Depth, h.state.RunState, h.state.FrameDelay)

	h.frame.Status(h.termHeight, h.termWidth, line)
}
