package draw

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// FillCircle fills a circle given in logical coordinates using a scanline fill.
// Works in pixel space so horizontal and vertical scaling can differ.
// Circles smaller than a pixel still set the pixel under their center.
func (c *Canvas) FillCircle(center Point, radius float64, col colorful.Color) {
	px := pack(col)

	cx := center.X * c.scaleX
	cy := center.Y * c.scaleY
	rx := radius * c.scaleX
	ry := radius * c.scaleY

	c.setPixel(int(math.Round(cx)), int(math.Round(cy)), px)
	if rx <= 0 || ry <= 0 {
		return
	}

	yStart := int(math.Floor(cy - ry))
	yEnd := int(math.Ceil(cy + ry))
	if yStart < 0 {
		yStart = 0
	}
	if yEnd > c.subPixelHeight-1 {
		yEnd = c.subPixelHeight - 1
	}

	for y := yStart; y <= yEnd; y++ {
		// Pixel centers sit on integer coordinates, matching Set
		dy := (float64(y) - cy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)

		xStart := int(math.Ceil(cx - half))
		xEnd := int(math.Floor(cx + half))
		if xStart < 0 {
			xStart = 0
		}
		if xEnd > c.termWidth-1 {
			xEnd = c.termWidth - 1
		}
		for x := xStart; x <= xEnd; x++ {
			c.pixels[y*c.termWidth+x] = px
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col colorful.Color) {
	px := pack(col)

	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, px)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
