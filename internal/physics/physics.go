// Package physics provides the quadtree broad phase, circle overlap detection
// and elastic collision resolution for circular bodies in a bounded rectangle.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a circular point mass. Tag is carried for the renderer and never read here.
type Body struct {
	Pos    mgl64.Vec2 // Center position
	Vel    mgl64.Vec2 // Velocity per tick
	Radius float64
	Mass   float64
	Tag    any
}

// Region is an axis-aligned rectangle with its origin at the top-left corner.
type Region struct {
	X, Y          float64
	Width, Height float64
}

// NewRegion creates a region at the origin with the given dimensions.
func NewRegion(width, height float64) Region {
	return Region{Width: width, Height: height}
}

// Quadrants splits the region into its four quarters:
// top-left, top-right, bottom-left, bottom-right.
func (r Region) Quadrants() [4]Region {
	w := r.Width / 2
	h := r.Height / 2
	return [4]Region{
		{X: r.X, Y: r.Y, Width: w, Height: h},
		{X: r.X + w, Y: r.Y, Width: w, Height: h},
		{X: r.X, Y: r.Y + h, Width: w, Height: h},
		{X: r.X + w, Y: r.Y + h, Width: w, Height: h},
	}
}

// Touches reports whether the bounding square of a circle overlaps the region.
// The lower edges are inclusive and the upper edges exclusive, extended by the radius.
func (r Region) Touches(pos mgl64.Vec2, radius float64) bool {
	return r.X <= pos[0]+radius && pos[0]-radius < r.X+r.Width &&
		r.Y <= pos[1]+radius && pos[1]-radius < r.Y+r.Height
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b mgl64.Vec2) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b mgl64.Vec2) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// CirclesTouch checks if two circles overlap or touch.
func CirclesTouch(a, b *Body) bool {
	minDist := a.Radius + b.Radius
	return DistanceSquared(a.Pos, b.Pos) <= minDist*minDist
}

// Finite reports whether the region's origin and size are real numbers.
func (r Region) Finite() bool {
	return finite(r.X, r.Y, r.Width, r.Height)
}

// finite reports whether every component is a real number.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Finite reports whether the body's position, velocity, radius and mass are all finite.
func (b *Body) Finite() bool {
	return finite(b.Pos[0], b.Pos[1], b.Vel[0], b.Vel[1], b.Radius, b.Mass)
}
