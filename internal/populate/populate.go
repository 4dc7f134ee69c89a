// Package populate seeds simulations with bodies.
package populate

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/circles/internal/physics"
)

// Random population tunables.
const (
	MinRadius   = 8.0
	RadiusRange = 18.0
	Speed       = 2.0
)

// Random creates n bodies placed uniformly inside bounds, each moving at Speed
// in a uniform direction. Radii follow 8+18u², skewing toward small bodies,
// and mass equals radius. The same rng state yields the same population.
func Random(rng *rand.Rand, n int, bounds physics.Region) []physics.Body {
	bodies := make([]physics.Body, 0, n)
	for range n {
		u := rng.Float64()
		r := MinRadius + RadiusRange*u*u
		// Shrink to fit narrow bounds so the body starts fully inside
		r = min(r, bounds.Width/2, bounds.Height/2)

		pos := mgl64.Vec2{
			bounds.X + r + rng.Float64()*(bounds.Width-2*r),
			bounds.Y + r + rng.Float64()*(bounds.Height-2*r),
		}
		angle := rng.Float64() * 2 * math.Pi
		vel := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(Speed)

		bodies = append(bodies, physics.Body{
			Pos:    pos,
			Vel:    vel,
			Radius: r,
			Mass:   r,
			Tag:    Color(r),
		})
	}
	return bodies
}

// Color maps a radius to a cyan-to-salmon gradient: small bodies are cyan,
// large ones warm.
func Color(radius float64) colorful.Color {
	return colorful.Color{
		R: (60 + 7*radius) / 255,
		G: (230 - 3*radius) / 255,
		B: (230 - 3*radius) / 255,
	}.Clamped()
}
