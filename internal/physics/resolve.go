package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// coincidentEpsilon is the center distance below which the line of centers is
// considered undefined and fallbackAxis is used instead.
const coincidentEpsilon = 1e-12

// fallbackAxis separates bodies whose centers coincide.
var fallbackAxis = mgl64.Vec2{1, 0}

// Resolve applies ResolvePair to each pair in order. Each pair reads the current
// state of its bodies, including changes made by earlier pairs in the same call.
// Pairs are not re-validated, so a pair whose overlap was removed by an earlier
// pair is still resolved once.
func Resolve(bodies []Body, pairs []Pair) {
	for _, p := range pairs {
		ResolvePair(&bodies[p.A], &bodies[p.B])
	}
}

// ResolvePair separates two touching bodies along their line of centers and
// exchanges momentum elastically along it.
//
// Both bodies are pushed by half the overlap regardless of mass. Velocities are
// rotated so the line of centers is the x-axis, the 1D elastic collision
// equations are applied to the x components, and the result is rotated back.
func ResolvePair(a, b *Body) {
	diff := b.Pos.Sub(a.Pos)
	dist := diff.Len()

	axis := fallbackAxis
	if dist >= coincidentEpsilon {
		axis = diff.Mul(1 / dist)
	}

	// Reposition so the bodies touch instead of overlap
	overlap := (a.Radius + b.Radius - dist) / 2
	a.Pos = a.Pos.Sub(axis.Mul(overlap))
	b.Pos = b.Pos.Add(axis.Mul(overlap))

	rot := mgl64.Rotate2D(math.Atan2(-axis[1], axis[0]))
	va := rot.Mul2x1(a.Vel)
	vb := rot.Mul2x1(b.Vel)

	va[0], vb[0] = ElasticExchange(a.Mass, va[0], b.Mass, vb[0])

	inv := rot.Transpose()
	a.Vel = inv.Mul2x1(va)
	b.Vel = inv.Mul2x1(vb)
}

// ElasticExchange returns the final velocities of a 1D elastic collision between
// masses m1 and m2 moving at u1 and u2.
func ElasticExchange(m1, u1, m2, u2 float64) (v1, v2 float64) {
	m := m1 + m2
	v1 = ((m1-m2)*u1 + 2*m2*u2) / m
	v2 = ((m2-m1)*u2 + 2*m1*u1) / m
	return v1, v2
}
