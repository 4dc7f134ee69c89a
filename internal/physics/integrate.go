package physics

import "math"

// Integrate advances every body by one unit time step and clamps it to bounds.
// A body whose edge crosses a wall is snapped onto it; only an outward velocity
// component is reversed, inward components are left as they are.
func Integrate(bodies []Body, bounds Region) {
	for i := range bodies {
		b := &bodies[i]
		b.Pos = b.Pos.Add(b.Vel)

		lo, hi := axisLimits(bounds.X, bounds.Width, b.Radius)
		clampAxis(&b.Pos[0], &b.Vel[0], lo, hi)

		lo, hi = axisLimits(bounds.Y, bounds.Height, b.Radius)
		clampAxis(&b.Pos[1], &b.Vel[1], lo, hi)
	}
}

// Contain snaps bodies back inside bounds without touching their velocities.
// Resolution can push a body past a wall after Integrate has run.
func Contain(bodies []Body, bounds Region) {
	for i := range bodies {
		b := &bodies[i]

		lo, hi := axisLimits(bounds.X, bounds.Width, b.Radius)
		b.Pos[0] = clampRange(b.Pos[0], lo, hi)

		lo, hi = axisLimits(bounds.Y, bounds.Height, b.Radius)
		b.Pos[1] = clampRange(b.Pos[1], lo, hi)
	}
}

// axisLimits returns the allowed center range on one axis for a circle of radius r.
func axisLimits(origin, extent, r float64) (lo, hi float64) {
	return origin + r, origin + extent - r
}

// clampAxis snaps pos into [lo, hi], reversing vel if it points further outward.
func clampAxis(pos, vel *float64, lo, hi float64) {
	if *pos <= lo {
		*pos = lo
		if *vel < 0 {
			*vel = math.Max(0, -*vel)
		}
	}
	if *pos >= hi {
		*pos = hi
		if *vel > 0 {
			*vel = math.Min(0, -*vel)
		}
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
