package sim

import (
	"errors"
	"fmt"

	"github.com/tomz197/circles/internal/physics"
)

// ErrInvalidConfig is wrapped by every construction error.
var ErrInvalidConfig = errors.New("invalid simulation config")

type config struct {
	bounds       physics.Region
	leafCapacity int
	maxDepth     int
}

func defaultConfig() config {
	return config{
		bounds:       physics.NewRegion(DefaultWidth, DefaultHeight),
		leafCapacity: DefaultLeafCapacity,
		maxDepth:     DefaultMaxDepth,
	}
}

// Option configures a Simulation.
type Option func(*config)

// WithBounds sets the simulation rectangle with its origin at (0, 0).
func WithBounds(width, height float64) Option {
	return func(c *config) {
		c.bounds = physics.NewRegion(width, height)
	}
}

// WithRegion sets the simulation rectangle including its origin.
func WithRegion(r physics.Region) Option {
	return func(c *config) {
		c.bounds = r
	}
}

// WithLeafCapacity sets the maximum number of bodies per quadtree leaf before it subdivides.
func WithLeafCapacity(k int) Option {
	return func(c *config) {
		c.leafCapacity = k
	}
}

// WithMaxDepth bounds quadtree recursion. Cells at this depth stay leaves even when over capacity.
func WithMaxDepth(d int) Option {
	return func(c *config) {
		c.maxDepth = d
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// validate rejects configurations the stepping code cannot keep consistent.
func validate(bodies []physics.Body, c config) error {
	b := c.bounds
	if !(b.Width > 0) || !(b.Height > 0) {
		return invalid("bounds must be positive, got %vx%v", b.Width, b.Height)
	}
	if !b.Finite() {
		return invalid("bounds must be finite, got %+v", b)
	}
	if c.leafCapacity <= 0 {
		return invalid("leaf capacity must be positive, got %d", c.leafCapacity)
	}
	if c.maxDepth <= 0 {
		return invalid("max depth must be positive, got %d", c.maxDepth)
	}

	for i := range bodies {
		body := &bodies[i]
		switch {
		case !body.Finite():
			return invalid("body %d has non-finite state %+v", i, *body)
		case body.Radius <= 0:
			return invalid("body %d radius must be positive, got %v", i, body.Radius)
		case body.Mass <= 0:
			return invalid("body %d mass must be positive, got %v", i, body.Mass)
		case 2*body.Radius > b.Width || 2*body.Radius > b.Height:
			return invalid("body %d diameter %v does not fit in bounds %vx%v", i, 2*body.Radius, b.Width, b.Height)
		}
	}
	return nil
}
