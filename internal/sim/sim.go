// Package sim owns a body arena and advances it one tick at a time:
// integrate and clamp, build the quadtree, detect touching pairs, resolve them.
package sim

import (
	"iter"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/circles/internal/physics"
)

// Default tunables used when no option overrides them.
const (
	DefaultWidth        = 800
	DefaultHeight       = 800
	DefaultLeafCapacity = 5
	DefaultMaxDepth     = 8
)

// Simulation is a single-threaded stepping engine. Bodies live in an arena owned
// by the simulation; the quadtree and pair list refer to them by index.
// A Simulation must not be shared between goroutines without external locking.
type Simulation struct {
	bodies   []physics.Body
	bounds   physics.Region
	tree     *physics.Quadtree
	detector *physics.Detector
	stats    Stats
}

// View is a read-only copy of the parts of a body a renderer needs.
type View struct {
	Pos    mgl64.Vec2
	Vel    mgl64.Vec2
	Radius float64
	Tag    any
}

// Stats describes the most recent tick.
type Stats struct {
	Tick            uint64 // Ticks completed since construction
	Bodies          int
	Pairs           int // Colliding pairs resolved
	Nodes           int // Quadtree nodes built
	Leaves          int
	Depth           int // Deepest leaf
	OversizedLeaves int // Leaves over capacity at maxDepth or after a saturated split
}

// New validates the configuration and creates a simulation. The bodies are
// copied into the simulation's arena; later changes to the argument have no effect.
func New(bodies []physics.Body, opts ...Option) (*Simulation, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validate(bodies, cfg); err != nil {
		return nil, err
	}

	return &Simulation{
		bodies:   slices.Clone(bodies),
		bounds:   cfg.bounds,
		tree:     physics.NewQuadtree(cfg.leafCapacity, cfg.maxDepth),
		detector: physics.NewDetector(),
		stats:    Stats{Bodies: len(bodies)},
	}, nil
}

// Step advances the simulation by one unit time step.
func (s *Simulation) Step() {
	physics.Integrate(s.bodies, s.bounds)

	s.tree.Build(s.bodies, s.bounds)
	pairs := s.detector.Detect(s.bodies, s.tree)
	physics.Resolve(s.bodies, pairs)

	// Resolution may push a body through a wall
	physics.Contain(s.bodies, s.bounds)

	s.recordStats(len(pairs))
}

// recordStats captures tree shape and pair count for the tick just run.
func (s *Simulation) recordStats(pairs int) {
	st := Stats{
		Tick:   s.stats.Tick + 1,
		Bodies: len(s.bodies),
		Pairs:  pairs,
		Nodes:  s.tree.NodeCount(),
	}
	s.tree.Walk(func(leaf *physics.Node) {
		st.Leaves++
		st.Depth = max(st.Depth, leaf.Depth)
		if len(leaf.Bodies) > s.tree.Capacity() {
			st.OversizedLeaves++
		}
	})
	s.stats = st
}

// Bodies iterates over read-only views of the live bodies in arena order.
func (s *Simulation) Bodies() iter.Seq[View] {
	return func(yield func(View) bool) {
		for i := range s.bodies {
			b := &s.bodies[i]
			if !yield(View{Pos: b.Pos, Vel: b.Vel, Radius: b.Radius, Tag: b.Tag}) {
				return
			}
		}
	}
}

// Len returns the number of bodies.
func (s *Simulation) Len() int {
	return len(s.bodies)
}

// Bounds returns the simulation rectangle.
func (s *Simulation) Bounds() physics.Region {
	return s.bounds
}

// Stats returns counters for the most recent tick.
func (s *Simulation) Stats() Stats {
	return s.stats
}

// Snapshot returns a copy of the full body state, including velocity and mass.
func (s *Simulation) Snapshot() []physics.Body {
	return slices.Clone(s.bodies)
}

// KineticEnergy returns the total ½mv² of all bodies.
func (s *Simulation) KineticEnergy() float64 {
	total := 0.0
	for i := range s.bodies {
		b := &s.bodies[i]
		total += 0.5 * b.Mass * b.Vel.Dot(b.Vel)
	}
	return total
}
