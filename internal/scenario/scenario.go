// Package scenario loads simulation setups from YAML files.
//
// A scenario names the bounds and partition tunables, an explicit body list,
// and optionally a random population added after the listed bodies:
//
//	bounds: {width: 800, height: 600}
//	leaf_capacity: 5
//	max_depth: 12
//	bodies:
//	  - pos: [95, 100]
//	    vel: [5, 0]
//	    radius: 10
//	    mass: 10
//	    color: "#e63946"
//	random:
//	  count: 50
//	  seed: 7
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/circles/internal/physics"
	"github.com/tomz197/circles/internal/populate"
	"github.com/tomz197/circles/internal/sim"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is wrapped by every decoding and validation error.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is the decoded form of a scenario file.
type Scenario struct {
	Bounds       *Bounds `yaml:"bounds"`
	LeafCapacity int     `yaml:"leaf_capacity"`
	MaxDepth     int     `yaml:"max_depth"`
	Bodies       []Body  `yaml:"bodies"`
	Random       *Random `yaml:"random"`
}

// Bounds sets the simulation rectangle.
type Bounds struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Body describes one listed body. Mass defaults to the radius and color to the
// radius gradient.
type Body struct {
	Pos    [2]float64 `yaml:"pos"`
	Vel    [2]float64 `yaml:"vel"`
	Radius float64    `yaml:"radius"`
	Mass   float64    `yaml:"mass"`
	Color  string     `yaml:"color"`
}

// Random adds a seeded random population. A zero seed defers to the caller's seed.
type Random struct {
	Count int   `yaml:"count"`
	Seed  int64 `yaml:"seed"`
}

// Load reads and decodes the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scenario document. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if sc.Random != nil && sc.Random.Count < 0 {
		return nil, fmt.Errorf("%w: random count must not be negative, got %d", ErrInvalidScenario, sc.Random.Count)
	}
	for i, b := range sc.Bodies {
		if b.Color == "" {
			continue
		}
		if _, err := colorful.Hex(b.Color); err != nil {
			return nil, fmt.Errorf("%w: body %d color %q: %w", ErrInvalidScenario, i, b.Color, err)
		}
	}
	return &sc, nil
}

// Region returns the scenario bounds, or fallback when none are set.
func (sc *Scenario) Region(fallback physics.Region) physics.Region {
	if sc.Bounds == nil {
		return fallback
	}
	return physics.Region{X: sc.Bounds.X, Y: sc.Bounds.Y, Width: sc.Bounds.Width, Height: sc.Bounds.Height}
}

// Options returns simulation options for every tunable the scenario sets.
// Simulation-level validation reports bad values.
func (sc *Scenario) Options() []sim.Option {
	var opts []sim.Option
	if sc.Bounds != nil {
		opts = append(opts, sim.WithRegion(sc.Region(physics.Region{})))
	}
	if sc.LeafCapacity != 0 {
		opts = append(opts, sim.WithLeafCapacity(sc.LeafCapacity))
	}
	if sc.MaxDepth != 0 {
		opts = append(opts, sim.WithMaxDepth(sc.MaxDepth))
	}
	return opts
}

// Build returns the listed bodies followed by the random population, placed
// in the scenario bounds or fallback. seed is used when the random block has none.
func (sc *Scenario) Build(fallback physics.Region, seed int64) []physics.Body {
	bodies := make([]physics.Body, 0, len(sc.Bodies))
	for _, b := range sc.Bodies {
		bodies = append(bodies, b.body())
	}

	if sc.Random != nil && sc.Random.Count > 0 {
		if sc.Random.Seed != 0 {
			seed = sc.Random.Seed
		}
		rng := rand.New(rand.NewSource(seed))
		bodies = append(bodies, populate.Random(rng, sc.Random.Count, sc.Region(fallback))...)
	}
	return bodies
}

func (b Body) body() physics.Body {
	mass := b.Mass
	if mass == 0 {
		mass = b.Radius
	}
	col := populate.Color(b.Radius)
	if b.Color != "" {
		// Validated by Parse
		col, _ = colorful.Hex(b.Color)
	}
	return physics.Body{
		Pos:    mgl64.Vec2(b.Pos),
		Vel:    mgl64.Vec2(b.Vel),
		Radius: b.Radius,
		Mass:   mass,
		Tag:    col,
	}
}
