package loop

import (
	"fmt"
	"math/rand"

	"github.com/tomz197/circles/internal/config"
	"github.com/tomz197/circles/internal/physics"
	"github.com/tomz197/circles/internal/populate"
	"github.com/tomz197/circles/internal/scenario"
	"github.com/tomz197/circles/internal/sim"
)

// Seeder builds a fresh simulation for the given seed. The loop calls it at
// startup and again on every reseed with an incremented seed.
type Seeder func(seed int64) (*sim.Simulation, error)

// RandomSeeder populates the settings' bounds with Settings.Bodies random bodies.
func RandomSeeder(s config.Settings) Seeder {
	return func(seed int64) (*sim.Simulation, error) {
		rng := rand.New(rand.NewSource(seed))
		bodies := populate.Random(rng, s.Bodies, physics.NewRegion(s.Width, s.Height))
		return sim.New(bodies, s.SimOptions()...)
	}
}

// ScenarioSeeder builds every simulation from sc. Scenario tunables override
// the settings; the seed only affects the scenario's random block.
func ScenarioSeeder(s config.Settings, sc *scenario.Scenario) Seeder {
	fallback := physics.NewRegion(s.Width, s.Height)
	opts := append(s.SimOptions(), sc.Options()...)
	return func(seed int64) (*sim.Simulation, error) {
		return sim.New(sc.Build(fallback, seed), opts...)
	}
}

// SeederFor picks the scenario seeder when Settings.Scenario names a file and
// the random seeder otherwise.
func SeederFor(s config.Settings) (Seeder, error) {
	if s.Scenario == "" {
		return RandomSeeder(s), nil
	}
	sc, err := scenario.Load(s.Scenario)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	return ScenarioSeeder(s, sc), nil
}
