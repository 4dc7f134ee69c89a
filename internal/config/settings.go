package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/circles/internal/sim"
)

// Population defaults, matching the classic 800x800 demo.
const (
	DefaultBodies     = 100
	DefaultFrameDelay = 20 * time.Millisecond
	DefaultLogLevel   = "info"
)

// Frame delay limits for interactive speed changes.
const (
	MinFrameDelay = 1 * time.Millisecond
	MaxFrameDelay = 500 * time.Millisecond
)

// Settings holds everything a host needs to seed and run a simulation.
type Settings struct {
	Bodies       int
	Width        float64
	Height       float64
	LeafCapacity int
	MaxDepth     int
	FrameDelay   time.Duration
	Seed         int64     // 0 picks a time-based seed
	Scenario     string    // Optional path to a YAML scenario
	LogLevel     log.Level // Level for the host logger
}

// Defaults returns the settings used when no variables are set.
func Defaults() Settings {
	return Settings{
		Bodies:       DefaultBodies,
		Width:        sim.DefaultWidth,
		Height:       sim.DefaultHeight,
		LeafCapacity: sim.DefaultLeafCapacity,
		MaxDepth:     sim.DefaultMaxDepth,
		FrameDelay:   DefaultFrameDelay,
		LogLevel:     log.InfoLevel,
	}
}

// Load reads SIM_* variables over the defaults. All malformed variables are
// reported together.
func Load() (Settings, error) {
	s := Defaults()
	var errs []error
	var err error

	if s.Bodies, err = GetEnvInt("SIM_BODIES", s.Bodies); err != nil {
		errs = append(errs, err)
	}
	if s.Width, err = GetEnvFloat("SIM_WIDTH", s.Width); err != nil {
		errs = append(errs, err)
	}
	if s.Height, err = GetEnvFloat("SIM_HEIGHT", s.Height); err != nil {
		errs = append(errs, err)
	}
	if s.LeafCapacity, err = GetEnvInt("SIM_LEAF_CAPACITY", s.LeafCapacity); err != nil {
		errs = append(errs, err)
	}
	if s.MaxDepth, err = GetEnvInt("SIM_MAX_DEPTH", s.MaxDepth); err != nil {
		errs = append(errs, err)
	}
	if s.FrameDelay, err = GetEnvDuration("SIM_FRAME_DELAY", s.FrameDelay); err != nil {
		errs = append(errs, err)
	}
	seed, err := GetEnvInt("SIM_SEED", 0)
	if err != nil {
		errs = append(errs, err)
	}
	s.Seed = int64(seed)
	s.Scenario = GetEnv("SIM_SCENARIO", "")

	level := GetEnv("SIM_LOG_LEVEL", DefaultLogLevel)
	if level == "" {
		level = DefaultLogLevel
	}
	if s.LogLevel, err = log.ParseLevel(level); err != nil {
		errs = append(errs, fmt.Errorf("SIM_LOG_LEVEL: %w", err))
	}

	if s.Bodies < 0 {
		errs = append(errs, fmt.Errorf("SIM_BODIES: must not be negative, got %d", s.Bodies))
	}
	if s.FrameDelay < 0 {
		errs = append(errs, fmt.Errorf("SIM_FRAME_DELAY: must not be negative, got %s", s.FrameDelay))
	}

	if len(errs) > 0 {
		return Settings{}, errors.Join(errs...)
	}
	return s, nil
}

// SimOptions converts the partition and bounds settings into simulation options.
func (s Settings) SimOptions() []sim.Option {
	return []sim.Option{
		sim.WithBounds(s.Width, s.Height),
		sim.WithLeafCapacity(s.LeafCapacity),
		sim.WithMaxDepth(s.MaxDepth),
	}
}

// ClampFrameDelay limits d to the interactive speed range.
func ClampFrameDelay(d time.Duration) time.Duration {
	return min(max(d, MinFrameDelay), MaxFrameDelay)
}
