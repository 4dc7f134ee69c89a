package loop

import (
	"time"

	"github.com/tomz197/circles/internal/config"
	"github.com/tomz197/circles/internal/input"
	"github.com/tomz197/circles/internal/sim"
)

// RunState represents whether the simulation advances on its own.
type RunState int

const (
	RunStateRunning RunState = iota // Steps every frame
	RunStatePaused                  // Steps only on request
)

// String returns the label shown in the status line.
func (s RunState) String() string {
	if s == RunStatePaused {
		return "paused"
	}
	return "running"
}

// State holds the per-session host state around a simulation.
type State struct {
	Sim        *sim.Simulation
	Input      input.Input
	RunState   RunState
	Vectors    bool          // Show velocity vectors
	FrameDelay time.Duration // Sleep between frames
	Seed       int64         // Seed of the current population
	Reseeds    int           // Times the population was replaced
	Running    bool          // Loop running
	Frames     uint64        // Frames drawn
	Oversized  uint64        // Ticks that ended with a leaf over capacity
}

// NewState creates a running state for the given simulation.
func NewState(s *sim.Simulation, seed int64, frameDelay time.Duration) *State {
	return &State{
		Sim:        s,
		RunState:   RunStateRunning,
		FrameDelay: frameDelay,
		Seed:       seed,
		Running:    true,
	}
}

// Apply updates the state from one frame of input. It reports whether the
// simulation should step this frame and whether a reseed was requested.
func (st *State) Apply(inp input.Input) (step, reseed bool) {
	st.Input = inp

	if inp.Quit {
		st.Running = false
		return false, false
	}
	if inp.Pause {
		if st.RunState == RunStatePaused {
			st.RunState = RunStateRunning
		} else {
			st.RunState = RunStatePaused
		}
	}
	if inp.Vectors {
		st.Vectors = !st.Vectors
	}
	if inp.Faster {
		st.FrameDelay = config.ClampFrameDelay(st.FrameDelay / 2)
	}
	if inp.Slower {
		st.FrameDelay = config.ClampFrameDelay(st.FrameDelay * 2)
	}

	step = st.RunState == RunStateRunning || inp.Step
	return step, inp.Reseed
}
