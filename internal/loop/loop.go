// Package loop runs an interactive simulation session on a terminal:
// Input → Step → Draw every frame.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/tomz197/circles/internal/config"
	"github.com/tomz197/circles/internal/draw"
	"github.com/tomz197/circles/internal/input"
)

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Profile      termenv.Profile   // Color profile; the zero value is TrueColor
	Logger       *log.Logger       // Defaults to a discarding logger
	Settings     config.Settings
	Seeder       Seeder // Defaults to RandomSeeder(Settings)
}

// host ties a simulation state to the terminal it renders on.
type host struct {
	state      *State
	seeder     Seeder
	logger     *log.Logger
	stream     *input.Stream
	canvas     *draw.Canvas
	frame      *draw.Frame
	termSize   draw.TermSizeFunc
	termWidth  int
	termHeight int
}

// Run starts the frame loop. It returns when the user quits, the reader ends
// or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	h, err := newHost(r, w, opts)
	if err != nil {
		return err
	}

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	h.logger.Info("session started",
		"seed", h.state.Seed, "bodies", h.state.Sim.Len(),
		"width", h.state.Sim.Bounds().Width, "height", h.state.Sim.Bounds().Height)

	for h.state.Running {
		frameStart := time.Now()

		if err := ctx.Err(); err != nil {
			h.state.Running = false
			break
		}

		// ===== INPUT PHASE =====
		step, reseed := h.state.Apply(input.ReadInput(h.stream))
		if !h.state.Running {
			break
		}
		if reseed {
			if err := h.reseed(); err != nil {
				return err
			}
		}

		// ===== UPDATE PHASE =====
		h.updateScreen()
		if step {
			h.state.Sim.Step()
			if h.state.Sim.Stats().OversizedLeaves > 0 {
				h.state.Oversized++
			}
		}

		// ===== DRAW PHASE =====
		if err := h.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}
		h.state.Frames++

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < h.state.FrameDelay {
			select {
			case <-ctx.Done():
			case <-time.After(h.state.FrameDelay - elapsed):
			}
		}
	}

	st := h.state.Sim.Stats()
	h.logger.Info("session ended",
		"ticks", st.Tick, "frames", h.state.Frames, "reseeds", h.state.Reseeds,
		"oversizedTicks", h.state.Oversized, "energy", h.state.Sim.KineticEnergy())

	draw.ClearScreen(w)
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newHost applies option defaults and builds the first population.
func newHost(r *bufio.Reader, w io.Writer, opts Options) (*host, error) {
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seeder := opts.Seeder
	if seeder == nil {
		seeder = RandomSeeder(opts.Settings)
	}

	seed := opts.Settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s, err := seeder(seed)
	if err != nil {
		return nil, fmt.Errorf("seed simulation: %w", err)
	}

	bounds := s.Bounds()
	canvas := newCanvas(bounds.Width, bounds.Height, opts.Profile)

	h := &host{
		state:    NewState(s, seed, opts.Settings.FrameDelay),
		seeder:   seeder,
		logger:   logger,
		stream:   input.StartStream(r),
		canvas:   canvas,
		frame:    draw.NewFrame(w),
		termSize: termSize,
	}
	return h, nil
}

// newCanvas creates a canvas for the given logical size. updateScreen sizes it
// to the terminal on the next frame.
func newCanvas(width, height float64, profile termenv.Profile) *draw.Canvas {
	canvas := draw.NewScaledCanvas(1, 1, width, height)
	canvas.SetProfile(profile)
	return canvas
}

// reseed replaces the simulation with a population from the next seed.
func (h *host) reseed() error {
	seed := h.state.Seed + 1
	s, err := h.seeder(seed)
	if err != nil {
		return fmt.Errorf("reseed simulation: %w", err)
	}
	h.state.Sim = s
	h.state.Seed = seed
	h.state.Reseeds++

	// A scenario may place the new population in different bounds
	bounds := s.Bounds()
	if bounds.Width != h.canvas.LogicalWidth() || bounds.Height != h.canvas.LogicalHeight() {
		h.canvas = newCanvas(bounds.Width, bounds.Height, h.canvas.Profile())
	}
	h.termWidth, h.termHeight = 0, 0

	h.logger.Debug("reseeded", "seed", seed, "bodies", s.Len())
	return nil
}
