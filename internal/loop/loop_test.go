package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/tomz197/circles/internal/config"
	"github.com/tomz197/circles/internal/draw"
	"github.com/tomz197/circles/internal/input"
	"github.com/tomz197/circles/internal/physics"
	"github.com/tomz197/circles/internal/scenario"
	"github.com/tomz197/circles/internal/sim"
)

func testSettings() config.Settings {
	s := config.Defaults()
	s.Bodies = 10
	s.FrameDelay = time.Millisecond
	s.Seed = 3
	return s
}

func TestFitCanvas(t *testing.T) {
	square := physics.NewRegion(800, 800)
	wide := physics.NewRegion(1600, 400)

	tests := []struct {
		name                 string
		termW, termH         int
		bounds               physics.Region
		w, h, offCol, offRow int
	}{
		{"square_in_wide_terminal", 80, 25, square, 48, 24, 16, 0},
		{"square_in_tall_terminal", 40, 61, square, 40, 20, 0, 20},
		{"wide_bounds", 80, 25, wide, 80, 10, 0, 7},
		{"tiny_terminal", 1, 1, square, 1, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, offCol, offRow := fitCanvas(tt.termW, tt.termH, tt.bounds)
			if w != tt.w || h != tt.h || offCol != tt.offCol || offRow != tt.offRow {
				t.Errorf("fitCanvas() = %d, %d, %d, %d, expected %d, %d, %d, %d",
					w, h, offCol, offRow, tt.w, tt.h, tt.offCol, tt.offRow)
			}
		})
	}
}

func TestStateApply(t *testing.T) {
	st := NewState(nil, 1, 20*time.Millisecond)

	if step, reseed := st.Apply(input.Input{}); !step || reseed {
		t.Errorf("running state: step=%v reseed=%v, expected step only", step, reseed)
	}

	if step, _ := st.Apply(input.Input{Pause: true}); step {
		t.Error("expected no step right after pausing")
	}
	if st.RunState != RunStatePaused {
		t.Fatalf("RunState = %v, expected paused", st.RunState)
	}
	if step, _ := st.Apply(input.Input{}); step {
		t.Error("expected no step while paused")
	}
	if step, _ := st.Apply(input.Input{Step: true}); !step {
		t.Error("expected single step while paused")
	}
	if step, _ := st.Apply(input.Input{Pause: true}); !step || st.RunState != RunStateRunning {
		t.Error("expected resume to step again")
	}

	st.Apply(input.Input{Faster: true})
	if st.FrameDelay != 10*time.Millisecond {
		t.Errorf("FrameDelay after faster = %v, expected 10ms", st.FrameDelay)
	}
	st.Apply(input.Input{Slower: true})
	st.Apply(input.Input{Slower: true})
	if st.FrameDelay != 40*time.Millisecond {
		t.Errorf("FrameDelay after slower = %v, expected 40ms", st.FrameDelay)
	}

	st.Apply(input.Input{Vectors: true})
	if !st.Vectors {
		t.Error("expected vectors enabled")
	}

	if _, reseed := st.Apply(input.Input{Reseed: true}); !reseed {
		t.Error("expected reseed request")
	}

	if step, _ := st.Apply(input.Input{Quit: true, Step: true}); step || st.Running {
		t.Error("expected quit to stop the loop without stepping")
	}
}

func TestRun_QuitAfterFrames(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	go func() {
		time.Sleep(50 * time.Millisecond)
		_, _ = pw.Write([]byte("q"))
	}()

	var out bytes.Buffer
	err := Run(context.Background(), bufio.NewReader(pr), &out, Options{
		TermSizeFunc: draw.FixedTermSize(80, 25),
		Profile:      termenv.Ascii,
		Settings:     testSettings(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "bodies 10") {
		t.Errorf("expected status line with body count, got %q", got[:min(len(got), 200)])
	}
	if !strings.Contains(got, "tick ") {
		t.Error("expected tick counter in output")
	}
	var tail bytes.Buffer
	draw.ClearScreen(&tail)
	draw.ShowCursor(&tail)
	if !strings.HasSuffix(got, tail.String()) {
		t.Error("expected screen cleared and cursor restored on exit")
	}
}

func TestRun_ContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, bufio.NewReader(pr), io.Discard, Options{
			TermSizeFunc: draw.FixedTermSize(40, 20),
			Settings:     testSettings(),
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Run() error = %v, expected deadline exceeded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after context deadline")
	}
}

func TestRun_SeederError(t *testing.T) {
	s := testSettings()
	s.LeafCapacity = 0

	err := Run(context.Background(), bufio.NewReader(strings.NewReader("")), io.Discard, Options{
		TermSizeFunc: draw.FixedTermSize(40, 20),
		Settings:     s,
	})
	if !errors.Is(err, sim.ErrInvalidConfig) {
		t.Errorf("Run() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestHost_Reseed(t *testing.T) {
	h, err := newHost(bufio.NewReader(strings.NewReader("")), io.Discard, Options{
		TermSizeFunc: draw.FixedTermSize(80, 25),
		Settings:     testSettings(),
	})
	if err != nil {
		t.Fatalf("newHost() error = %v", err)
	}
	h.updateScreen()
	before := h.state.Sim

	if err := h.reseed(); err != nil {
		t.Fatalf("reseed() error = %v", err)
	}
	if h.state.Sim == before {
		t.Error("expected a new simulation after reseed")
	}
	if h.state.Seed != 4 || h.state.Reseeds != 1 {
		t.Errorf("seed=%d reseeds=%d, expected 4 and 1", h.state.Seed, h.state.Reseeds)
	}
	if !h.updateScreen() {
		t.Error("expected layout recomputed after reseed")
	}
}

func TestHost_ReseedNewBounds(t *testing.T) {
	seeder := func(seed int64) (*sim.Simulation, error) {
		size := 200 * float64(seed)
		return sim.New(nil, sim.WithBounds(size, size/2))
	}
	h, err := newHost(bufio.NewReader(strings.NewReader("")), io.Discard, Options{
		TermSizeFunc: draw.FixedTermSize(80, 25),
		Profile:      termenv.ANSI256,
		Settings:     testSettings(),
		Seeder:       seeder,
	})
	if err != nil {
		t.Fatalf("newHost() error = %v", err)
	}
	if h.canvas.LogicalWidth() != 600 || h.canvas.LogicalHeight() != 300 {
		t.Fatalf("canvas logical size = %vx%v, expected 600x300", h.canvas.LogicalWidth(), h.canvas.LogicalHeight())
	}

	if err := h.reseed(); err != nil {
		t.Fatalf("reseed() error = %v", err)
	}
	if h.canvas.LogicalWidth() != 800 || h.canvas.LogicalHeight() != 400 {
		t.Errorf("canvas logical size = %vx%v, expected 800x400", h.canvas.LogicalWidth(), h.canvas.LogicalHeight())
	}
	if h.canvas.Profile() != termenv.ANSI256 {
		t.Error("expected color profile kept across reseed")
	}

	h.updateScreen()
	if w, rows := h.canvas.TerminalWidth(), h.canvas.TerminalHeight(); w != 80 || rows != 20 {
		t.Errorf("canvas terminal size = %dx%d, expected 80x20", w, rows)
	}
}

func TestHost_DrawFrameVectors(t *testing.T) {
	var out bytes.Buffer
	h, err := newHost(bufio.NewReader(strings.NewReader("")), &out, Options{
		TermSizeFunc: draw.FixedTermSize(80, 25),
		Profile:      termenv.TrueColor,
		Settings:     testSettings(),
	})
	if err != nil {
		t.Fatalf("newHost() error = %v", err)
	}
	h.updateScreen()
	h.state.Vectors = true

	if err := h.drawFrame(); err != nil {
		t.Fatalf("drawFrame() error = %v", err)
	}
	if !strings.Contains(out.String(), "2;255;255;255") {
		t.Error("expected white velocity vectors in true color output")
	}
}

func TestSeeders(t *testing.T) {
	s := testSettings()

	random, err := SeederFor(s)
	if err != nil {
		t.Fatalf("SeederFor() error = %v", err)
	}
	sm, err := random(1)
	if err != nil {
		t.Fatalf("random seeder error = %v", err)
	}
	if sm.Len() != 10 {
		t.Errorf("random seeder made %d bodies, expected 10", sm.Len())
	}

	sc, err := scenario.Parse([]byte("bounds: {width: 200, height: 100}\nrandom: {count: 4}\n"))
	if err != nil {
		t.Fatalf("scenario.Parse() error = %v", err)
	}
	sm, err = ScenarioSeeder(s, sc)(1)
	if err != nil {
		t.Fatalf("scenario seeder error = %v", err)
	}
	if sm.Len() != 4 || sm.Bounds().Width != 200 {
		t.Errorf("scenario seeder made %d bodies in %+v", sm.Len(), sm.Bounds())
	}

	s.Scenario = "does-not-exist.yaml"
	if _, err := SeederFor(s); err == nil {
		t.Error("expected error for missing scenario file")
	}
}
