package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/lixenwraith/glyph-reveal/glyph"
	"github.com/lixenwraith/glyph-reveal/reveal"
	"github.com/lixenwraith/glyph-reveal/status"
)

// Playback defaults
const (
	DefaultFPS      = 60
	DefaultDuration = 8 * time.Second
)

var (
	// ErrNotStarted is returned by operations that need a score grid before Start
	ErrNotStarted = errors.New("engine: reveal not started")

	// ErrInvalidDuration rejects non-positive durations, which would make speed infinite
	ErrInvalidDuration = errors.New("engine: duration must be positive")
)

// Config fixes the parameters of one reveal run
type Config struct {
	Mode     reveal.Mode
	Duration time.Duration
	FPS      int

	// Color is applied uniformly to every glyph
	Color RGB

	// Rand feeds randomized modes; nil falls back to Seed
	Rand *rand.Rand

	// Seed makes Rain and Dissolve reproducible when non-zero
	Seed int64
}

// DefaultConfig returns a Circular reveal over eight seconds at 60 fps in white
func DefaultConfig() Config {
	return Config{
		Mode:     reveal.ModeCircular,
		Duration: DefaultDuration,
		FPS:      DefaultFPS,
		Color:    White,
	}
}

// Engine drives a progressive reveal of one glyph grid
// Not safe for concurrent use: one goroutine owns Start, Tick, Restart and rendering
type Engine struct {
	grid   *glyph.Grid
	cfg    Config
	scores *reveal.Scores
	pb     Playback

	sink    status.Sink
	metrics *status.Metrics

	// view is fixed by Prepare for the rest of the run
	view    Viewport
	viewSet bool
	frames  uint64
}

// New validates cfg and binds the grid
// sink and metrics may be nil
func New(grid *glyph.Grid, cfg Config, sink status.Sink, metrics *status.Metrics) (*Engine, error) {
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		w, h := 0, 0
		if grid != nil {
			w, h = grid.Width, grid.Height
		}
		return nil, &reveal.EmptyGridError{Width: w, Height: h}
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, cfg.Duration)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if !cfg.Mode.Valid() {
		log.Printf("engine: unknown mode %d, falling back to %s", cfg.Mode, reveal.ModeCircular)
		cfg.Mode = reveal.ModeCircular
	}
	if sink == nil {
		sink = status.Discard
	}

	return &Engine{
		grid:    grid,
		cfg:     cfg,
		sink:    sink,
		metrics: metrics,
		pb: Playback{
			State:        StateIdle,
			Mode:         cfg.Mode,
			FPS:          cfg.FPS,
			DurationSecs: cfg.Duration.Seconds(),
		},
	}, nil
}

// Grid returns the grid being revealed
func (e *Engine) Grid() *glyph.Grid { return e.grid }

// Config returns the run configuration
func (e *Engine) Config() Config { return e.cfg }

// Scores returns the realized score grid, nil before Start
func (e *Engine) Scores() *reveal.Scores { return e.scores }

// Playback returns a snapshot of the playback state
func (e *Engine) Playback() Playback { return e.pb }

// Frames returns the number of frames rendered
func (e *Engine) Frames() uint64 { return e.frames }

// Start realizes the score grid and enters Playing
// Calling Start again after a successful start is a no-op
func (e *Engine) Start() error {
	if e.scores != nil {
		return nil
	}

	rng := e.cfg.Rand
	if rng == nil && e.cfg.Mode.Randomized() {
		rng = reveal.NewRand(e.cfg.Seed)
	}

	scores, err := reveal.Generate(e.cfg.Mode, e.grid.Width, e.grid.Height, e.grid.Fields, rng)
	if err != nil {
		e.sink.Report(status.Error(err.Error()))
		return fmt.Errorf("generate %s scores: %w", e.cfg.Mode, err)
	}
	e.scores = scores

	e.pb.begin(scores.Max)
	log.Printf("engine: %s reveal of %dx%d, max score %.3f, %.5f per frame",
		e.cfg.Mode, e.grid.Width, e.grid.Height, e.pb.Max, e.pb.SpeedPerFrame)

	e.publishProgress()
	e.sink.Report(status.Playing(e.cfg.Mode.String()))
	return nil
}

// Tick advances progress by one frame
// Returns true on the frame that completes the reveal
func (e *Engine) Tick() bool {
	done := e.pb.advance()
	e.publishProgress()
	if done {
		log.Printf("engine: reveal complete after %d ticks", e.pb.Ticks)
		e.sink.Report(status.Complete())
	}
	return done
}

// Finish completes a playing reveal at once, without ticking
func (e *Engine) Finish() {
	if !e.pb.finish() {
		return
	}
	e.publishProgress()
	log.Printf("engine: reveal finished early after %d ticks", e.pb.Ticks)
	e.sink.Report(status.Complete())
}

// Restart rewinds to zero progress, reusing the realized scores
// An engine that was never started is started instead
func (e *Engine) Restart() error {
	if e.scores == nil {
		return e.Start()
	}

	e.pb.rewind()
	if e.metrics != nil {
		e.metrics.Restarts.Add(1)
	}
	e.publishProgress()
	e.sink.Report(status.Playing(e.cfg.Mode.String()))
	return nil
}

// Viewport sizes the drawn window for a surface
func (e *Engine) Viewport(s Surface) Viewport {
	cols, rows := s.Size()
	return CellViewport(e.grid.Width, e.grid.Height, cols, rows)
}

// RevealMask returns, for every cell inside v, whether it is visible at the current progress
func (e *Engine) RevealMask(v Viewport) ([][]bool, error) {
	if e.scores == nil {
		return nil, ErrNotStarted
	}

	v = CellViewport(e.grid.Width, e.grid.Height, v.Cols, v.Rows)
	mask := make([][]bool, v.Rows)
	for y := range mask {
		mask[y] = make([]bool, v.Cols)
		for x := range mask[y] {
			mask[y][x] = e.scores.Revealed(x, y, e.pb.Progress)
		}
	}
	return mask, nil
}

// RenderFrame draws every revealed cell inside the surface's viewport
// Unrevealed cells are left as background
func (e *Engine) RenderFrame(s Surface) error {
	if e.scores == nil {
		return ErrNotStarted
	}

	v := e.view
	if !e.viewSet {
		v = e.Viewport(s)
	}
	progress := e.pb.Progress

	s.Clear()
	for y := 0; y < v.Rows; y++ {
		scoreRow := e.scores.Values[y]
		cellRow := e.grid.Cells[y]
		for x := 0; x < v.Cols; x++ {
			if scoreRow[x] <= progress {
				s.DrawGlyph(x, y, cellRow[x])
			}
		}
	}
	s.Show()

	e.frames++
	if e.metrics != nil {
		e.metrics.Frames.Add(1)
	}
	return nil
}

// Prepare builds the surface's glyph cache from the runes present in the grid
// and fixes the viewport for subsequent frames
func (e *Engine) Prepare(s Surface) error {
	if err := s.Prepare(e.grid.Runes(), e.cfg.Color); err != nil {
		return fmt.Errorf("prepare glyph cache: %w", err)
	}
	e.view = e.Viewport(s)
	e.viewSet = true
	return nil
}

// Run owns the frame loop until quit, event channel closure, tick source exhaustion or ctx cancellation
// Events are drained once per frame before the tick; a frame always finishes rendering
// Run takes ownership of ticks and stops it on return
func (e *Engine) Run(ctx context.Context, ticks TickSource, events <-chan Event, s Surface) error {
	defer ticks.Stop()

	if err := e.Start(); err != nil {
		return err
	}
	if err := e.Prepare(s); err != nil {
		e.sink.Report(status.Error(err.Error()))
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-ticks.C():
			if !ok {
				return nil
			}

			quit, err := e.drain(events)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

			e.Tick()
			if err := e.RenderFrame(s); err != nil {
				return err
			}
		}
	}
}

// drain applies every pending event without blocking
func (e *Engine) drain(events <-chan Event) (quit bool, err error) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return true, nil
			}
			switch ev.Type {
			case EventQuit:
				return true, nil
			case EventRestart:
				if err := e.Restart(); err != nil {
					return false, err
				}
			}
		default:
			return false, nil
		}
	}
}

func (e *Engine) publishProgress() {
	if e.metrics != nil {
		e.metrics.Progress.Set(e.pb.Fraction())
	}
}
