package render

import (
	"testing"
	"time"

	"github.com/lixenwraith/glyph-reveal/engine"
	"github.com/lixenwraith/glyph-reveal/glyph"
	"github.com/lixenwraith/glyph-reveal/reveal"
)

// newRunEngine builds a vertical-wipe engine over a w x h grid of mixed glyphs
func newRunEngine(t *testing.T, w, h int) *engine.Engine {
	t.Helper()
	glyphs := []rune(" .:#@")
	cells := make([][]rune, h)
	for y := range cells {
		cells[y] = make([]rune, w)
		for x := range cells[y] {
			cells[y][x] = glyphs[(x+y)%len(glyphs)]
		}
	}
	grid := &glyph.Grid{Width: w, Height: h, Cells: cells, Ramp: glyph.RampSimple}

	cfg := engine.Config{Mode: reveal.ModeVertical, Duration: time.Second, FPS: 10, Color: engine.White}
	e, err := engine.New(grid, cfg, nil, nil)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return e
}

// renderRevealed plays e to completion and draws the final frame on s
func renderRevealed(t *testing.T, e *engine.Engine, s engine.Surface) {
	t.Helper()
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if err := e.Prepare(s); err != nil {
		t.Fatal(err)
	}
	for !e.Playback().Complete() {
		e.Tick()
	}
	if err := e.RenderFrame(s); err != nil {
		t.Fatal(err)
	}
}
