package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/glyph-reveal/engine"
)

func TestTerminalSurfaceSimulation(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to initialize simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 4)

	surf := NewTerminalSurface(screen)
	if err := surf.Prepare([]rune{'#', '@'}, engine.RGB{R: 0, G: 255, B: 0}); err != nil {
		t.Fatal(err)
	}
	if surf.CacheSize() != 2 {
		t.Errorf("Expected 2 cached styles, got %d", surf.CacheSize())
	}
	if cols, rows := surf.Size(); cols != 10 || rows != 4 {
		t.Errorf("Expected 10x4, got %dx%d", cols, rows)
	}

	surf.Clear()
	surf.DrawGlyph(1, 2, '@')
	surf.DrawGlyph(3, 0, '%') // not cached, skipped
	surf.Show()

	r, _, style, _ := screen.GetContent(1, 2)
	if r != '@' {
		t.Errorf("Expected '@' at (1,2), got %q", r)
	}
	fg, bg, attrs := style.Decompose()
	if fg != tcell.NewRGBColor(0, 255, 0) {
		t.Errorf("Expected green foreground, got %v", fg)
	}
	if bg != tcell.ColorBlack {
		t.Errorf("Expected black background, got %v", bg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("Expected bold glyphs")
	}

	if r, _, _, _ = screen.GetContent(3, 0); r != ' ' {
		t.Errorf("Expected uncached rune to be skipped, got %q", r)
	}
}

// recordingScreen captures SetContent calls
type recordingScreen struct {
	w, h  int
	cells map[[2]int]rune
	fills int
	shows int
}

func (s *recordingScreen) SetContent(x, y int, primary rune, _ []rune, _ tcell.Style) {
	s.cells[[2]int{x, y}] = primary
}

func (s *recordingScreen) Fill(rune, tcell.Style) {
	s.cells = make(map[[2]int]rune)
	s.fills++
}

func (s *recordingScreen) Show()            { s.shows++ }
func (s *recordingScreen) Size() (int, int) { return s.w, s.h }

func TestTerminalSurfaceWithEngine(t *testing.T) {
	screen := &recordingScreen{w: 3, h: 2, cells: map[[2]int]rune{}}
	surf := NewTerminalSurface(screen)

	e := newRunEngine(t, 5, 5)
	renderRevealed(t, e, surf)

	if screen.fills != 1 || screen.shows != 1 {
		t.Errorf("Expected one fill and one show, got %d and %d", screen.fills, screen.shows)
	}
	// only the 3x2 top-left window is drawn
	if len(screen.cells) != 6 {
		t.Errorf("Expected 6 cells drawn, got %d", len(screen.cells))
	}
	if want := len(e.Grid().Runes()); surf.CacheSize() != want {
		t.Errorf("Expected %d cached styles, got %d", want, surf.CacheSize())
	}
}
