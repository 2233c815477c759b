package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/glyph-reveal/engine"
)

// Screen is the subset of tcell.Screen a TerminalSurface draws with
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Fill(r rune, style tcell.Style)
	Show()
	Size() (width, height int)
}

// Background is the surface background color
var Background = tcell.ColorBlack

// TerminalSurface renders glyphs into a tcell screen
type TerminalSurface struct {
	screen  Screen
	bgStyle tcell.Style
	styles  map[rune]tcell.Style
}

// NewTerminalSurface wraps an initialized screen
func NewTerminalSurface(screen Screen) *TerminalSurface {
	return &TerminalSurface{
		screen:  screen,
		bgStyle: tcell.StyleDefault.Background(Background),
		styles:  make(map[rune]tcell.Style),
	}
}

// Prepare builds one style per present rune in the run's foreground color
func (t *TerminalSurface) Prepare(runes []rune, fg engine.RGB) error {
	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(Background).
		Bold(true)

	t.styles = make(map[rune]tcell.Style, len(runes))
	for _, r := range runes {
		t.styles[r] = style
	}
	return nil
}

// CacheSize returns the number of cached glyphs
func (t *TerminalSurface) CacheSize() int {
	return len(t.styles)
}

func (t *TerminalSurface) Size() (int, int) {
	return t.screen.Size()
}

func (t *TerminalSurface) Clear() {
	t.screen.Fill(' ', t.bgStyle)
}

// DrawGlyph draws r at (x, y); runes absent from the cache are skipped
func (t *TerminalSurface) DrawGlyph(x, y int, r rune) {
	style, ok := t.styles[r]
	if !ok {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

func (t *TerminalSurface) Show() {
	t.screen.Show()
}
