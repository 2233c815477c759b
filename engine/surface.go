package engine

import "fmt"

// RGB is a 24-bit foreground color
type RGB struct {
	R, G, B uint8
}

// White is the default glyph color
var White = RGB{R: 255, G: 255, B: 255}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Surface is a display the engine draws glyphs onto
// Implementations own a glyph render cache built once per run by Prepare
type Surface interface {
	// Prepare builds the glyph cache for exactly the given runes in color fg
	Prepare(runes []rune, fg RGB) error

	// Size returns the display capacity in cells
	Size() (cols, rows int)

	// Clear resets every cell to background
	Clear()

	// DrawGlyph draws the cached visual for r at cell (x, y)
	DrawGlyph(x, y int, r rune)

	// Show presents the frame
	Show()
}
