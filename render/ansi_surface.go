package render

import (
	"bufio"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/lixenwraith/glyph-reveal/engine"
)

// Pre-allocated escape sequences
var (
	csiSGR0           = []byte("\x1b[0m")
	csiBgBlack        = []byte("\x1b[48;2;0;0;0m")
	csiClear          = []byte("\x1b[2J\x1b[H")
	csiCursorHide     = []byte("\x1b[?25l")
	csiCursorShow     = []byte("\x1b[?25h")
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	csiAutoWrapOn     = []byte("\x1b[?7h")
	csiAutoWrapOff    = []byte("\x1b[?7l")
)

// ANSISurface renders to a raw ANSI byte stream, emitting only cells that changed since the last frame
// Not safe for concurrent use
type ANSISurface struct {
	w          *bufio.Writer
	cols, rows int

	// glyphs holds each present rune pre-encoded with its color prefix
	glyphs map[rune][]byte

	back  []rune // frame being drawn, 0 = background
	front []rune // frame on the terminal

	cursorX, cursorY int
	cursorValid      bool
	styled           bool
}

// NewANSISurface creates a cols x rows surface writing to w
func NewANSISurface(w io.Writer, cols, rows int) *ANSISurface {
	cols, rows = max(0, cols), max(0, rows)
	return &ANSISurface{
		w:      bufio.NewWriterSize(w, 64*1024),
		cols:   cols,
		rows:   rows,
		glyphs: make(map[rune][]byte),
		back:   make([]rune, cols*rows),
		front:  make([]rune, cols*rows),
	}
}

// Open switches to the alternate screen, hides the cursor and clears
func (a *ANSISurface) Open() error {
	a.w.Write(csiAltScreenEnter)
	a.w.Write(csiCursorHide)
	a.w.Write(csiAutoWrapOff)
	a.w.Write(csiBgBlack)
	a.w.Write(csiClear)
	a.cursorValid = false
	return a.w.Flush()
}

// Close restores the terminal state changed by Open
func (a *ANSISurface) Close() error {
	a.w.Write(csiSGR0)
	a.w.Write(csiAutoWrapOn)
	a.w.Write(csiCursorShow)
	a.w.Write(csiAltScreenExit)
	return a.w.Flush()
}

// Prepare pre-encodes each present rune with a bold truecolor foreground on black
func (a *ANSISurface) Prepare(runes []rune, fg engine.RGB) error {
	prefix := []byte("\x1b[0;1;38;2;")
	prefix = strconv.AppendInt(prefix, int64(fg.R), 10)
	prefix = append(prefix, ';')
	prefix = strconv.AppendInt(prefix, int64(fg.G), 10)
	prefix = append(prefix, ';')
	prefix = strconv.AppendInt(prefix, int64(fg.B), 10)
	prefix = append(prefix, ";48;2;0;0;0m"...)

	a.glyphs = make(map[rune][]byte, len(runes))
	for _, r := range runes {
		seq := make([]byte, 0, len(prefix)+utf8.UTFMax)
		seq = append(seq, prefix...)
		seq = utf8.AppendRune(seq, r)
		a.glyphs[r] = seq
	}
	return nil
}

// CacheSize returns the number of cached glyphs
func (a *ANSISurface) CacheSize() int {
	return len(a.glyphs)
}

func (a *ANSISurface) Size() (int, int) {
	return a.cols, a.rows
}

func (a *ANSISurface) Clear() {
	for i := range a.back {
		a.back[i] = 0
	}
}

// DrawGlyph marks r at (x, y); out-of-bounds and uncached runes are ignored
func (a *ANSISurface) DrawGlyph(x, y int, r rune) {
	if x < 0 || y < 0 || x >= a.cols || y >= a.rows {
		return
	}
	if _, ok := a.glyphs[r]; !ok {
		return
	}
	a.back[y*a.cols+x] = r
}

// Show writes the difference between the drawn frame and the terminal, then flushes
func (a *ANSISurface) Show() {
	a.styled = false

	for y := 0; y < a.rows; y++ {
		row := y * a.cols
		for x := 0; x < a.cols; x++ {
			idx := row + x
			r := a.back[idx]
			if r == a.front[idx] {
				continue
			}

			if !a.cursorValid || a.cursorX != x || a.cursorY != y {
				a.moveTo(x, y)
			}

			if r == 0 {
				a.w.Write(csiSGR0)
				a.w.Write(csiBgBlack)
				a.w.WriteByte(' ')
				a.styled = false
			} else {
				a.w.Write(a.glyphs[r])
				a.styled = true
			}

			a.front[idx] = r
			a.cursorX = x + 1
			a.cursorY = y
		}
	}

	if a.styled {
		a.w.Write(csiSGR0)
	}
	a.w.Flush()
}

func (a *ANSISurface) moveTo(x, y int) {
	var buf [16]byte
	b := append(buf[:0], "\x1b["...)
	b = strconv.AppendInt(b, int64(y+1), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(x+1), 10)
	b = append(b, 'H')
	a.w.Write(b)
	a.cursorX, a.cursorY = x, y
	a.cursorValid = true
}
