package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lixenwraith/glyph-reveal/engine"
)

func TestANSISurfaceOpenClose(t *testing.T) {
	var buf bytes.Buffer
	surf := NewANSISurface(&buf, 4, 2)

	if err := surf.Open(); err != nil {
		t.Fatal(err)
	}
	for _, seq := range []string{"\x1b[?1049h", "\x1b[?25l", "\x1b[?7l"} {
		if !strings.Contains(buf.String(), seq) {
			t.Errorf("Expected Open to write %q, got %q", seq, buf.String())
		}
	}

	buf.Reset()
	if err := surf.Close(); err != nil {
		t.Fatal(err)
	}
	for _, seq := range []string{"\x1b[?1049l", "\x1b[?25h", "\x1b[?7h"} {
		if !strings.Contains(buf.String(), seq) {
			t.Errorf("Expected Close to write %q, got %q", seq, buf.String())
		}
	}
}

func TestANSISurfaceDiff(t *testing.T) {
	var buf bytes.Buffer
	surf := NewANSISurface(&buf, 4, 2)
	if err := surf.Prepare([]rune{'#', '█'}, engine.RGB{R: 255, G: 128, B: 0}); err != nil {
		t.Fatal(err)
	}
	if surf.CacheSize() != 2 {
		t.Errorf("Expected 2 cached glyphs, got %d", surf.CacheSize())
	}

	surf.Clear()
	surf.DrawGlyph(1, 0, '#')
	surf.DrawGlyph(2, 1, '█')
	surf.DrawGlyph(9, 9, '#') // out of bounds
	surf.DrawGlyph(0, 0, '?') // not cached
	surf.Show()

	out := buf.String()
	for _, want := range []string{
		"\x1b[1;2H\x1b[0;1;38;2;255;128;0;48;2;0;0;0m#",
		"\x1b[2;3H\x1b[0;1;38;2;255;128;0;48;2;0;0;0m█",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got %q", want, out)
		}
	}
	if strings.Contains(out, "?") {
		t.Errorf("Expected uncached rune to be skipped, got %q", out)
	}

	t.Run("unchanged frame writes nothing", func(t *testing.T) {
		buf.Reset()
		surf.Clear()
		surf.DrawGlyph(1, 0, '#')
		surf.DrawGlyph(2, 1, '█')
		surf.Show()
		if buf.Len() != 0 {
			t.Errorf("Expected no output, got %q", buf.String())
		}
	})

	t.Run("cleared cell becomes background", func(t *testing.T) {
		buf.Reset()
		surf.Clear()
		surf.DrawGlyph(1, 0, '#')
		surf.Show()
		if want := "\x1b[2;3H\x1b[0m\x1b[48;2;0;0;0m "; buf.String() != want {
			t.Errorf("Expected %q, got %q", want, buf.String())
		}
	})
}

func TestANSISurfaceContiguousRun(t *testing.T) {
	var buf bytes.Buffer
	surf := NewANSISurface(&buf, 3, 1)
	if err := surf.Prepare([]rune{'a'}, engine.White); err != nil {
		t.Fatal(err)
	}

	surf.Clear()
	for x := 0; x < 3; x++ {
		surf.DrawGlyph(x, 0, 'a')
	}
	surf.Show()

	// one cursor move for the whole row
	if n := bytes.Count(buf.Bytes(), []byte("H")); n != 1 {
		t.Errorf("Expected 1 cursor move, got %d", n)
	}
	if n := bytes.Count(buf.Bytes(), []byte("a")); n != 3 {
		t.Errorf("Expected 3 glyphs, got %d", n)
	}
}

func TestANSISurfaceZeroSize(t *testing.T) {
	var buf bytes.Buffer
	surf := NewANSISurface(&buf, -1, 0)
	if cols, rows := surf.Size(); cols != 0 || rows != 0 {
		t.Errorf("Expected 0x0, got %dx%d", cols, rows)
	}

	surf.DrawGlyph(0, 0, 'x')
	surf.Show()
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}
