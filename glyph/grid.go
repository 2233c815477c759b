package glyph

import (
	"sort"
	"strings"

	"github.com/lixenwraith/glyph-reveal/geometry"
)

// Grid is the converted character image
// Immutable after conversion; safe to share between concurrent players
type Grid struct {
	Width, Height int

	// Cells[y][x] holds one glyph of Ramp
	Cells [][]rune

	Ramp Ramp

	// Fields are the geometry fields for Width x Height
	Fields *geometry.Fields
}

// At returns the glyph at (x, y)
func (g *Grid) At(x, y int) rune {
	return g.Cells[y][x]
}

// Runes returns the distinct glyphs present in the grid in ascending order
// Glyph caches are built from this set, never from the full ramp
func (g *Grid) Runes() []rune {
	seen := make(map[rune]struct{})
	for _, row := range g.Cells {
		for _, r := range row {
			seen[r] = struct{}{}
		}
	}

	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String returns the grid as newline-separated rows
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.Height * (g.Width + 1))
	for y, row := range g.Cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range row {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
