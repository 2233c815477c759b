package glyph

import (
	"fmt"
	"strings"
)

// Ramp selects one of the fixed glyph ramps
// Every ramp is ordered sparse-to-dense so brighter pixels map to heavier glyphs on a dark background
type Ramp uint8

const (
	RampExtended Ramp = iota // 70 printable ASCII glyphs
	RampDense                // 12 glyphs, bold silhouettes
	RampSimple               // 10 glyphs, classic ascii art
	RampBlocks               // 5 shade blocks
)

// Glyph tables indexed by Ramp, index 0 is the sparsest glyph
var rampGlyphs = [...][]rune{
	RampExtended: []rune(" .'`^\",:;Il!i><~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$"),
	RampDense:    []rune(" .-:=+*%&8#@"),
	RampSimple:   []rune(" .:-=+*#%@"),
	RampBlocks:   []rune(" ░▒▓█"),
}

var rampNames = [...]string{
	RampExtended: "extended",
	RampDense:    "dense",
	RampSimple:   "simple",
	RampBlocks:   "blocks",
}

// Ramps lists every ramp in declaration order
func Ramps() []Ramp {
	ramps := make([]Ramp, len(rampGlyphs))
	for i := range ramps {
		ramps[i] = Ramp(i)
	}
	return ramps
}

// Glyphs returns the ramp's glyph sequence, sparse first
// The returned slice must not be modified
func (r Ramp) Glyphs() []rune {
	if int(r) >= len(rampGlyphs) {
		return rampGlyphs[RampExtended]
	}
	return rampGlyphs[r]
}

// Len returns the number of glyphs in the ramp
func (r Ramp) Len() int {
	return len(r.Glyphs())
}

// Glyph maps an 8-bit brightness to a ramp glyph: floor(b/255 * (len-1))
func (r Ramp) Glyph(brightness uint8) rune {
	g := r.Glyphs()
	idx := int(float64(brightness) / 255 * float64(len(g)-1))
	return g[idx]
}

func (r Ramp) String() string {
	if int(r) >= len(rampNames) {
		return fmt.Sprintf("Ramp(%d)", r)
	}
	return rampNames[r]
}

// ParseRamp resolves a ramp name, case-insensitive
func ParseRamp(name string) (Ramp, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, rn := range rampNames {
		if rn == n {
			return Ramp(i), nil
		}
	}
	return RampExtended, fmt.Errorf("unknown glyph ramp %q (want one of %s)", name, strings.Join(rampNames[:], ", "))
}
