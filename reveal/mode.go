package reveal

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Mode selects the spatial order in which cells are revealed
// The zero value is ModeCircular, which is also the fallback for unrecognized names
type Mode uint8

const (
	ModeCircular Mode = iota // outward from the center
	ModeSpiral               // distance biased by angle
	ModeRadar                // counterclockwise sweep from the positive x axis
	ModeRain                 // staggered falling columns
	ModeVertical             // top to bottom
	ModeDissolve             // random per-cell order
	modeCount
)

var modeNames = [modeCount]string{
	ModeCircular: "Circular",
	ModeSpiral:   "Spiral",
	ModeRadar:    "Radar",
	ModeRain:     "Rain",
	ModeVertical: "Vertical",
	ModeDissolve: "Dissolve",
}

// modeAliases maps folded alternative names to modes
var modeAliases = map[string]Mode{
	"matrix": ModeRain,
	"sweep":  ModeRadar,
	"wipe":   ModeVertical,
	"random": ModeDissolve,
}

// Modes returns every mode in declaration order
func Modes() []Mode {
	out := make([]Mode, 0, modeCount)
	for m := Mode(0); m < modeCount; m++ {
		out = append(out, m)
	}
	return out
}

func (m Mode) String() string {
	if m >= modeCount {
		return fmt.Sprintf("Mode(%d)", m)
	}
	return modeNames[m]
}

// Valid reports whether m is one of the defined modes
func (m Mode) Valid() bool {
	return m < modeCount
}

// Randomized reports whether the mode draws from a random source
func (m Mode) Randomized() bool {
	return m == ModeRain || m == ModeDissolve
}

// ParseMode resolves a mode name with Unicode case folding
// Unrecognized names yield ModeCircular and ok=false; callers decide whether to log the fallback
func ParseMode(name string) (mode Mode, ok bool) {
	// Casers carry state, so each call gets its own
	folder := cases.Fold()
	key := folder.String(strings.TrimSpace(name))
	for i, n := range modeNames {
		if folder.String(n) == key {
			return Mode(i), true
		}
	}
	if m, found := modeAliases[key]; found {
		return m, true
	}
	return ModeCircular, false
}
