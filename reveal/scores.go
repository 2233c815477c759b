package reveal

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lixenwraith/glyph-reveal/geometry"
)

// Scoring constants
const (
	// SpiralWeight blends normalized angle into distance for ModeSpiral
	SpiralWeight = 15.0

	// RainSpeedMin and RainSpeedSpan bound per-column fall speed to [0.5, 2.0)
	RainSpeedMin  = 0.5
	RainSpeedSpan = 1.5

	// RainOffsetFactor bounds per-column start delay to [0, 1.5*height)
	RainOffsetFactor = 1.5

	// DissolveRange bounds per-cell dissolve scores to [0, 100)
	DissolveRange = 100.0
)

// EmptyGridError is returned when scores are requested for a grid with no cells
// A zero-sized grid here means conversion went wrong upstream
type EmptyGridError struct {
	Width, Height int
}

func (e *EmptyGridError) Error() string {
	return fmt.Sprintf("reveal: empty grid %dx%d", e.Width, e.Height)
}

// Scores holds the progress value at which each cell becomes visible
// Randomized modes keep their realized draw here, so replaying a run reuses the same order
type Scores struct {
	Mode          Mode
	Width, Height int

	// Values[y][x] is finite and non-negative
	Values [][]float64

	// Max is the largest value; progress reaching Max reveals the whole grid
	Max float64
}

// At returns the score of cell (x, y)
func (s *Scores) At(x, y int) float64 {
	return s.Values[y][x]
}

// Revealed reports whether cell (x, y) is visible at progress
func (s *Scores) Revealed(x, y int, progress float64) bool {
	return s.Values[y][x] <= progress
}

// NewRand returns a random source for Generate
// A zero seed draws one from the clock, making randomized modes differ between launches
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generate computes the score grid for mode over a width x height grid
// fields may be nil, in which case they are built; mismatched fields are an error
// rng is only consulted by randomized modes; nil uses a clock-seeded source
func Generate(mode Mode, width, height int, fields *geometry.Fields, rng *rand.Rand) (*Scores, error) {
	if width <= 0 || height <= 0 {
		return nil, &EmptyGridError{Width: width, Height: height}
	}

	if fields == nil {
		var err error
		if fields, err = geometry.Build(width, height); err != nil {
			return nil, err
		}
	} else if !fields.Matches(width, height) {
		return nil, fmt.Errorf("reveal: fields are %dx%d, grid is %dx%d", fields.Width, fields.Height, width, height)
	}

	if !mode.Valid() {
		mode = ModeCircular
	}
	if rng == nil && mode.Randomized() {
		rng = NewRand(0)
	}

	s := &Scores{
		Mode:   mode,
		Width:  width,
		Height: height,
		Values: make([][]float64, height),
	}
	backing := make([]float64, width*height)
	for y := range s.Values {
		s.Values[y] = backing[y*width : (y+1)*width : (y+1)*width]
	}

	switch mode {
	case ModeRain:
		scoreRain(s, rng)
	case ModeSpiral:
		for y, row := range s.Values {
			for x := range row {
				norm := fields.Angle[y][x] / (2 * math.Pi)
				row[x] = fields.Distance[y][x] + (1-norm)*SpiralWeight
			}
		}
	case ModeVertical:
		for y, row := range s.Values {
			for x := range row {
				row[x] = float64(y)
			}
		}
	case ModeRadar:
		for y, row := range s.Values {
			copy(row, fields.Angle[y])
		}
	case ModeDissolve:
		for _, row := range s.Values {
			for x := range row {
				row[x] = rng.Float64() * DissolveRange
			}
		}
	default:
		// ModeCircular
		for y, row := range s.Values {
			copy(row, fields.Distance[y])
		}
	}

	s.Max = backing[0]
	for _, v := range backing[1:] {
		if v > s.Max {
			s.Max = v
		}
	}

	return s, nil
}

// scoreRain gives each column its own fall speed and start delay
// All speeds are drawn before all offsets
func scoreRain(s *Scores, rng *rand.Rand) {
	speeds := make([]float64, s.Width)
	offsets := make([]float64, s.Width)
	for x := range speeds {
		speeds[x] = rng.Float64()*RainSpeedSpan + RainSpeedMin
	}
	for x := range offsets {
		offsets[x] = rng.Float64() * float64(s.Height) * RainOffsetFactor
	}

	for y, row := range s.Values {
		for x := range row {
			row[x] = (float64(y) + offsets[x]) / speeds[x]
		}
	}
}
