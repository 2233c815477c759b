package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSize is returned when a field is requested for a non-positive dimension
var ErrInvalidSize = errors.New("geometry: width and height must be positive")

// Fields holds per-cell distance and angle relative to the grid center
// Immutable after Build; shared read-only between runs of the same dimensions
type Fields struct {
	Width, Height int

	// CenterX, CenterY are width/2 and height/2 in cell units
	CenterX, CenterY float64

	// Distance[y][x] is the Euclidean distance from the center
	Distance [][]float64

	// Angle[y][x] is atan2(dy, dx) folded into [0, 2π)
	Angle [][]float64

	maxDistance float64
}

// Build computes distance and angle fields for a width x height grid
func Build(width, height int) (*Fields, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}

	f := &Fields{
		Width:    width,
		Height:   height,
		CenterX:  float64(width) / 2,
		CenterY:  float64(height) / 2,
		Distance: make([][]float64, height),
		Angle:    make([][]float64, height),
	}

	// Single backing array per field keeps rows contiguous
	distBacking := make([]float64, width*height)
	angleBacking := make([]float64, width*height)

	for y := 0; y < height; y++ {
		f.Distance[y] = distBacking[y*width : (y+1)*width : (y+1)*width]
		f.Angle[y] = angleBacking[y*width : (y+1)*width : (y+1)*width]

		dy := float64(y) - f.CenterY
		for x := 0; x < width; x++ {
			dx := float64(x) - f.CenterX

			d := math.Sqrt(dx*dx + dy*dy)
			f.Distance[y][x] = d
			if d > f.maxDistance {
				f.maxDistance = d
			}

			f.Angle[y][x] = normalizeAngle(math.Atan2(dy, dx))
		}
	}

	return f, nil
}

// normalizeAngle maps atan2 output from (-π, π] into [0, 2π)
func normalizeAngle(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	// -0 and values within one ulp of -0 round up to exactly 2π
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// MaxDistance returns the largest value in the distance field
func (f *Fields) MaxDistance() float64 {
	return f.maxDistance
}

// Matches reports whether the fields were built for the given dimensions
func (f *Fields) Matches(width, height int) bool {
	return f != nil && f.Width == width && f.Height == height
}
