package geometry

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestBuildRejectsNonPositive(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 5},
		{"zero height", 5, 0},
		{"negative", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Build(tt.w, tt.h)
			if !errors.Is(err, ErrInvalidSize) {
				t.Fatalf("Expected ErrInvalidSize, got %v", err)
			}
			if f != nil {
				t.Errorf("Expected nil fields on error, got %dx%d", f.Width, f.Height)
			}
		})
	}
}

func TestCenterIsClosest(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 1}, {3, 3}, {4, 2}, {7, 5}, {10, 10}, {250, 62}}

	for _, s := range sizes {
		w, h := s[0], s[1]
		f, err := Build(w, h)
		if err != nil {
			t.Fatalf("Build(%d, %d): %v", w, h, err)
		}

		center := f.Distance[h/2][w/2]
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if f.Distance[y][x] < center {
					t.Errorf("%dx%d: cell (%d,%d) at %v is closer than center at %v", w, h, x, y, f.Distance[y][x], center)
				}
			}
		}
	}
}

func TestAngleRange(t *testing.T) {
	for _, s := range [][2]int{{1, 1}, {3, 3}, {8, 3}, {31, 17}} {
		f, err := Build(s[0], s[1])
		if err != nil {
			t.Fatalf("Build(%d, %d): %v", s[0], s[1], err)
		}

		for y := range f.Angle {
			for x, a := range f.Angle[y] {
				if a < 0 || a >= 2*math.Pi {
					t.Errorf("Expected angle in [0, 2π) at (%d,%d), got %v", x, y, a)
				}
			}
		}
	}
}

func TestKnownValues(t *testing.T) {
	f, err := Build(4, 2)
	if err != nil {
		t.Fatal(err)
	}

	if f.CenterX != 2 || f.CenterY != 1 {
		t.Errorf("Expected center (2, 1), got (%v, %v)", f.CenterX, f.CenterY)
	}

	// (2,1) sits exactly on the center
	if f.Distance[1][2] != 0 {
		t.Errorf("Expected zero distance at center, got %v", f.Distance[1][2])
	}
	if !near(f.Distance[0][0], math.Sqrt(5)) {
		t.Errorf("Expected corner distance √5, got %v", f.Distance[0][0])
	}

	// Positive x axis is angle 0, negative x axis is π
	if f.Angle[1][3] != 0 {
		t.Errorf("Expected angle 0 on the positive x axis, got %v", f.Angle[1][3])
	}
	if !near(f.Angle[1][0], math.Pi) {
		t.Errorf("Expected angle π on the negative x axis, got %v", f.Angle[1][0])
	}

	// Straight up from the center is a negative dy
	if !near(f.Angle[0][2], 3*math.Pi/2) {
		t.Errorf("Expected angle 3π/2 above center, got %v", f.Angle[0][2])
	}

	if !near(f.MaxDistance(), math.Sqrt(5)) {
		t.Errorf("Expected max distance √5, got %v", f.MaxDistance())
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build(17, 9)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(17, 9)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a.Distance, b.Distance) {
		t.Error("Expected identical distance fields for the same size")
	}
	if !reflect.DeepEqual(a.Angle, b.Angle) {
		t.Error("Expected identical angle fields for the same size")
	}
}

func TestCacheMemoizes(t *testing.T) {
	c := NewCache()

	a, err := c.Get(12, 6)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Get(12, 6)
	if err != nil {
		t.Fatal(err)
	}

	if a != b {
		t.Error("Expected the cached fields to be reused")
	}
	if !a.Matches(12, 6) || a.Matches(6, 12) {
		t.Error("Expected fields to match only their own size")
	}

	if _, err := c.Get(6, 12); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 cached sizes, got %d", c.Len())
	}

	if _, err := c.Get(0, 1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize, got %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Expected failed builds to stay uncached, got %d entries", c.Len())
	}
}

func TestCacheConcurrentGet(t *testing.T) {
	c := NewCache()

	const n = 32
	results := make([]*Fields, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			f, err := c.Get(40, 20)
			if err == nil {
				results[i] = f
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Errorf("Expected goroutine %d to share the cached fields", i)
		}
	}
}
