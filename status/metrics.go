package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat provides atomic float64 access through bit conversion
// Zero value is ready to use (represents 0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Metrics are lock-free counters written by the frame loop and read by hosts
// A single Metrics may be shared by many engines (one per SSH session)
type Metrics struct {
	// Progress is the last progress fraction in [0, 1] reported by any engine
	Progress AtomicFloat

	Frames   atomic.Int64
	Restarts atomic.Int64

	// Sessions counts SSH sessions currently attached
	Sessions atomic.Int64

	// Plays counts Playing transitions, restarts included
	Plays atomic.Int64

	last atomic.Pointer[Status]
}

// NewMetrics creates zeroed metrics
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Report records s as the latest status, making Metrics usable as a Sink
func (m *Metrics) Report(s Status) {
	m.last.Store(&s)
	if s.Kind == KindPlaying {
		m.Plays.Add(1)
	}
}

// Last returns the latest recorded status
func (m *Metrics) Last() Status {
	if p := m.last.Load(); p != nil {
		return *p
	}
	return Idle()
}
