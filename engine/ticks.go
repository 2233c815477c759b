package engine

import (
	"sync"
	"time"
)

// TickSource paces the frame loop
type TickSource interface {
	C() <-chan time.Time
	Stop()
}

// TickerSource ticks on the wall clock at a fixed frame rate
type TickerSource struct {
	ticker *time.Ticker
}

// NewTickerSource creates a ticker firing fps times per second
func NewTickerSource(fps int) *TickerSource {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &TickerSource{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (t *TickerSource) C() <-chan time.Time { return t.ticker.C }

func (t *TickerSource) Stop() { t.ticker.Stop() }

// ManualTicks is a TickSource driven by the caller, for headless runs and tests
// Each Tick blocks until the frame loop receives it
type ManualTicks struct {
	mu   sync.Mutex
	ch   chan time.Time
	done chan struct{}
	once sync.Once
	now  time.Time
	step time.Duration
}

// NewManualTicks creates a manual source whose clock starts at start and advances by step per tick
func NewManualTicks(start time.Time, step time.Duration) *ManualTicks {
	return &ManualTicks{
		ch:   make(chan time.Time),
		done: make(chan struct{}),
		now:  start,
		step: step,
	}
}

func (m *ManualTicks) C() <-chan time.Time { return m.ch }

// Tick delivers n ticks and returns the number actually received
// Delivery stops early once the source is stopped
func (m *ManualTicks) Tick(n int) int {
	for i := 0; i < n; i++ {
		m.mu.Lock()
		m.now = m.now.Add(m.step)
		now := m.now
		m.mu.Unlock()

		select {
		case m.ch <- now:
		case <-m.done:
			return i
		}
	}
	return n
}

// Now returns the time of the last delivered tick
func (m *ManualTicks) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *ManualTicks) Stop() {
	m.once.Do(func() { close(m.done) })
}
