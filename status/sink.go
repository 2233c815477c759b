package status

import (
	"log"
	"sync"
)

// Sink receives status transitions
// Report must not block the frame loop
type Sink interface {
	Report(Status)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Status)

func (f SinkFunc) Report(s Status) { f(s) }

// Discard drops every status
var Discard Sink = SinkFunc(func(Status) {})

// Multi fans a status out to several sinks in order
type Multi []Sink

func (m Multi) Report(s Status) {
	for _, sink := range m {
		if sink != nil {
			sink.Report(s)
		}
	}
}

// LogSink mirrors transitions into the standard logger
type LogSink struct {
	Prefix string
}

func (l LogSink) Report(s Status) {
	log.Printf("%sstatus: %s", l.Prefix, s)
}

// ChanSink forwards statuses to a buffered channel
// When the buffer is full the oldest entry is dropped so the newest state always lands
type ChanSink struct {
	mu sync.Mutex
	ch chan Status
}

// NewChanSink creates a sink with the given buffer size (minimum 1)
func NewChanSink(size int) *ChanSink {
	if size < 1 {
		size = 1
	}
	return &ChanSink{ch: make(chan Status, size)}
}

// C returns the receive side
func (c *ChanSink) C() <-chan Status {
	return c.ch
}

func (c *ChanSink) Report(s Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		select {
		case c.ch <- s:
			return
		default:
		}
		// Full: evict one and retry
		select {
		case <-c.ch:
		default:
		}
	}
}

// Recorder keeps every status in memory, for hosts that poll and for tests
type Recorder struct {
	mu      sync.Mutex
	history []Status
}

func (r *Recorder) Report(s Status) {
	r.mu.Lock()
	r.history = append(r.history, s)
	r.mu.Unlock()
}

// History returns a copy of everything reported so far
func (r *Recorder) History() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Status, len(r.history))
	copy(out, r.history)
	return out
}

// Last returns the most recent status, or Idle if none
func (r *Recorder) Last() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return Idle()
	}
	return r.history[len(r.history)-1]
}
