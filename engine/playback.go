package engine

import (
	"github.com/lixenwraith/glyph-reveal/reveal"
)

// State is the reveal lifecycle: Idle -> Playing -> Complete, restart returns to Playing
type State uint8

const (
	StateIdle State = iota
	StatePlaying
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StateComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// completeTolerance absorbs float drift from summing SpeedPerFrame Duration*FPS times
const completeTolerance = 1e-9

// Playback is the mutable part of a run, owned by the frame loop
type Playback struct {
	State    State
	Mode     reveal.Mode
	Progress float64

	// Max is the score grid maximum; Progress never exceeds it
	Max float64

	FPS           int
	DurationSecs  float64
	SpeedPerFrame float64

	// Ticks counts advances since the last start or restart
	Ticks int
}

// Complete reports whether every cell is revealed
func (p Playback) Complete() bool {
	return p.State == StateComplete
}

// Fraction returns progress normalized to [0, 1]
func (p Playback) Fraction() float64 {
	if p.Max <= 0 {
		if p.State == StateComplete {
			return 1
		}
		return 0
	}
	return p.Progress / p.Max
}

// begin enters Playing with progress at zero
func (p *Playback) begin(max float64) {
	p.Max = max
	p.SpeedPerFrame = max / (p.DurationSecs * float64(p.FPS))
	p.Progress = 0
	p.Ticks = 0
	p.State = StatePlaying
}

// advance adds one frame of progress, returns true on the Playing -> Complete edge
func (p *Playback) advance() bool {
	if p.State != StatePlaying {
		return false
	}

	p.Progress += p.SpeedPerFrame
	p.Ticks++

	if p.Progress >= p.Max-p.Max*completeTolerance {
		p.Progress = p.Max
		p.State = StateComplete
		return true
	}
	return false
}

// finish jumps to full progress, returns true if this ended a running reveal
func (p *Playback) finish() bool {
	if p.State != StatePlaying {
		return false
	}
	p.Progress = p.Max
	p.State = StateComplete
	return true
}

// rewind restarts from zero without touching Max or speed
func (p *Playback) rewind() {
	p.Progress = 0
	p.Ticks = 0
	p.State = StatePlaying
}
