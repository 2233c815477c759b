package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/glyph-reveal/status"
)

// Player plays cues for playback transitions
// Every method is a no-op until Initialize succeeds, so hosts without an audio device run silent
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool

	// played counts cues handed to the mixer, by cue
	played [cueCount]int
}

// NewPlayer creates a player; nil cfg uses DefaultConfig
func NewPlayer(cfg *Config) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker; disabled configs stay silent without error
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether cues reach the speaker
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues c on the mixer
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s := CueSound(c, p.cfg)
	if s == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played[c]++
}

// Played returns how many times c was queued
func (p *Player) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c < 0 || c >= cueCount {
		return 0
	}
	return p.played[c]
}

// Report plays the cue for s
func (p *Player) Report(s status.Status) {
	if c, ok := CueFor(s); ok {
		p.Play(c)
	}
}

// Cleanup silences the mixer
// beep has no speaker close; clearing the mixer stops pending cues
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
	log.Printf("audio: stopped")
}

// CueFor maps a status transition to its cue
func CueFor(s status.Status) (Cue, bool) {
	switch s.Kind {
	case status.KindPlaying:
		return CueStart, true
	case status.KindComplete:
		return CueComplete, true
	case status.KindError:
		return CueError, true
	default:
		return 0, false
	}
}
