package audio

import (
	"testing"

	"github.com/lixenwraith/glyph-reveal/status"
)

// TestPlayerGracefulDegradation verifies cues are dropped without panic when not initialized
func TestPlayerGracefulDegradation(t *testing.T) {
	p := NewPlayer(nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("player panicked without initialization: %v", r)
		}
	}()

	p.Report(status.Playing("Circular"))
	p.Report(status.Complete())
	p.Report(status.Error("boom"))
	p.Play(CueStart)
	p.Cleanup()

	if p.Enabled() {
		t.Error("expected player disabled")
	}
	for c := Cue(0); c < cueCount; c++ {
		if p.Played(c) != 0 {
			t.Errorf("cue %s played while uninitialized", c)
		}
	}
}

// TestPlayerDisabledInitialize verifies a disabled config never opens the speaker
func TestPlayerDisabledInitialize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	p := NewPlayer(cfg)

	if err := p.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Enabled() {
		t.Error("disabled config should stay silent")
	}
}

// TestPlayerInitialization verifies initialize and cleanup when a device exists
func TestPlayerInitialization(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	p := NewPlayer(cfg)

	// Speaker initialization fails on hosts without an audio device
	if err := p.Initialize(); err != nil {
		t.Logf("audio initialization failed (expected without a device): %v", err)
		return
	}

	if err := p.Initialize(); err != nil {
		t.Errorf("second initialization should be a no-op, got %v", err)
	}

	p.Report(status.Playing("Spiral"))
	if p.Played(CueStart) != 1 {
		t.Errorf("expected one start cue, got %d", p.Played(CueStart))
	}
	p.Report(status.Converting())
	if p.Played(CueStart) != 1 {
		t.Error("converting should not play a cue")
	}

	p.Cleanup()
	if p.Enabled() {
		t.Error("expected player disabled after cleanup")
	}
}

// TestCueFor verifies the transition to cue mapping
func TestCueFor(t *testing.T) {
	tests := []struct {
		status status.Status
		cue    Cue
		ok     bool
	}{
		{status.Idle(), 0, false},
		{status.Converting(), 0, false},
		{status.Playing("Radar"), CueStart, true},
		{status.Complete(), CueComplete, true},
		{status.Error("x"), CueError, true},
	}

	for _, tt := range tests {
		c, ok := CueFor(tt.status)
		if ok != tt.ok || c != tt.cue {
			t.Errorf("CueFor(%s) = %s, %v; want %s, %v", tt.status, c, ok, tt.cue, tt.ok)
		}
	}
}

// TestPlayedOutOfRange verifies unknown cues report zero
func TestPlayedOutOfRange(t *testing.T) {
	p := NewPlayer(nil)
	if p.Played(Cue(-1)) != 0 || p.Played(cueCount) != 0 {
		t.Error("expected zero for unknown cues")
	}
}
