package audio

import "time"

// Cue identifies a sound played on a playback transition
type Cue int

const (
	CueStart    Cue = iota // Reveal started or restarted
	CueComplete            // Reveal finished
	CueError               // Conversion or playback failed
	cueCount
)

var cueNames = [...]string{
	CueStart:    "start",
	CueComplete: "complete",
	CueError:    "error",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Cue envelope timings
const (
	StartCueDuration = 450 * time.Millisecond
	StartCueAttack   = 120 * time.Millisecond
	StartCueRelease  = 300 * time.Millisecond

	CompleteCueDuration         = 900 * time.Millisecond
	CompleteCueAttack           = 5 * time.Millisecond
	CompleteCueFundamentalDecay = 850 * time.Millisecond
	CompleteCueOvertoneDecay    = 400 * time.Millisecond

	ErrorCueDuration = 150 * time.Millisecond
	ErrorCueAttack   = 5 * time.Millisecond
	ErrorCueRelease  = 60 * time.Millisecond
)

// Config holds audio settings
type Config struct {
	Enabled    bool
	Volume     float64 // master, 0..1
	SampleRate int
	CueVolumes map[Cue]float64
}

// DefaultConfig returns audio disabled at 50% master volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:    false,
		Volume:     0.5,
		SampleRate: 44100,
		CueVolumes: map[Cue]float64{
			CueStart:    0.35,
			CueComplete: 0.6,
			CueError:    0.5,
		},
	}
}
