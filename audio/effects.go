package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates an oscillator that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep is a sine gliding linearly from one frequency to another
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewSweep creates a sine glide from..to over duration
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}

		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t
		val := math.Sin(2 * math.Pi * s.phase)

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release inside duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(0, total-att-rel)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf so zero is silenced instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func cueVolume(cfg *Config, c Cue) float64 {
	v, ok := cfg.CueVolumes[c]
	if !ok {
		v = 1
	}
	return v * cfg.Volume
}

// CreateStartSound generates a soft rising whoosh
func CreateStartSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, StartCueDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, StartCueDuration, StartCueAttack, StartCueRelease, rate)

	glide := NewSweep(90, 260, StartCueDuration, rate)
	glideShaped := NewEnvelope(glide, StartCueDuration, StartCueAttack, StartCueRelease, rate)

	mixed := beep.Mix(
		newVolume(noiseShaped, 0.4),
		newVolume(glideShaped, 0.6),
	)
	return newVolume(mixed, cueVolume(cfg, CueStart))
}

// CreateCompleteSound generates a bell with a fundamental and an octave overtone
func CreateCompleteSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// A5
	fund := NewOscillator(880.0, CompleteCueDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, CompleteCueDuration, CompleteCueAttack, CompleteCueFundamentalDecay, rate)

	over := NewOscillator(1760.0, CompleteCueDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, CompleteCueDuration, CompleteCueAttack, CompleteCueOvertoneDecay, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, cueVolume(cfg, CueComplete))
}

// CreateErrorSound generates a short low buzz
func CreateErrorSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(100.0, ErrorCueDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, ErrorCueDuration, ErrorCueAttack, ErrorCueRelease, rate)
	return newVolume(shaped, cueVolume(cfg, CueError))
}

// CueSound returns a fresh streamer for c, nil for unknown cues
func CueSound(c Cue, cfg *Config) beep.Streamer {
	switch c {
	case CueStart:
		return CreateStartSound(cfg)
	case CueComplete:
		return CreateCompleteSound(cfg)
	case CueError:
		return CreateErrorSound(cfg)
	default:
		return nil
	}
}
