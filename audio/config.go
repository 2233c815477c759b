package audio

import (
	"encoding/json"
	"os"
	"strconv"
)

// Environment overrides
const (
	EnvEnabled    = "GLYPH_REVEAL_AUDIO"
	EnvVolume     = "GLYPH_REVEAL_VOLUME"
	EnvCueVolumes = "GLYPH_REVEAL_CUE_VOLUMES"
	EnvSampleRate = "GLYPH_REVEAL_SAMPLE_RATE"
)

// ApplyEnv overlays environment variables onto cfg; malformed values are ignored
func ApplyEnv(cfg *Config) *Config {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if enabled := os.Getenv(EnvEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 mapped to 0.0-1.0
	if volume := os.Getenv(EnvVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Volume = ClampVolume(float64(val) / 100.0)
		}
	}

	if cueVols := os.Getenv(EnvCueVolumes); cueVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(cueVols), &volumes); err == nil {
			if cfg.CueVolumes == nil {
				cfg.CueVolumes = make(map[Cue]float64)
			}
			for c := Cue(0); c < cueCount; c++ {
				if v, ok := volumes[c.String()]; ok {
					cfg.CueVolumes[c] = ClampVolume(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

// ClampVolume limits v to [0, 1]
func ClampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
