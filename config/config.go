// Package config holds the layered settings of a reveal host:
// built-in defaults, an optional TOML file, then command-line flags
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/glyph-reveal/audio"
	"github.com/lixenwraith/glyph-reveal/engine"
	"github.com/lixenwraith/glyph-reveal/glyph"
	"github.com/lixenwraith/glyph-reveal/reveal"
)

// Convert configures image-to-glyph conversion
type Convert struct {
	Width       int     `toml:"width"`
	Ramp        string  `toml:"ramp"`
	Contrast    float64 `toml:"contrast"`
	Sharpness   float64 `toml:"sharpness"`
	GlyphAspect float64 `toml:"glyph_aspect"`
}

// Reveal configures playback
type Reveal struct {
	Mode     string  `toml:"mode"`
	Duration float64 `toml:"duration"` // seconds
	FPS      int     `toml:"fps"`
	Seed     int64   `toml:"seed"`
	Color    string  `toml:"color"`
}

// Display caps pixel surfaces; zero width or height means unbounded
type Display struct {
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`
	MarginW   int `toml:"margin_w"`
	MarginH   int `toml:"margin_h"`
}

// Audio configures playback cues
type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0..1
}

// Server configures the SSH host
type Server struct {
	Addr    string `toml:"addr"`
	HostKey string `toml:"host_key"`
}

// Config is the full host configuration
type Config struct {
	Convert Convert `toml:"convert"`
	Reveal  Reveal  `toml:"reveal"`
	Display Display `toml:"display"`
	Audio   Audio   `toml:"audio"`
	Server  Server  `toml:"server"`
}

// Default returns the built-in configuration
func Default() *Config {
	opts := glyph.DefaultOptions()
	return &Config{
		Convert: Convert{
			Width:       opts.Width,
			Ramp:        opts.Ramp.String(),
			Contrast:    opts.Contrast,
			Sharpness:   opts.Sharpness,
			GlyphAspect: opts.GlyphAspect,
		},
		Reveal: Reveal{
			Mode:     reveal.ModeCircular.String(),
			Duration: engine.DefaultDuration.Seconds(),
			FPS:      engine.DefaultFPS,
			Color:    "white",
		},
		Display: Display{
			MaxWidth:  1920,
			MaxHeight: 1080,
			MarginW:   engine.DefaultMarginW,
			MarginH:   engine.DefaultMarginH,
		},
		Audio: Audio{
			Enabled: false,
			Volume:  0.5,
		},
		Server: Server{
			Addr:    ":2222",
			HostKey: "glyph_reveal_host_key",
		},
	}
}

// Load reads a TOML file over the defaults
// Keys absent from the file keep their default; unknown keys are an error
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can run with
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.ConvertOptions(); err != nil {
		errs = append(errs, err)
	}
	if c.Reveal.Duration <= 0 {
		errs = append(errs, fmt.Errorf("reveal.duration: must be positive, got %g", c.Reveal.Duration))
	}
	if c.Reveal.FPS <= 0 {
		errs = append(errs, fmt.Errorf("reveal.fps: must be positive, got %d", c.Reveal.FPS))
	}
	if _, err := ParseColor(c.Reveal.Color); err != nil {
		errs = append(errs, fmt.Errorf("reveal.color: %w", err))
	}
	if c.Display.MaxWidth < 0 || c.Display.MaxHeight < 0 || c.Display.MarginW < 0 || c.Display.MarginH < 0 {
		errs = append(errs, errors.New("display: sizes must not be negative"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume: must be in [0, 1], got %g", c.Audio.Volume))
	}

	return errors.Join(errs...)
}

// ConvertOptions returns the validated converter options
func (c *Config) ConvertOptions() (glyph.Options, error) {
	ramp, err := glyph.ParseRamp(c.Convert.Ramp)
	if err != nil {
		return glyph.Options{}, fmt.Errorf("convert.ramp: %w", err)
	}

	opts := glyph.Options{
		Width:       c.Convert.Width,
		Ramp:        ramp,
		Contrast:    c.Convert.Contrast,
		Sharpness:   c.Convert.Sharpness,
		GlyphAspect: c.Convert.GlyphAspect,
	}
	if err := opts.Validate(); err != nil {
		return glyph.Options{}, fmt.Errorf("convert: %w", err)
	}
	return opts, nil
}

// EngineConfig returns the playback parameters
// An unknown mode name is logged and falls back to Circular
func (c *Config) EngineConfig() (engine.Config, error) {
	color, err := ParseColor(c.Reveal.Color)
	if err != nil {
		return engine.Config{}, fmt.Errorf("reveal.color: %w", err)
	}

	mode, ok := reveal.ParseMode(c.Reveal.Mode)
	if !ok {
		log.Printf("config: unknown mode %q, using %s", c.Reveal.Mode, mode)
	}

	cfg := engine.Config{
		Mode:     mode,
		Duration: time.Duration(c.Reveal.Duration * float64(time.Second)),
		FPS:      c.Reveal.FPS,
		Color:    color,
		Seed:     c.Reveal.Seed,
	}
	if cfg.Duration <= 0 {
		return engine.Config{}, engine.ErrInvalidDuration
	}
	return cfg, nil
}

// EngineDisplay returns the pixel display bounds
func (c *Config) EngineDisplay() engine.Display {
	return engine.Display{
		Width:   c.Display.MaxWidth,
		Height:  c.Display.MaxHeight,
		MarginW: c.Display.MarginW,
		MarginH: c.Display.MarginH,
	}
}

// AudioConfig returns cue settings with environment overrides applied
func (c *Config) AudioConfig() *audio.Config {
	cfg := audio.DefaultConfig()
	cfg.Enabled = c.Audio.Enabled
	cfg.Volume = audio.ClampVolume(c.Audio.Volume)
	return audio.ApplyEnv(cfg)
}
