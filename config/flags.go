package config

import (
	"flag"
	"strings"

	"github.com/lixenwraith/glyph-reveal/glyph"
	"github.com/lixenwraith/glyph-reveal/reveal"
)

// Flags binds configuration flags to a FlagSet
// Only flags set on the command line override the file and defaults
type Flags struct {
	path string
	vals *Config

	// apply copies one flag's value from src onto dst, keyed by flag name
	apply map[string]func(dst, src *Config)
}

// RegisterFlags registers playback and conversion flags on fs
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{
		vals:  Default(),
		apply: make(map[string]func(dst, src *Config)),
	}
	v := f.vals

	fs.StringVar(&f.path, "config", "", "TOML configuration file")

	f.bind("mode", func(dst, src *Config) { dst.Reveal.Mode = src.Reveal.Mode })
	fs.StringVar(&v.Reveal.Mode, "mode", v.Reveal.Mode, "reveal mode: "+modeList())

	f.bind("duration", func(dst, src *Config) { dst.Reveal.Duration = src.Reveal.Duration })
	fs.Float64Var(&v.Reveal.Duration, "duration", v.Reveal.Duration, "reveal duration in seconds (5-20 recommended)")

	f.bind("fps", func(dst, src *Config) { dst.Reveal.FPS = src.Reveal.FPS })
	fs.IntVar(&v.Reveal.FPS, "fps", v.Reveal.FPS, "frames per second")

	f.bind("seed", func(dst, src *Config) { dst.Reveal.Seed = src.Reveal.Seed })
	fs.Int64Var(&v.Reveal.Seed, "seed", v.Reveal.Seed, "seed for Rain and Dissolve, 0 = random")

	f.bind("color", func(dst, src *Config) { dst.Reveal.Color = src.Reveal.Color })
	fs.StringVar(&v.Reveal.Color, "color", v.Reveal.Color, "glyph color: #rrggbb or "+strings.Join(ColorNames(), ", "))

	f.bind("width", func(dst, src *Config) { dst.Convert.Width = src.Convert.Width })
	fs.IntVar(&v.Convert.Width, "width", v.Convert.Width, "grid width in glyphs")

	f.bind("ramp", func(dst, src *Config) { dst.Convert.Ramp = src.Convert.Ramp })
	fs.StringVar(&v.Convert.Ramp, "ramp", v.Convert.Ramp, "glyph ramp: "+rampList())

	f.bind("contrast", func(dst, src *Config) { dst.Convert.Contrast = src.Convert.Contrast })
	fs.Float64Var(&v.Convert.Contrast, "contrast", v.Convert.Contrast, "contrast factor, 1 leaves the image untouched")

	f.bind("sharpness", func(dst, src *Config) { dst.Convert.Sharpness = src.Convert.Sharpness })
	fs.Float64Var(&v.Convert.Sharpness, "sharpness", v.Convert.Sharpness, "sharpness factor, 1 = unchanged")

	f.bind("aspect", func(dst, src *Config) { dst.Convert.GlyphAspect = src.Convert.GlyphAspect })
	fs.Float64Var(&v.Convert.GlyphAspect, "aspect", v.Convert.GlyphAspect, "glyph width/height ratio")

	f.bind("sound", func(dst, src *Config) { dst.Audio.Enabled = src.Audio.Enabled })
	fs.BoolVar(&v.Audio.Enabled, "sound", v.Audio.Enabled, "play audio cues")

	return f
}

// RegisterServerFlags adds the SSH listener flags
func (f *Flags) RegisterServerFlags(fs *flag.FlagSet) {
	v := f.vals

	f.bind("addr", func(dst, src *Config) { dst.Server.Addr = src.Server.Addr })
	fs.StringVar(&v.Server.Addr, "addr", v.Server.Addr, "SSH listen address")

	f.bind("hostkey", func(dst, src *Config) { dst.Server.HostKey = src.Server.HostKey })
	fs.StringVar(&v.Server.HostKey, "hostkey", v.Server.HostKey, "SSH host key path, created if missing")
}

func (f *Flags) bind(name string, fn func(dst, src *Config)) {
	f.apply[name] = fn
}

// Path returns the -config value
func (f *Flags) Path() string {
	return f.path
}

// Resolve loads the file named by -config, if any, then applies flags set on fs
// fs must already be parsed
func (f *Flags) Resolve(fs *flag.FlagSet) (*Config, error) {
	cfg := Default()
	if f.path != "" {
		loaded, err := Load(f.path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(fl *flag.Flag) {
		if fn, ok := f.apply[fl.Name]; ok {
			fn(cfg, f.vals)
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func modeList() string {
	modes := reveal.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = strings.ToLower(m.String())
	}
	return strings.Join(names, ", ")
}

func rampList() string {
	var names []string
	for _, r := range glyph.Ramps() {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}
