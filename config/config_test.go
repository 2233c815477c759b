package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/glyph-reveal/engine"
	"github.com/lixenwraith/glyph-reveal/glyph"
	"github.com/lixenwraith/glyph-reveal/reveal"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	opts, err := cfg.ConvertOptions()
	require.NoError(t, err)
	assert.Equal(t, glyph.DefaultOptions(), opts)

	ec, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, reveal.ModeCircular, ec.Mode)
	assert.Equal(t, engine.DefaultDuration, ec.Duration)
	assert.Equal(t, engine.DefaultFPS, ec.FPS)
	assert.Equal(t, engine.White, ec.Color)

	d := cfg.EngineDisplay()
	assert.Equal(t, engine.Display{Width: 1920, Height: 1080, MarginW: 50, MarginH: 100}, d)
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
[convert]
width = 120
ramp = "blocks"

[reveal]
mode = "matrix"
duration = 12.5
seed = 42
color = "#00ff00"

[audio]
enabled = true
volume = 0.25

[server]
addr = "127.0.0.1:2323"
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Convert.Width)
	assert.Equal(t, "blocks", cfg.Convert.Ramp)
	assert.Equal(t, glyph.DefaultContrast, cfg.Convert.Contrast, "absent keys keep defaults")
	assert.Equal(t, "127.0.0.1:2323", cfg.Server.Addr)
	assert.Equal(t, "glyph_reveal_host_key", cfg.Server.HostKey)

	ec, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, reveal.ModeRain, ec.Mode)
	assert.Equal(t, 12500*time.Millisecond, ec.Duration)
	assert.Equal(t, int64(42), ec.Seed)
	assert.Equal(t, engine.RGB{G: 255}, ec.Color)

	ac := cfg.AudioConfig()
	assert.True(t, ac.Enabled)
	assert.Equal(t, 0.25, ac.Volume)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[convert\nwidth = 1"},
		{"unknown key", "[reveal]\nspeed = 3"},
		{"wrong type", "[convert]\nwidth = \"wide\""},
		{"bad ramp", "[convert]\nramp = \"emoji\""},
		{"contrast out of range", "[convert]\ncontrast = -0.5"},
		{"zero duration", "[reveal]\nduration = 0.0"},
		{"negative fps", "[reveal]\nfps = -1"},
		{"bad color", "[reveal]\ncolor = \"chartreuse-ish\""},
		{"negative margin", "[display]\nmargin_w = -1"},
		{"loud", "[audio]\nvolume = 3.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestUnknownModeFallsBack(t *testing.T) {
	cfg := Default()
	cfg.Reveal.Mode = "kaleidoscope"

	ec, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, reveal.ModeCircular, ec.Mode)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reveal.toml")
	require.NoError(t, os.WriteFile(path, []byte("[reveal]\nmode = \"spiral\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "spiral", cfg.Reveal.Mode)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    engine.RGB
		wantErr bool
	}{
		{"", engine.White, false},
		{"white", engine.White, false},
		{"Green", engine.RGB{R: 0x00, G: 0xff, B: 0x41}, false},
		{"#ff8000", engine.RGB{R: 0xff, G: 0x80}, false},
		{"ff8000", engine.RGB{R: 0xff, G: 0x80}, false},
		{"#fff", engine.White, false},
		{"#12345", engine.RGB{}, true},
		{"mauve-ish", engine.RGB{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlagsOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reveal.toml")
	require.NoError(t, os.WriteFile(path, []byte("[reveal]\nmode = \"spiral\"\nduration = 15.0\n\n[convert]\nwidth = 80\n"), 0644))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	f.RegisterServerFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-duration", "6", "-color", "amber", "-addr", ":9999", "image.png"}))

	cfg, err := f.Resolve(fs)
	require.NoError(t, err)

	assert.Equal(t, path, f.Path())
	assert.Equal(t, "spiral", cfg.Reveal.Mode, "file value kept when flag unset")
	assert.Equal(t, 80, cfg.Convert.Width)
	assert.Equal(t, 6.0, cfg.Reveal.Duration, "flag beats file")
	assert.Equal(t, "amber", cfg.Reveal.Color)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, []string{"image.png"}, fs.Args())
}

func TestFlagsDefaultsWithoutFile(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-mode", "radar", "-sound"}))

	cfg, err := f.Resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "radar", cfg.Reveal.Mode)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, Default().Convert, cfg.Convert)
}

func TestFlagsInvalidValue(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-duration", "-3"}))

	_, err := f.Resolve(fs)
	assert.Error(t, err)
}
