package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/glyph-reveal/engine"
)

// namedColors are accepted in place of hex codes
var namedColors = map[string]string{
	"white":  "#ffffff",
	"green":  "#00ff41",
	"amber":  "#ffb000",
	"cyan":   "#00ffff",
	"red":    "#ff3030",
	"blue":   "#4080ff",
	"yellow": "#ffff00",
	"gray":   "#a0a0a0",
	"grey":   "#a0a0a0",
}

// ParseColor accepts a color name, #rgb or #rrggbb; the leading # is optional
func ParseColor(s string) (engine.RGB, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return engine.White, nil
	}
	if hex, ok := namedColors[name]; ok {
		name = hex
	}
	if !strings.HasPrefix(name, "#") {
		name = "#" + name
	}

	c, err := colorful.Hex(name)
	if err != nil {
		return engine.RGB{}, fmt.Errorf("invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return engine.RGB{R: r, G: g, B: b}, nil
}

// ColorNames lists the accepted color names
func ColorNames() []string {
	names := make([]string, 0, len(namedColors))
	for n := range namedColors {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
