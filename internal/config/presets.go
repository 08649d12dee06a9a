package config

import (
	"sort"

	"github.com/san-kum/fractalab/internal/fractal"
)

func preset(kind string, tweak func(*Config)) *Config {
	cfg := DefaultConfig()
	cfg.Fractal = kind
	tweak(cfg)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"carpet": {
		"classic": preset("carpet", func(c *Config) { c.Carpet.Depth = 4 }),
		"shaded": preset("carpet", func(c *Config) {
			c.Carpet.Depth = 5
			c.Carpet.Shaded = true
		}),
		"dust": preset("carpet", func(c *Config) {
			c.Carpet.Depth = 5
			c.Carpet.Random = true
			c.Carpet.Probability = 0.7
			c.Carpet.Seed = 7
		}),
	},
	"word": {
		"short": preset("word", func(c *Config) {
			c.Word.Length = 12
			c.Word.Zoom = 0.5
			c.Word.Step = 0.02
		}),
		"long": preset("word", func(c *Config) {
			c.Word.Length = 22
			c.Word.Zoom = 0.2
			c.Word.Step = 0.002
		}),
	},
	"tree": {
		"sparse": preset("tree", func(c *Config) { c.Tree.Detail = 1 }),
		"dense": preset("tree", func(c *Config) {
			c.Tree.Detail = 3
			c.Tree.BranchAngle = 0.4
			c.Tree.LuminanceDecay = 0.9
		}),
		"htree": preset("tree", func(c *Config) {
			c.Tree = fractal.DefaultHTreeParams()
			c.Tree.Detail = 3
		}),
	},
	"escape": {
		"classic": preset("escape", func(c *Config) {}),
		"seahorse": preset("escape", func(c *Config) {
			c.Escape.Zoom = 0.6
			c.Escape.Resolution = 400
			c.Escape.MaxIterations = 200
		}),
		"fine": preset("escape", func(c *Config) {
			c.Escape.Resolution = 750
			c.Escape.MaxIterations = 255
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(kind, name string) *Config {
	byName, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := byName[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(kind string) []string {
	byName, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
