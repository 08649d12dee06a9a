package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fractalab/internal/dispatch"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
)

const (
	DefaultFractal = "carpet"
	DefaultTheme   = "dark"
)

type Config struct {
	Fractal    string               `yaml:"fractal"`
	Canvas     geom.Canvas          `yaml:"canvas"`
	Theme      string               `yaml:"theme"`
	Background palette.Color        `yaml:"background"`
	Carpet     fractal.CarpetParams `yaml:"carpet"`
	Word       fractal.WordParams   `yaml:"word"`
	Tree       fractal.TreeParams   `yaml:"tree"`
	Escape     fractal.EscapeParams `yaml:"escape"`
}

func DefaultConfig() *Config {
	return &Config{
		Fractal:    DefaultFractal,
		Canvas:     geom.DefaultCanvas,
		Theme:      DefaultTheme,
		Background: palette.Color{R: 10, G: 10, B: 10},
		Carpet:     fractal.DefaultCarpetParams(),
		Word:       fractal.DefaultWordParams(),
		Tree:       fractal.DefaultTreeParams(),
		Escape:     fractal.DefaultEscapeParams(),
	}
}

// Load reads a YAML file over the defaults, so a file may set only the
// fields it cares about.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Kind resolves the configured fractal name.
func (c *Config) Kind() (dispatch.Kind, error) {
	return dispatch.ParseKind(c.Fractal)
}

// Validate checks the fractal name and the parameters that are rejected
// rather than clamped.
func (c *Config) Validate() error {
	if _, err := c.Kind(); err != nil {
		return err
	}
	if c.Canvas.Empty() {
		return fmt.Errorf("config: canvas %gx%g has no area", c.Canvas.Width, c.Canvas.Height)
	}
	if err := c.Tree.Validate(); err != nil {
		return err
	}
	return c.Escape.Validate()
}

// Apply loads the parameters into sel and selects the configured fractal.
func (c *Config) Apply(sel *dispatch.Selector) error {
	k, err := c.Kind()
	if err != nil {
		return err
	}
	sel.Carpet().Params = c.Carpet
	sel.Word().Params = c.Word
	sel.Tree().Params = c.Tree
	sel.Escape().Params = c.Escape
	return sel.Select(k)
}

// Capture records the live parameters of sel.
func (c *Config) Capture(sel *dispatch.Selector) {
	c.Fractal = string(sel.Active())
	c.Carpet = sel.Carpet().Params
	c.Word = sel.Word().Params
	c.Tree = sel.Tree().Params
	c.Escape = sel.Escape().Params
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
