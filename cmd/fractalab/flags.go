package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/fractalab/internal/config"
	"github.com/san-kum/fractalab/internal/dispatch"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/palette"
)

var (
	configFile string
	preset     string
	width      float64
	height     float64
	theme      string
	color      string

	zoom        float64
	depth       int
	shaded      bool
	random      bool
	probability float64
	seed        int64
	length      int
	detail      int
	branchAngle float64
	htree       bool
	resolution  int
	iterations  int
	threshold   float64
)

func registerConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&width, "width", 1280, "canvas width")
	f.Float64Var(&height, "height", 720, "canvas height")
	f.StringVar(&theme, "theme", config.DefaultTheme, "terminal theme")
	f.StringVar(&color, "color", "", "fractal colour as #rrggbb")

	f.Float64Var(&zoom, "zoom", 0, "zoom of the selected fractal")
	f.IntVar(&depth, "depth", 1, "carpet depth")
	f.BoolVar(&shaded, "shaded", false, "shade carpet levels")
	f.BoolVar(&random, "random", false, "randomise carpet squares")
	f.Float64Var(&probability, "probability", 0.5, "carpet square probability")
	f.Int64Var(&seed, "seed", 1, "carpet random seed")
	f.IntVar(&length, "length", 16, "fibonacci word length")
	f.IntVar(&detail, "detail", 1, "tree detail (1-3)")
	f.Float64Var(&branchAngle, "branch-angle", 0.26, "tree branch angle in radians")
	f.BoolVar(&htree, "htree", false, "draw the H-tree variant")
	f.IntVar(&resolution, "resolution", 255, "escape-time grid resolution")
	f.IntVar(&iterations, "iterations", 80, "escape-time iteration limit")
	f.Float64Var(&threshold, "threshold", 4, "escape-time divergence threshold")
}

// resolveConfig builds the configuration from defaults, the config file,
// the preset and finally any flag set on the command line. An optional
// fractal argument selects the fractal.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		k, err := dispatch.ParseKind(args[0])
		if err != nil {
			return nil, err
		}
		cfg.Fractal = string(k)
		if args[0] == "htree" && !cmd.Flags().Changed("htree") {
			cfg.Tree = fractal.DefaultHTreeParams()
		}
	}
	kind, err := cfg.Kind()
	if err != nil {
		return nil, err
	}
	cfg.Fractal = string(kind)

	if preset != "" {
		p := config.GetPreset(string(kind), preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(string(kind)))
		}
		switch kind {
		case dispatch.Carpet:
			cfg.Carpet = p.Carpet
		case dispatch.Word:
			cfg.Word = p.Word
		case dispatch.Tree:
			cfg.Tree = p.Tree
		case dispatch.Escape:
			cfg.Escape = p.Escape
		}
	}

	if err := applyFlags(cmd, cfg, kind); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config, kind dispatch.Kind) error {
	changed := cmd.Flags().Changed

	if changed("width") {
		cfg.Canvas.Width = width
	}
	if changed("height") {
		cfg.Canvas.Height = height
	}
	if changed("theme") {
		cfg.Theme = theme
	}

	var col *palette.Color
	if changed("color") {
		c, err := palette.ParseHex(color)
		if err != nil {
			return fmt.Errorf("--color: %w", err)
		}
		col = &c
	}

	switch kind {
	case dispatch.Carpet:
		p := &cfg.Carpet
		if changed("zoom") {
			p.Zoom = zoom
		}
		if changed("depth") {
			p.Depth = depth
		}
		if changed("shaded") {
			p.Shaded = shaded
		}
		if changed("random") {
			p.Random = random
		}
		if changed("probability") {
			p.Probability = probability
		}
		if changed("seed") {
			p.Seed = seed
		}
		if col != nil {
			p.Color = *col
		}
	case dispatch.Word:
		p := &cfg.Word
		if changed("zoom") {
			p.Zoom = zoom
		}
		if changed("length") {
			p.Length = length
		}
		if col != nil {
			p.Color = *col
		}
	case dispatch.Tree:
		if changed("htree") {
			c, z := cfg.Tree.Color, cfg.Tree.Zoom
			if htree {
				cfg.Tree = fractal.DefaultHTreeParams()
			} else {
				cfg.Tree = fractal.DefaultTreeParams()
			}
			cfg.Tree.Color, cfg.Tree.Zoom = c, z
		}
		p := &cfg.Tree
		if changed("zoom") {
			p.Zoom = zoom
		}
		if changed("detail") {
			p.Detail = detail
		}
		if changed("branch-angle") {
			p.BranchAngle = branchAngle
		}
		if col != nil {
			p.Color = *col
		}
	case dispatch.Escape:
		p := &cfg.Escape
		if changed("zoom") {
			p.Zoom = zoom
		}
		if changed("resolution") {
			p.Resolution = resolution
		}
		if changed("iterations") {
			p.MaxIterations = iterations
		}
		if changed("threshold") {
			p.Threshold = threshold
		}
	}
	return nil
}
