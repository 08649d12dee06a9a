package fractal

import (
	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
)

// Region is a rectangle of the complex plane.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// ZoomRegion returns the classical view at zoom 1. Lower zoom pulls every
// edge in by 1-zoom.
func ZoomRegion(zoom float64) Region {
	d := 1 - zoom
	return Region{
		Xmin: -2 + d,
		Xmax: 0.47 - d,
		Ymin: -0.92 + d,
		Ymax: 1.32 - d,
	}
}

// Sample maps cell (x, y) of an n by n grid into the region.
func (r Region) Sample(n, x, y int) complex128 {
	mx := (r.Xmax - r.Xmin) / float64(n)
	my := (r.Ymax - r.Ymin) / float64(n)
	return complex(mx*float64(x)+r.Xmin, my*float64(y)+r.Ymin)
}

// Escape iterates z = z*z + c from z = c and returns the step count at
// which |z|^2 reached threshold, or max if it never did.
func Escape(c complex128, threshold float64, max int) int {
	z := c
	i := 1
	for i < max && real(z)*real(z)+imag(z)*imag(z) < threshold {
		z = z*z + c
		i++
	}
	return i
}

// GenerateEscape samples a resolution by resolution grid of the region for
// zoom and emits one half-unit square per cell, coloured by escape speed.
// The grid is centred on the logical origin.
func GenerateEscape(tf geom.Transform, zoom float64, resolution, maxIterations int, threshold float64) ([]Primitive, error) {
	out, _, err := generateEscape(tf, zoom, resolution, maxIterations, threshold)
	return out, err
}

func generateEscape(tf geom.Transform, zoom float64, resolution, maxIterations int, threshold float64) ([]Primitive, bool, error) {
	switch {
	case resolution < 2:
		return []Primitive{}, false, configError("escape", "resolution", float64(resolution), "must be at least 2")
	case maxIterations < 1:
		return []Primitive{}, false, configError("escape", "max_iterations", float64(maxIterations), "must be at least 1")
	case !(threshold > 0):
		return []Primitive{}, false, configError("escape", "threshold", threshold, "must be positive")
	}

	region := ZoomRegion(zoom)
	shift := float64(resolution) / 2
	half := vec.Vec2{X: 0.25, Y: 0.25}
	e := newEmitter(tf, resolution*resolution)
	for x := 0; x < resolution; x++ {
		for y := 0; y < resolution; y++ {
			n := Escape(region.Sample(resolution, x, y), threshold, maxIterations)
			at := vec.Vec2{X: float64(x) - shift, Y: float64(y) - shift}
			if !e.rect(at, half, palette.EscapeColor(n, maxIterations)) {
				return e.out, true, nil
			}
		}
	}
	return e.out, e.truncated, nil
}

// EscapeParams are the escape-time sliders.
type EscapeParams struct {
	Zoom          float64 `yaml:"zoom" json:"zoom"`
	Resolution    int     `yaml:"resolution" json:"resolution"`
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"`
	Threshold     float64 `yaml:"threshold" json:"threshold"`
}

// DefaultEscapeParams returns the start-up escape-time settings.
func DefaultEscapeParams() EscapeParams {
	return EscapeParams{
		Zoom:          1,
		Resolution:    255,
		MaxIterations: 80,
		Threshold:     4,
	}
}

// Clamp returns p with every slider inside its range. Threshold is left
// for Validate.
func (p EscapeParams) Clamp() EscapeParams {
	p.Zoom = clampFloat(p.Zoom, 1e-7, 1)
	p.Resolution = clampInt(p.Resolution, 100, 750)
	p.MaxIterations = clampInt(p.MaxIterations, 25, 255)
	return p
}

// Validate reports a divergence threshold that can never be crossed.
func (p EscapeParams) Validate() error {
	if !(p.Threshold > 0) {
		return configError("escape", "threshold", p.Threshold, "must be positive")
	}
	return nil
}

// Region returns the sampled rectangle of the complex plane.
func (p EscapeParams) Region() Region {
	return ZoomRegion(p.Zoom)
}

type escapeKey struct {
	params EscapeParams
	canvas geom.Canvas
}

// EscapeTime is the Mandelbrot set generator.
type EscapeTime struct {
	Params EscapeParams
	cache  Cache[escapeKey]
}

// NewEscapeTime returns an escape-time generator with default parameters.
func NewEscapeTime() *EscapeTime {
	return &EscapeTime{Params: DefaultEscapeParams()}
}

func (g *EscapeTime) Name() string { return "escape" }

// Frame returns the sampled grid centred on canvas.
func (g *EscapeTime) Frame(canvas geom.Canvas) []Primitive {
	key := escapeKey{params: g.Params.Clamp(), canvas: canvas}
	return g.cache.Get(key, func(k escapeKey) ([]Primitive, error) {
		return traced(g.Name(), func() ([]Primitive, bool, error) {
			p := k.params
			return generateEscape(geom.Centered(k.canvas, 1), p.Zoom, p.Resolution, p.MaxIterations, p.Threshold)
		})
	})
}

func (g *EscapeTime) Err() error          { return g.cache.Err() }
func (g *EscapeTime) Recomputations() int { return g.cache.Recomputations() }
