package fractal

import (
	"math/rand"

	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
)

// MaxCarpetDepth bounds carpet subdivision.
const MaxCarpetDepth = 7

// CarpetStyle selects how carpet squares are coloured and gated.
type CarpetStyle struct {
	Color  palette.Color
	Shaded bool

	// Random, when non-nil, gates every square behind a Bernoulli draw with
	// the given Probability. Recursion continues for rejected squares.
	Random      RandomSource
	Probability float64
}

// GenerateCarpet subdivides the square of side size centred at center into
// a 3x3 grid. The centre cell is emitted and the eight others are recursed
// into until maxLevel levels have been drawn. Without randomness the result
// holds sum(8^i, i=0..maxLevel) squares.
func GenerateCarpet(tf geom.Transform, center vec.Vec2, size float64, maxLevel int, style CarpetStyle) []Primitive {
	out, _ := generateCarpet(tf, center, size, maxLevel, style)
	return out
}

func generateCarpet(tf geom.Transform, center vec.Vec2, size float64, maxLevel int, style CarpetStyle) ([]Primitive, bool) {
	maxLevel = clampInt(maxLevel, 0, MaxCarpetDepth)
	e := newEmitter(tf, carpetCount(maxLevel))
	subdivide(e, center, size, 0, maxLevel, style)
	return e.out, e.truncated
}

func subdivide(e *emitter, center vec.Vec2, size float64, level, remaining int, style CarpetStyle) bool {
	c := style.Color
	if style.Shaded {
		c = palette.Level(level)
	}
	if style.Random == nil || style.Random.Float64() < style.Probability {
		half := size / 6
		if !e.rect(center, vec.Vec2{X: half, Y: half}, c) {
			return false
		}
	}
	if remaining <= 0 {
		return true
	}
	third := size / 3
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			next := center.Add(vec.Vec2{X: float64(dx) * third, Y: float64(dy) * third})
			if !subdivide(e, next, third, level+1, remaining-1, style) {
				return false
			}
		}
	}
	return true
}

func carpetCount(maxLevel int) int {
	n, p := 0, 1
	for i := 0; i <= maxLevel; i++ {
		n += p
		p *= 8
	}
	return n
}

// CarpetParams are the carpet sliders.
type CarpetParams struct {
	Depth       int           `yaml:"depth" json:"depth"`
	Zoom        float64       `yaml:"zoom" json:"zoom"`
	Color       palette.Color `yaml:"color" json:"color"`
	Shaded      bool          `yaml:"shaded" json:"shaded"`
	Random      bool          `yaml:"random" json:"random"`
	Probability float64       `yaml:"probability" json:"probability"`
	Seed        int64         `yaml:"seed" json:"seed"`
}

// DefaultCarpetParams returns the start-up carpet settings.
func DefaultCarpetParams() CarpetParams {
	return CarpetParams{
		Depth:       1,
		Zoom:        0.9,
		Color:       palette.Blue,
		Probability: 0.5,
		Seed:        1,
	}
}

// Clamp returns p with every slider inside its range.
func (p CarpetParams) Clamp() CarpetParams {
	p.Depth = clampInt(p.Depth, 0, MaxCarpetDepth)
	p.Zoom = clampFloat(p.Zoom, 0.05, 1)
	p.Probability = clampFloat(p.Probability, 0, 1)
	return p
}

// Validate always succeeds once clamped; the carpet has no
// non-terminating configurations.
func (p CarpetParams) Validate() error {
	return nil
}

type carpetKey struct {
	params CarpetParams
	canvas geom.Canvas
}

// Carpet is the Sierpinski carpet generator.
type Carpet struct {
	Params CarpetParams
	cache  Cache[carpetKey]
}

// NewCarpet returns a carpet generator with default parameters.
func NewCarpet() *Carpet {
	return &Carpet{Params: DefaultCarpetParams()}
}

func (g *Carpet) Name() string { return "carpet" }

// Frame returns the carpet for canvas, rebuilding only when the parameters
// or the canvas changed since the previous call.
func (g *Carpet) Frame(canvas geom.Canvas) []Primitive {
	key := carpetKey{params: g.Params.Clamp(), canvas: canvas}
	return g.cache.Get(key, func(k carpetKey) ([]Primitive, error) {
		return traced(g.Name(), func() ([]Primitive, bool, error) {
			style := CarpetStyle{Color: k.params.Color, Shaded: k.params.Shaded}
			if k.params.Random {
				style.Random = rand.New(rand.NewSource(k.params.Seed))
				style.Probability = k.params.Probability
			}
			out, truncated := generateCarpet(geom.Fit(k.canvas, k.params.Zoom), vec.Vec2{}, 1, k.params.Depth, style)
			return out, truncated, nil
		})
	})
}

func (g *Carpet) Err() error          { return g.cache.Err() }
func (g *Carpet) Recomputations() int { return g.cache.Recomputations() }
