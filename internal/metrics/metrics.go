package metrics

import (
	"math"

	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
)

// Metric accumulates a statistic over a primitive sequence.
type Metric interface {
	Name() string
	Observe(p fractal.Primitive)
	Value() float64
	Reset()
}

type Count struct {
	name string
	kind fractal.Kind
	n    int
}

// NewCount counts primitives of kind, or all primitives when kind is 0.
func NewCount(kind fractal.Kind) *Count {
	name := "primitives"
	if kind != 0 {
		name = kind.String() + "s"
	}
	return &Count{name: name, kind: kind}
}

func (c *Count) Name() string { return c.name }

func (c *Count) Observe(p fractal.Primitive) {
	if c.kind == 0 || p.Kind == c.kind {
		c.n++
	}
}

func (c *Count) Value() float64 { return float64(c.n) }
func (c *Count) Reset()         { c.n = 0 }

// Coverage is the summed rectangle area as a fraction of the canvas.
// Overlaps are counted twice.
type Coverage struct {
	area   float64
	canvas float64
}

func NewCoverage(canvas geom.Canvas) *Coverage {
	return &Coverage{canvas: canvas.Width * canvas.Height}
}

func (c *Coverage) Name() string { return "coverage" }

func (c *Coverage) Observe(p fractal.Primitive) {
	if p.Kind == fractal.KindRect {
		c.area += 4 * p.B.X * p.B.Y
	}
}

func (c *Coverage) Value() float64 {
	if c.canvas <= 0 {
		return 0
	}
	return c.area / c.canvas
}

func (c *Coverage) Reset() { c.area = 0 }

// PathLength sums the length of every line segment.
type PathLength struct {
	total float64
}

func NewPathLength() *PathLength { return &PathLength{} }

func (l *PathLength) Name() string { return "path_length" }

func (l *PathLength) Observe(p fractal.Primitive) {
	if p.Kind == fractal.KindLine {
		l.total += p.B.Sub(p.A).Length()
	}
}

func (l *PathLength) Value() float64 { return l.total }
func (l *PathLength) Reset()         { l.total = 0 }

// Colors counts distinct colours.
type Colors struct {
	seen map[palette.Color]struct{}
}

func NewColors() *Colors {
	return &Colors{seen: make(map[palette.Color]struct{})}
}

func (c *Colors) Name() string { return "colors" }

func (c *Colors) Observe(p fractal.Primitive) {
	c.seen[p.Color] = struct{}{}
}

func (c *Colors) Value() float64 { return float64(len(c.seen)) }
func (c *Colors) Reset()         { clear(c.seen) }

// Extent is the diagonal of the box bounding every primitive.
type Extent struct {
	lo, hi [2]float64
	empty  bool
}

func NewExtent() *Extent {
	e := &Extent{}
	e.Reset()
	return e
}

func (e *Extent) Name() string { return "extent" }

func (e *Extent) Observe(p fractal.Primitive) {
	lo, hi := p.Bounds()
	e.lo[0] = math.Min(e.lo[0], lo.X)
	e.lo[1] = math.Min(e.lo[1], lo.Y)
	e.hi[0] = math.Max(e.hi[0], hi.X)
	e.hi[1] = math.Max(e.hi[1], hi.Y)
	e.empty = false
}

func (e *Extent) Value() float64 {
	if e.empty {
		return 0
	}
	return math.Hypot(e.hi[0]-e.lo[0], e.hi[1]-e.lo[1])
}

func (e *Extent) Reset() {
	e.lo = [2]float64{math.Inf(1), math.Inf(1)}
	e.hi = [2]float64{math.Inf(-1), math.Inf(-1)}
	e.empty = true
}

// Standard returns the metrics recorded with every saved render.
func Standard(canvas geom.Canvas) []Metric {
	return []Metric{
		NewCount(0),
		NewCount(fractal.KindRect),
		NewCount(fractal.KindLine),
		NewCoverage(canvas),
		NewPathLength(),
		NewColors(),
		NewExtent(),
	}
}

// Collect feeds prims through ms and returns their values by name.
func Collect(prims []fractal.Primitive, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for _, p := range prims {
		for _, m := range ms {
			m.Observe(p)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
