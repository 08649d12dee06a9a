// Package render hands generated primitives to a drawing backend.
package render

import (
	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
)

// Sink rasterises primitives. Coordinates are canvas units with the
// origin at the top-left corner.
type Sink interface {
	FillRect(center, half vec.Vec2, c palette.Color)
	StrokeLine(from, to vec.Vec2, c palette.Color, width float64)
}

// Stats counts what Draw handed to the sink.
type Stats struct {
	Rects  int
	Lines  int
	Culled int
}

// Drawn is the number of primitives passed to the sink.
func (s Stats) Drawn() int { return s.Rects + s.Lines }

// Draw passes prims to sink in emission order, skipping primitives whose
// bounds lie entirely outside canvas. Later primitives overlay earlier ones.
func Draw(sink Sink, prims []fractal.Primitive, canvas geom.Canvas) Stats {
	var st Stats
	for _, p := range prims {
		lo, hi := p.Bounds()
		if !canvas.Intersects(lo, hi) {
			st.Culled++
			continue
		}
		switch p.Kind {
		case fractal.KindRect:
			sink.FillRect(p.A, p.B, p.Color)
			st.Rects++
		case fractal.KindLine:
			sink.StrokeLine(p.A, p.B, p.Color, p.Width)
			st.Lines++
		}
	}
	return st
}

// Recorder is a Sink that keeps every call, for tests and exports that
// need the visible subset.
type Recorder struct {
	Prims []fractal.Primitive
}

func (r *Recorder) FillRect(center, half vec.Vec2, c palette.Color) {
	r.Prims = append(r.Prims, fractal.Rect(center, half, c))
}

func (r *Recorder) StrokeLine(from, to vec.Vec2, c palette.Color, width float64) {
	r.Prims = append(r.Prims, fractal.Line(from, to, c, width))
}

// Visible returns the primitives of prims that Draw would hand to a sink.
func Visible(prims []fractal.Primitive, canvas geom.Canvas) []fractal.Primitive {
	var rec Recorder
	Draw(&rec, prims, canvas)
	return rec.Prims
}

// Scaled forwards to Sink with every coordinate and width multiplied by
// Factor, so a frame generated for a large virtual canvas can be drawn on a
// small device.
type Scaled struct {
	Sink   Sink
	Factor float64
}

func (s Scaled) FillRect(center, half vec.Vec2, c palette.Color) {
	s.Sink.FillRect(center.Mul(s.Factor), half.Mul(s.Factor), c)
}

func (s Scaled) StrokeLine(from, to vec.Vec2, c palette.Color, width float64) {
	s.Sink.StrokeLine(from.Mul(s.Factor), to.Mul(s.Factor), c, width*s.Factor)
}
