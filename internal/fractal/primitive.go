package fractal

import (
	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
)

// Kind tags the variant held by a Primitive.
type Kind uint8

const (
	KindRect Kind = iota + 1
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Primitive is a filled axis-aligned rectangle or a stroked line segment in
// canvas coordinates. For rects A is the centre and B the half-extent; for
// lines A and B are the endpoints.
type Primitive struct {
	Kind  Kind
	A, B  vec.Vec2
	Color palette.Color
	Width float64
}

// Rect builds a filled rectangle.
func Rect(center, half vec.Vec2, c palette.Color) Primitive {
	return Primitive{Kind: KindRect, A: center, B: half, Color: c}
}

// Line builds a line segment.
func Line(from, to vec.Vec2, c palette.Color, width float64) Primitive {
	return Primitive{Kind: KindLine, A: from, B: to, Color: c, Width: width}
}

// Bounds returns the top-left and bottom-right corners of the primitive.
func (p Primitive) Bounds() (lo, hi vec.Vec2) {
	if p.Kind == KindRect {
		return p.A.Sub(p.B), p.A.Add(p.B)
	}
	lo, hi = p.A, p.B
	if lo.X > hi.X {
		lo.X, hi.X = hi.X, lo.X
	}
	if lo.Y > hi.Y {
		lo.Y, hi.Y = hi.Y, lo.Y
	}
	return lo, hi
}

// emitter applies the frame transform to every primitive as it is appended
// and enforces the primitive cap.
type emitter struct {
	tf        geom.Transform
	out       []Primitive
	limit     int
	truncated bool
}

func newEmitter(tf geom.Transform, capacity int) *emitter {
	if capacity > MaxPrimitives {
		capacity = MaxPrimitives
	}
	if capacity < 0 {
		capacity = 0
	}
	return &emitter{tf: tf, out: make([]Primitive, 0, capacity), limit: MaxPrimitives}
}

func (e *emitter) rect(center, half vec.Vec2, c palette.Color) bool {
	if len(e.out) >= e.limit {
		e.truncated = true
		return false
	}
	e.out = append(e.out, Rect(e.tf.Apply(center), e.tf.Extent(half), c))
	return true
}

func (e *emitter) line(from, to vec.Vec2, c palette.Color, width float64) bool {
	if len(e.out) >= e.limit {
		e.truncated = true
		return false
	}
	e.out = append(e.out, Line(e.tf.Apply(from), e.tf.Apply(to), c, width))
	return true
}
