// Package geom maps the generators' logical coordinate spaces onto the
// current canvas rectangle.
package geom

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Canvas is the size of the drawing area in device units, origin top-left,
// y pointing down.
type Canvas struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// DefaultCanvas matches the default window size.
var DefaultCanvas = Canvas{Width: 1280, Height: 720}

// Empty reports whether the canvas has no drawable area.
func (c Canvas) Empty() bool {
	return !(c.Width > 0 && c.Height > 0)
}

// Side is the length of the shorter canvas edge.
func (c Canvas) Side() float64 {
	return math.Min(c.Width, c.Height)
}

// Center returns the canvas midpoint.
func (c Canvas) Center() vec.Vec2 {
	return vec.Vec2{X: c.Width / 2, Y: c.Height / 2}
}

// Rect returns the canvas as a rectangle.
func (c Canvas) Rect() rect.Rect {
	return rect.Rect{LLx: 0, LLy: 0, URx: c.Width, URy: c.Height}
}

// Intersects reports whether the box spanned by a and b overlaps the canvas.
func (c Canvas) Intersects(a, b vec.Vec2) bool {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return maxX >= 0 && maxY >= 0 && minX <= c.Width && minY <= c.Height
}

// Transform is a uniform-scale affine map from logical to canvas space.
type Transform struct {
	m matrix.Matrix
}

// Identity leaves coordinates unchanged.
var Identity = Transform{m: matrix.Identity}

// NewTransform scales logical coordinates by scale and moves the logical
// origin to origin.
func NewTransform(scale float64, origin vec.Vec2) Transform {
	return Transform{m: matrix.Matrix{scale, 0, 0, scale, origin.X, origin.Y}}
}

// Fit maps a logical square centred at the origin onto the canvas: one
// logical unit spans zoom times the shorter canvas edge.
func Fit(c Canvas, zoom float64) Transform {
	return NewTransform(c.Side()*zoom, c.Center())
}

// Centered keeps logical units at scale device units and places the
// logical origin at the canvas centre.
func Centered(c Canvas, scale float64) Transform {
	return NewTransform(scale, c.Center())
}

// Apply maps a logical point into canvas space.
func (t Transform) Apply(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: t.m[0]*p.X + t.m[2]*p.Y + t.m[4],
		Y: t.m[1]*p.X + t.m[3]*p.Y + t.m[5],
	}
}

// Extent maps a logical offset (half-extent, direction) without translation.
func (t Transform) Extent(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: math.Abs(t.m[0]*v.X + t.m[2]*v.Y),
		Y: math.Abs(t.m[1]*v.X + t.m[3]*v.Y),
	}
}

// Scale returns the factor applied to logical lengths.
func (t Transform) Scale() float64 {
	return math.Hypot(t.m[0], t.m[1])
}

// Matrix exposes the underlying affine matrix.
func (t Transform) Matrix() matrix.Matrix {
	return t.m
}
