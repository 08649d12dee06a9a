// Package export writes fractal frames to SVG and PNG files.
package export

import (
	"fmt"
	"strings"

	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
	"github.com/san-kum/fractalab/internal/render"
)

// Background is the default page colour.
var Background = palette.Color{R: 10, G: 10, B: 10}

// SVG is a render.Sink that accumulates an SVG document.
type SVG struct {
	sb     strings.Builder
	closed bool
}

var _ render.Sink = (*SVG)(nil)

// NewSVG starts a document the size of canvas filled with bg.
func NewSVG(canvas geom.Canvas, bg palette.Color) *SVG {
	s := &SVG{}
	s.sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, canvas.Width, canvas.Height, canvas.Width, canvas.Height, bg.Hex()))
	return s
}

func (s *SVG) FillRect(center, half vec.Vec2, c palette.Color) {
	s.sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>
`, center.X-half.X, center.Y-half.Y, 2*half.X, 2*half.Y, c.Hex()))
}

func (s *SVG) StrokeLine(from, to vec.Vec2, c palette.Color, width float64) {
	s.sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-linecap="round"/>
`, from.X, from.Y, to.X, to.Y, c.Hex(), width))
}

// String closes the document and returns it.
func (s *SVG) String() string {
	if !s.closed {
		s.sb.WriteString("</svg>\n")
		s.closed = true
	}
	return s.sb.String()
}

// FrameToSVG renders the visible part of prims as an SVG document.
func FrameToSVG(prims []fractal.Primitive, canvas geom.Canvas, bg palette.Color) string {
	if canvas.Empty() {
		return ""
	}
	s := NewSVG(canvas, bg)
	render.Draw(s, prims, canvas)
	return s.String()
}
