package export

import (
	"io"
	"math"

	"github.com/gogpu/gg"
	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
	"github.com/san-kum/fractalab/internal/render"
)

// PNG is a render.Sink backed by a gg raster context.
type PNG struct {
	dc  *gg.Context
	err error
}

var _ render.Sink = (*PNG)(nil)

// NewPNG allocates a raster the size of canvas filled with bg.
func NewPNG(canvas geom.Canvas, bg palette.Color) *PNG {
	w := int(math.Max(1, math.Round(canvas.Width)))
	h := int(math.Max(1, math.Round(canvas.Height)))
	dc := gg.NewContext(w, h)
	r, g, b := bg.Floats()
	dc.ClearWithColor(gg.RGB(r, g, b))
	return &PNG{dc: dc}
}

func (p *PNG) FillRect(center, half vec.Vec2, c palette.Color) {
	p.dc.SetRGB(c.Floats())
	p.dc.DrawRectangle(center.X-half.X, center.Y-half.Y, 2*half.X, 2*half.Y)
	p.keep(p.dc.Fill())
}

func (p *PNG) StrokeLine(from, to vec.Vec2, c palette.Color, width float64) {
	p.dc.SetRGB(c.Floats())
	p.dc.SetLineWidth(width)
	p.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	p.keep(p.dc.Stroke())
}

func (p *PNG) keep(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Err returns the first rasterisation error.
func (p *PNG) Err() error { return p.err }

// Encode writes the raster as PNG.
func (p *PNG) Encode(w io.Writer) error {
	if p.err != nil {
		return p.err
	}
	return p.dc.EncodePNG(w)
}

// Close releases the raster context.
func (p *PNG) Close() error {
	return p.dc.Close()
}

// FrameToPNG rasterises the visible part of prims and writes a PNG to w.
func FrameToPNG(w io.Writer, prims []fractal.Primitive, canvas geom.Canvas, bg palette.Color) error {
	p := NewPNG(canvas, bg)
	defer p.Close()
	render.Draw(p, prims, canvas)
	return p.Encode(w)
}
