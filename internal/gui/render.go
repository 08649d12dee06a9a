package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/palette"
	"github.com/san-kum/fractalab/internal/render"
)

// Window draws primitives straight into the current raylib frame. It must
// be used between rl.BeginDrawing and rl.EndDrawing.
type Window struct{}

var _ render.Sink = Window{}

func (Window) FillRect(center, half vec.Vec2, c palette.Color) {
	rec := rl.NewRectangle(
		float32(center.X-half.X), float32(center.Y-half.Y),
		float32(2*half.X), float32(2*half.Y),
	)
	rl.DrawRectangleRec(rec, toRL(c))
}

func (Window) StrokeLine(from, to vec.Vec2, c palette.Color, width float64) {
	rl.DrawLineEx(
		rl.NewVector2(float32(from.X), float32(from.Y)),
		rl.NewVector2(float32(to.X), float32(to.Y)),
		float32(width), toRL(c),
	)
}

func toRL(c palette.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}
