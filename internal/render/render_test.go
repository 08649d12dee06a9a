package render

import (
	"testing"

	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
)

func TestDrawOrderAndCulling(t *testing.T) {
	canvas := geom.Canvas{Width: 100, Height: 100}
	prims := []fractal.Primitive{
		fractal.Rect(vec.Vec2{X: 50, Y: 50}, vec.Vec2{X: 5, Y: 5}, palette.Red),
		fractal.Rect(vec.Vec2{X: 500, Y: 50}, vec.Vec2{X: 5, Y: 5}, palette.Green),
		fractal.Line(vec.Vec2{X: -10, Y: 10}, vec.Vec2{X: 10, Y: 10}, palette.Blue, 1),
		fractal.Line(vec.Vec2{X: -10, Y: -10}, vec.Vec2{X: -5, Y: -20}, palette.White, 1),
		fractal.Rect(vec.Vec2{X: -4, Y: 50}, vec.Vec2{X: 5, Y: 5}, palette.White),
	}

	var rec Recorder
	st := Draw(&rec, prims, canvas)
	if st.Rects != 2 || st.Lines != 1 || st.Culled != 2 {
		t.Errorf("unexpected stats %+v", st)
	}
	if st.Drawn() != len(rec.Prims) {
		t.Errorf("drawn %d, recorded %d", st.Drawn(), len(rec.Prims))
	}
	want := []palette.Color{palette.Red, palette.Blue, palette.White}
	for i, c := range want {
		if rec.Prims[i].Color != c {
			t.Errorf("primitive %d colour %v, want %v", i, rec.Prims[i].Color, c)
		}
	}
}

func TestVisibleFrame(t *testing.T) {
	canvas := geom.Canvas{Width: 640, Height: 480}
	g := fractal.NewCarpet()
	g.Params.Depth = 2
	frame := g.Frame(canvas)
	if got := Visible(frame, canvas); len(got) != len(frame) {
		t.Errorf("zoom 0.9 carpet should be fully visible: %d of %d", len(got), len(frame))
	}
}

func TestScaled(t *testing.T) {
	var rec Recorder
	s := Scaled{Sink: &rec, Factor: 0.5}
	s.FillRect(vec.Vec2{X: 10, Y: 20}, vec.Vec2{X: 2, Y: 2}, palette.Red)
	s.StrokeLine(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 8, Y: 4}, palette.Blue, 2)

	if rec.Prims[0].A != (vec.Vec2{X: 5, Y: 10}) || rec.Prims[0].B != (vec.Vec2{X: 1, Y: 1}) {
		t.Errorf("scaled rect %+v", rec.Prims[0])
	}
	if rec.Prims[1].B != (vec.Vec2{X: 4, Y: 2}) || rec.Prims[1].Width != 1 {
		t.Errorf("scaled line %+v", rec.Prims[1])
	}
}
