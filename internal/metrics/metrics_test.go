package metrics

import (
	"math"
	"strings"
	"testing"

	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
)

func TestCollect(t *testing.T) {
	prims := []fractal.Primitive{
		fractal.Rect(vec.Vec2{X: 5, Y: 5}, vec.Vec2{X: 5, Y: 5}, palette.Red),
		fractal.Line(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 3, Y: 4}, palette.Red, 1),
		fractal.Line(vec.Vec2{X: 3, Y: 4}, vec.Vec2{X: 3, Y: 10}, palette.Blue, 1),
	}
	got := Collect(prims, Standard(geom.Canvas{Width: 20, Height: 10})...)

	want := map[string]float64{
		"primitives":  3,
		"rects":       1,
		"lines":       2,
		"coverage":    0.5,
		"path_length": 11,
		"colors":      2,
	}
	for name, v := range want {
		if math.Abs(got[name]-v) > 1e-9 {
			t.Errorf("%s = %f, want %f", name, got[name], v)
		}
	}
	if math.Abs(got["extent"]-math.Hypot(10, 10)) > 1e-9 {
		t.Errorf("extent = %f", got["extent"])
	}
}

func TestCollectResets(t *testing.T) {
	c := NewCount(0)
	prims := []fractal.Primitive{fractal.Rect(vec.Vec2{}, vec.Vec2{}, palette.Red)}
	Collect(prims, c)
	if got := Collect(prims, c); got["primitives"] != 1 {
		t.Errorf("expected reset between collections, got %f", got["primitives"])
	}
	if NewExtent().Value() != 0 {
		t.Error("empty extent should be 0")
	}
}

func TestCarpetGrowth(t *testing.T) {
	got := CarpetGrowth(3)
	want := []float64{1, 9, 73, 585}
	if len(got) != len(want) {
		t.Fatalf("expected %d levels, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("level %d: %f, want %f", i, got[i], want[i])
		}
	}
}

func TestWordGrowth(t *testing.T) {
	got := WordGrowth(6)
	want := []float64{2, 2, 3, 5, 8, 13}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("length %d: %f, want %f", i+1, got[i], want[i])
		}
	}
}

func TestTreeGrowth(t *testing.T) {
	got := TreeGrowth(fractal.DefaultTreeParams())
	if len(got) != 3 {
		t.Fatalf("expected 3 detail levels, got %d", len(got))
	}
	if !(got[0] < got[1] && got[1] < got[2]) {
		t.Errorf("segments should grow with detail: %v", got)
	}
	bad := fractal.DefaultTreeParams()
	bad.Scaling = 2
	for _, v := range TreeGrowth(bad) {
		if v != 0 {
			t.Errorf("invalid tree should count 0, got %f", v)
		}
	}
}

func TestEscapeHistogram(t *testing.T) {
	p := fractal.EscapeParams{Zoom: 1, Resolution: 100, MaxIterations: 25, Threshold: 4}
	hist := EscapeHistogram(p, 5)
	total := 0.0
	for _, v := range hist {
		total += v
	}
	if total != 100*100 {
		t.Errorf("histogram holds %f samples, want 10000", total)
	}
	if hist[len(hist)-1] == 0 {
		t.Error("interior points should fill the last bin")
	}
}

func TestProfile(t *testing.T) {
	canvas := geom.Canvas{Width: 10, Height: 10}
	prims := []fractal.Primitive{
		fractal.Rect(vec.Vec2{X: 5, Y: 1}, vec.Vec2{X: 1, Y: 1}, palette.Red),
		fractal.Line(vec.Vec2{X: 0, Y: 8}, vec.Vec2{X: 4, Y: 9}, palette.Red, 1),
		fractal.Rect(vec.Vec2{X: 5, Y: 20}, vec.Vec2{X: 1, Y: 1}, palette.Red),
	}
	got := Profile(prims, canvas, 2)
	if len(got) != 2 || got[0] != 1 || got[1] != 1 {
		t.Errorf("profile = %v, want [1 1]", got)
	}
	if Profile(prims, geom.Canvas{}, 4) != nil {
		t.Error("empty canvas should yield no profile")
	}
}

func TestPlot(t *testing.T) {
	if out := Plot(nil, "empty", 5, 20); !strings.Contains(out, "no data") {
		t.Errorf("unexpected empty plot %q", out)
	}
	out := Plot([]float64{1, 9, 73}, "carpet squares", 5, 20)
	if !strings.Contains(out, "carpet squares") {
		t.Errorf("caption missing:\n%s", out)
	}
}
