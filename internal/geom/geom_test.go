package geom

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func near(a, b vec.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestFit(t *testing.T) {
	c := Canvas{Width: 800, Height: 400}
	tf := Fit(c, 0.5)

	if got := tf.Apply(vec.Vec2{}); !near(got, vec.Vec2{X: 400, Y: 200}) {
		t.Errorf("origin should map to canvas centre, got %v", got)
	}
	// shorter edge is 400, zoom 0.5 => one unit is 200 device units
	if got := tf.Apply(vec.Vec2{X: 1, Y: -1}); !near(got, vec.Vec2{X: 600, Y: 0}) {
		t.Errorf("expected (600, 0), got %v", got)
	}
	if got := tf.Scale(); math.Abs(got-200) > 1e-9 {
		t.Errorf("expected scale 200, got %f", got)
	}
}

func TestCentered(t *testing.T) {
	c := Canvas{Width: 100, Height: 60}
	tf := Centered(c, 2)
	if got := tf.Apply(vec.Vec2{X: -5, Y: 5}); !near(got, vec.Vec2{X: 40, Y: 40}) {
		t.Errorf("expected (40, 40), got %v", got)
	}
	if got := tf.Extent(vec.Vec2{X: 0.25, Y: 0.25}); !near(got, vec.Vec2{X: 0.5, Y: 0.5}) {
		t.Errorf("expected extent (0.5, 0.5), got %v", got)
	}
}

func TestIdentity(t *testing.T) {
	p := vec.Vec2{X: 3, Y: -7}
	if got := Identity.Apply(p); !near(got, p) {
		t.Errorf("identity changed point: %v", got)
	}
}

func TestCanvas(t *testing.T) {
	c := Canvas{Width: 100, Height: 50}

	if c.Side() != 50 {
		t.Errorf("expected side 50, got %f", c.Side())
	}
	if c.Empty() {
		t.Error("canvas should not be empty")
	}
	if !(Canvas{Width: 0, Height: 10}).Empty() {
		t.Error("zero-width canvas should be empty")
	}

	r := c.Rect()
	if r.URx != 100 || r.URy != 50 {
		t.Errorf("unexpected rect %v", r)
	}

	tests := []struct {
		name string
		a, b vec.Vec2
		want bool
	}{
		{"inside", vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 20, Y: 20}, true},
		{"crossing", vec.Vec2{X: -10, Y: 25}, vec.Vec2{X: 110, Y: 25}, true},
		{"left of canvas", vec.Vec2{X: -10, Y: 0}, vec.Vec2{X: -1, Y: 10}, false},
		{"below canvas", vec.Vec2{X: 10, Y: 60}, vec.Vec2{X: 20, Y: 70}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Intersects(tt.a, tt.b); got != tt.want {
				t.Errorf("Intersects(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
