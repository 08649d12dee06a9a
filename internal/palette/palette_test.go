package palette

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestHSV_Sectors(t *testing.T) {
	tests := []struct {
		name     string
		h        float64
		expected Color
	}{
		{"red", 0, Color{255, 0, 0}},
		{"yellow", 60, Color{255, 255, 0}},
		{"green", 120, Color{0, 255, 0}},
		{"cyan", 180, Color{0, 255, 255}},
		{"blue", 240, Color{0, 0, 255}},
		{"magenta", 300, Color{255, 0, 255}},
		{"wraps at 360", 360, Color{255, 0, 0}},
		{"negative hue", -120, Color{0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSV(tt.h, 1, 1); got != tt.expected {
				t.Errorf("HSV(%v, 1, 1) = %v, want %v", tt.h, got, tt.expected)
			}
		})
	}
}

func TestHSV_RoundsUp(t *testing.T) {
	// 30 degrees is halfway through sector 0, green channel is 0.5.
	got := HSV(30, 1, 1)
	if got.G != 128 {
		t.Errorf("expected green 128, got %d", got.G)
	}
}

func TestHSV_ZeroValueIsBlack(t *testing.T) {
	for h := 0.0; h < 360; h += 45 {
		if got := HSV(h, 1, 0); got != Black {
			t.Errorf("HSV(%v, 1, 0) = %v, want black", h, got)
		}
	}
}

func TestEscapeColor(t *testing.T) {
	if got := EscapeColor(80, 80); got != Black {
		t.Errorf("non-escaping point should be black, got %v", got)
	}
	if got := EscapeColor(0, 80); got != Red {
		t.Errorf("count 0 should map to hue 0, got %v", got)
	}
	if got := EscapeColor(20, 80); got != (Color{128, 255, 0}) {
		t.Errorf("count 20 of 80 should map to hue 90, got %v", got)
	}
	if got := EscapeColor(1, 0); got != Black {
		t.Errorf("zero max should be black, got %v", got)
	}
}

func TestInvert(t *testing.T) {
	c := Color{255, 10, 0}
	if got := c.Invert(); got != (Color{0, 245, 255}) {
		t.Errorf("Invert() = %v", got)
	}
	if c.Invert().Invert() != c {
		t.Error("double inversion should be identity")
	}
}

func TestScale(t *testing.T) {
	c := Color{200, 100, 50}
	if got := c.Scale(1); got != c {
		t.Errorf("Scale(1) = %v, want %v", got, c)
	}
	if got := c.Scale(0.5); got != (Color{100, 50, 25}) {
		t.Errorf("Scale(0.5) = %v", got)
	}
	if got := c.Scale(-1); got != Black {
		t.Errorf("Scale(-1) = %v, want black", got)
	}
}

func TestLevel(t *testing.T) {
	if Level(0) != Levels[0] {
		t.Error("level 0 should be the first entry")
	}
	if Level(7) != Levels[0] {
		t.Error("level 7 should wrap to the first entry")
	}
	if Level(8) != Levels[1] {
		t.Error("level 8 should wrap to the second entry")
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := Color{18, 52, 86}
	if c.Hex() != "#123456" {
		t.Errorf("expected #123456, got %s", c.Hex())
	}
	parsed, err := ParseHex(c.Hex())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != c {
		t.Errorf("expected %v, got %v", c, parsed)
	}

	if _, err := ParseHex("not-a-colour"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestBlendEndpoints(t *testing.T) {
	a, b := Red, Blue
	if got := a.Blend(b, 0); got != a {
		t.Errorf("Blend(t=0) = %v, want %v", got, a)
	}
	if got := a.Blend(b, 1); got != b {
		t.Errorf("Blend(t=1) = %v, want %v", got, b)
	}
}

func TestColorYAML(t *testing.T) {
	type doc struct {
		Fill   Color `yaml:"fill"`
		Stroke Color `yaml:"stroke"`
	}

	var d doc
	src := "fill: \"#ff8000\"\nstroke: [1, 2, 3]\n"
	if err := yaml.Unmarshal([]byte(src), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if d.Fill != (Color{255, 128, 0}) {
		t.Errorf("expected fill #ff8000, got %v", d.Fill)
	}
	if d.Stroke != (Color{1, 2, 3}) {
		t.Errorf("expected stroke 1,2,3, got %v", d.Stroke)
	}

	out, err := yaml.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back doc
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal of marshalled doc failed: %v", err)
	}
	if back != d {
		t.Errorf("expected %v, got %v", d, back)
	}
}
