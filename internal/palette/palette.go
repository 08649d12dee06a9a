// Package palette provides the 8-bit colour type shared by the fractal
// generators and their rendering sinks, plus the HSV mapping used by the
// escape-time generator.
package palette

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is an opaque 8-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// Common colours.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
)

// Levels is the ordered palette used to shade recursion levels.
var Levels = [7]Color{
	{255, 0, 0},   // red
	{255, 127, 0}, // orange
	{255, 255, 0}, // yellow
	{0, 255, 0},   // green
	{0, 0, 255},   // blue
	{75, 0, 130},  // indigo
	{148, 0, 211}, // violet
}

// Level returns the palette entry for a recursion level, wrapping after seven.
func Level(level int) Color {
	if level < 0 {
		level = -level
	}
	return Levels[level%len(Levels)]
}

// RGB builds a colour from float channels in [0,1], rounding each channel up.
func RGB(r, g, b float64) Color {
	return Color{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v float64) uint8 {
	v = math.Ceil(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// HSV converts hue (degrees), saturation and value (both in [0,1]) to RGB
// using the six-sector piecewise formula.
func HSV(h, s, v float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	sector := math.Floor(h / 60)
	f := h/60 - sector
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	switch int(sector) % 6 {
	case 0:
		return RGB(v, t, p)
	case 1:
		return RGB(q, v, p)
	case 2:
		return RGB(p, v, t)
	case 3:
		return RGB(p, q, v)
	case 4:
		return RGB(t, p, v)
	default:
		return RGB(v, p, q)
	}
}

// EscapeColor maps an escape count to a colour: the hue is proportional to
// the count and points that reach max stay black.
func EscapeColor(count, max int) Color {
	if max <= 0 {
		return Black
	}
	value := 0.0
	if count < max {
		value = 1
	}
	return HSV(360*float64(count)/float64(max), 1, value)
}

// Invert returns the RGB complement.
func (c Color) Invert() Color {
	return Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// Scale multiplies every channel by f, clamped to [0,1].
func (c Color) Scale(f float64) Color {
	if f >= 1 {
		return c
	}
	if f <= 0 {
		return Black
	}
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
	}
}

// Blend mixes c towards other in Lab space; t=0 yields c, t=1 yields other.
func (c Color) Blend(other Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	r, g, b := c.colorful().BlendLab(other.colorful(), t).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Floats returns the channels in [0,1].
func (c Color) Floats() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

func (c Color) colorful() colorful.Color {
	r, g, b := c.Floats()
	return colorful.Color{R: r, G: g, B: b}
}

// Hex formats the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// Lipgloss returns the colour as a terminal style colour.
func (c Color) Lipgloss() lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// ParseHex parses #rrggbb (or #rgb).
func ParseHex(s string) (Color, error) {
	cc, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("palette: invalid colour %q: %w", s, err)
	}
	r, g, b := cc.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// MarshalYAML encodes the colour as a hex string.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// UnmarshalYAML accepts a hex string or an [r, g, b] sequence.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var rgb []uint8
		if err := node.Decode(&rgb); err != nil {
			return err
		}
		if len(rgb) != 3 {
			return fmt.Errorf("palette: expected 3 channels, got %d", len(rgb))
		}
		*c = Color{R: rgb[0], G: rgb[1], B: rgb[2]}
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
