package fractal

import (
	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
)

// MaxWordLength bounds the substitution count. The 24th word already has
// 75025 symbols.
const MaxWordLength = 24

// FibonacciWord builds the n-th word of the substitution s(k) = s(k-1)s(k-2)
// seeded with "0" and "01". For n < 2 it returns the seed "01".
func FibonacciWord(n int) string {
	prev, cur := "0", "01"
	for i := 2; i < n; i++ {
		prev, cur = cur, cur+prev
	}
	return cur
}

// GenerateWord walks the Fibonacci word of length index n as a turtle path
// from the origin. Every symbol advances by the current direction, starting
// at (0, step); a '0' turns the pen, clockwise or counter-clockwise by the
// parity of its index.
func GenerateWord(tf geom.Transform, n int, step, width float64, c palette.Color) []Primitive {
	out, _ := generateWord(tf, n, step, width, c)
	return out
}

func generateWord(tf geom.Transform, n int, step, width float64, c palette.Color) ([]Primitive, bool) {
	word := FibonacciWord(clampInt(n, 1, MaxWordLength))
	e := newEmitter(tf, len(word))
	var pos vec.Vec2
	dir := vec.Vec2{X: 0, Y: step}
	for i := 0; i < len(word); i++ {
		next := pos.Add(dir)
		if !e.line(pos, next, c, width) {
			break
		}
		pos = next
		if word[i] == '0' {
			if i%2 == 0 {
				dir = vec.Vec2{X: dir.Y, Y: dir.X}
			} else {
				dir = vec.Vec2{X: -dir.Y, Y: -dir.X}
			}
		}
	}
	return e.out, e.truncated
}

// WordParams are the word fractal sliders.
type WordParams struct {
	Length int           `yaml:"length" json:"length"`
	Zoom   float64       `yaml:"zoom" json:"zoom"`
	Step   float64       `yaml:"step" json:"step"`
	Width  float64       `yaml:"width" json:"width"`
	Color  palette.Color `yaml:"color" json:"color"`
}

// DefaultWordParams returns the start-up word fractal settings.
func DefaultWordParams() WordParams {
	return WordParams{
		Length: 16,
		Zoom:   0.25,
		Step:   0.01,
		Width:  0.5,
		Color:  palette.Green,
	}
}

// Clamp returns p with every slider inside its range.
func (p WordParams) Clamp() WordParams {
	p.Length = clampInt(p.Length, 1, MaxWordLength)
	p.Zoom = clampFloat(p.Zoom, 0.01, 1)
	p.Step = clampFloat(p.Step, 1e-4, 1)
	p.Width = clampFloat(p.Width, 0.1, 10)
	return p
}

// Validate always succeeds once clamped.
func (p WordParams) Validate() error {
	return nil
}

type wordKey struct {
	params WordParams
	canvas geom.Canvas
}

// Word is the Fibonacci word fractal generator.
type Word struct {
	Params WordParams
	cache  Cache[wordKey]
}

// NewWord returns a word fractal generator with default parameters.
func NewWord() *Word {
	return &Word{Params: DefaultWordParams()}
}

func (g *Word) Name() string { return "word" }

// Frame returns the polyline for canvas.
func (g *Word) Frame(canvas geom.Canvas) []Primitive {
	key := wordKey{params: g.Params.Clamp(), canvas: canvas}
	return g.cache.Get(key, func(k wordKey) ([]Primitive, error) {
		return traced(g.Name(), func() ([]Primitive, bool, error) {
			p := k.params
			out, truncated := generateWord(geom.Fit(k.canvas, p.Zoom), p.Length, p.Step, p.Width, p.Color)
			return out, truncated, nil
		})
	})
}

func (g *Word) Err() error          { return g.cache.Err() }
func (g *Word) Recomputations() int { return g.cache.Recomputations() }
