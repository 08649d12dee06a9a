package fractal

import (
	"math"
	"time"

	"github.com/san-kum/fractalab/internal/geom"
)

const (
	// MaxPrimitives caps a single generation. A depth-7 carpet emits
	// 2,396,745 squares, which stays below it.
	MaxPrimitives = 1 << 22

	// MaxTreeDepth caps branching recursion independently of validation.
	MaxTreeDepth = 30
)

// Generator produces the primitives of one fractal for the current canvas.
type Generator interface {
	Name() string
	Frame(canvas geom.Canvas) []Primitive
	Err() error
	Recomputations() int
}

// RandomSource supplies uniform draws in [0,1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

var (
	_ Generator = (*Carpet)(nil)
	_ Generator = (*Word)(nil)
	_ Generator = (*Tree)(nil)
	_ Generator = (*EscapeTime)(nil)
)

// traced runs a generation and logs its size and duration.
func traced(name string, gen func() ([]Primitive, bool, error)) ([]Primitive, error) {
	start := time.Now()
	out, truncated, err := gen()
	log := Logger()
	if err != nil {
		log.Debug("generation rejected", "fractal", name, "err", err)
		return out, err
	}
	if truncated {
		log.Warn("generation truncated", "fractal", name, "primitives", len(out))
	}
	log.Debug("generated", "fractal", name, "primitives", len(out), "truncated", truncated, "elapsed", time.Since(start))
	return out, nil
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
