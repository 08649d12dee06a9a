package metrics

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
)

// Growth evaluates count at every level in [from, to].
func Growth(from, to int, count func(level int) int) []float64 {
	if to < from {
		return nil
	}
	out := make([]float64, 0, to-from+1)
	for level := from; level <= to; level++ {
		out = append(out, float64(count(level)))
	}
	return out
}

// CarpetGrowth counts carpet squares per depth without randomness.
func CarpetGrowth(maxDepth int) []float64 {
	return Growth(0, maxDepth, func(level int) int {
		return len(fractal.GenerateCarpet(geom.Identity, vec.Vec2{}, 1, level, fractal.CarpetStyle{}))
	})
}

// WordGrowth counts word fractal segments per word length.
func WordGrowth(maxLength int) []float64 {
	return Growth(1, maxLength, func(n int) int {
		return len(fractal.FibonacciWord(n))
	})
}

// TreeGrowth counts tree segments per detail level.
func TreeGrowth(p fractal.TreeParams) []float64 {
	return Growth(1, 3, func(detail int) int {
		p.Detail = detail
		prims, err := fractal.GenerateTree(geom.Identity, p.Branch(geom.DefaultCanvas))
		if err != nil {
			return 0
		}
		return len(prims)
	})
}

// EscapeHistogram buckets the escape counts of the grid sampled by p into
// bins equal ranges of [1, MaxIterations]. Points that never escape land in
// the last bin.
func EscapeHistogram(p fractal.EscapeParams, bins int) []float64 {
	p = p.Clamp()
	if bins < 1 {
		bins = 1
	}
	hist := make([]float64, bins)
	region := p.Region()
	for x := 0; x < p.Resolution; x++ {
		for y := 0; y < p.Resolution; y++ {
			n := fractal.Escape(region.Sample(p.Resolution, x, y), p.Threshold, p.MaxIterations)
			b := (n - 1) * bins / p.MaxIterations
			if b >= bins {
				b = bins - 1
			}
			hist[b]++
		}
	}
	return hist
}

// Profile counts primitives by the canvas row band their centre falls in,
// top to bottom. Primitives off the canvas are ignored.
func Profile(prims []fractal.Primitive, canvas geom.Canvas, bins int) []float64 {
	if bins < 1 || canvas.Empty() {
		return nil
	}
	out := make([]float64, bins)
	for _, p := range prims {
		lo, hi := p.Bounds()
		y := (lo.Y + hi.Y) / 2
		if y < 0 || y >= canvas.Height {
			continue
		}
		out[int(y/canvas.Height*float64(bins))]++
	}
	return out
}

// Plot draws data as an ASCII chart.
func Plot(data []float64, caption string, height, width int) string {
	if len(data) == 0 {
		return fmt.Sprintf("%s: no data\n", caption)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
