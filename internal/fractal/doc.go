// Package fractal is the generation engine: it turns a parameter set into
// an ordered list of drawing primitives for one of four self-similar
// figures.
//
//   - [Carpet]: recursive 3×3 box subdivision (Sierpinski carpet)
//   - [Word]: Fibonacci-word substitution walked as a turtle path
//   - [Tree]: recursive binary branching tree and H-tree
//   - [EscapeTime]: escape-time iteration of z² + c (Mandelbrot set)
//
// Each generator owns its parameters and a [Cache]. A call to Frame
// compares the current parameters and canvas with the cached snapshot and
// regenerates the whole primitive list only when they differ.
//
// # Example
//
//	c := fractal.NewCarpet()
//	c.Params.Depth = 4
//	prims := c.Frame(geom.Canvas{Width: 800, Height: 600})
//	render.Draw(sink, prims, canvas)
//
// # Bounds
//
// Recursion depth, word length, grid resolution and iteration counts are
// clamped before generation. [MaxPrimitives] and [MaxTreeDepth] stop a
// generation early if floating-point drift escapes those clamps; the partial
// result is returned without an error.
//
// # Thread Safety
//
// Generators are NOT thread-safe. They are meant to be driven from a single
// update loop.
package fractal
