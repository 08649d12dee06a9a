// Package viz provides the terminal front end for the fractal generators.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the application, a canvas next to a parameter panel
//   - [Canvas]: braille canvas that doubles as a render sink
//   - Theme selection with 4 built-in colour schemes
//
// # Key Bindings
//
//	tab/1-4 - Switch fractal
//	j/k     - Select parameter
//	h/l     - Adjust parameter
//	t       - Cycle themes
//	s       - Save the frame to the render store
//	x       - Export the frame as SVG
//	r       - Reset parameters
//	?       - Toggle help
//	q       - Quit
//
// Frames are generated for a virtual canvas of the configured size and
// scaled down to the terminal, so a fractal keeps its proportions at any
// terminal size.
package viz
