package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
	"github.com/san-kum/fractalab/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells, each holding 2x4 dots and the colour
// of the last primitive that touched it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]palette.Color
}

var _ render.Sink = (*Canvas)(nil)

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]palette.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]palette.Color, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots, the unit of every drawing call.
func (c *Canvas) Dots() geom.Canvas {
	return geom.Canvas{Width: float64(c.Width * 2), Height: float64(c.Height * 4)}
}

// Set turns on the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int, col palette.Color) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	c.Grid[cy][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[cy][cx] = col
}

// Unset clears the dot at (x, y).
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Grid[y/4][x/2] &^= rune(pixelMap[y%4][x%2])
}

// plot treats black as the background colour.
func (c *Canvas) plot(x, y int, col palette.Color) {
	if col == palette.Black {
		c.Unset(x, y)
		return
	}
	c.Set(x, y, col)
}

// Lit reports whether the dot at (x, y) is on.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = palette.Black
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col palette.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillRect paints every dot whose centre lies in the rectangle, and at
// least the dot under the centre for rectangles smaller than a dot. Black
// rectangles clear their dots.
func (c *Canvas) FillRect(center, half vec.Vec2, col palette.Color) {
	x0 := int(math.Ceil(center.X - half.X - 0.5))
	x1 := int(math.Floor(center.X + half.X - 0.5))
	y0 := int(math.Ceil(center.Y - half.Y - 0.5))
	y1 := int(math.Floor(center.Y + half.Y - 0.5))
	if x1 < x0 || y1 < y0 {
		c.plot(int(math.Floor(center.X)), int(math.Floor(center.Y)), col)
		return
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.Width*2-1), min(y1, c.Height*4-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.plot(x, y, col)
		}
	}
}

// StrokeLine draws a one-dot line; braille cells cannot show stroke width.
func (c *Canvas) StrokeLine(from, to vec.Vec2, col palette.Color, _ float64) {
	c.DrawLine(
		int(math.Floor(from.X)), int(math.Floor(from.Y)),
		int(math.Floor(to.X)), int(math.Floor(to.Y)),
		col,
	)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas with every lit cell in its colour. Runs of equal
// colour share one style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for y, row := range c.Grid {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && c.Colors[y][x] == c.Colors[y][start] {
				continue
			}
			run := string(row[start:x])
			if c.Colors[y][start] == palette.Black {
				b.WriteString(run)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(c.Colors[y][start].Lipgloss()).Render(run))
			}
			start = x
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
