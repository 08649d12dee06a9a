package fractal

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
)

// Branch describes a binary tree rooted at Root. Lengths are in logical
// pixels and angles in radians, measured counter-clockwise with y pointing
// down the screen.
type Branch struct {
	RootLength  float64
	Root        vec.Vec2
	RootAngle   float64
	BranchAngle float64
	Scaling     float64
	MinLength   float64
	Color       palette.Color
	Width       float64

	// WidthDecay and LuminanceDecay are applied once per level. A zero
	// value disables the decay.
	WidthDecay     float64
	LuminanceDecay float64
}

// Validate rejects branches whose recursion would not terminate.
func (b Branch) Validate() error {
	switch {
	case !(b.Scaling > 0 && b.Scaling < 1):
		return configError("tree", "scaling", b.Scaling, "must be in (0,1)")
	case !(b.MinLength > 0):
		return configError("tree", "min_length", b.MinLength, "must be positive")
	case !(b.RootLength > 0):
		return configError("tree", "root_length", b.RootLength, "must be positive")
	}
	return nil
}

type node struct {
	at     vec.Vec2
	angle  float64
	length float64
	depth  int
}

// GenerateTree emits two segments per node, right branch first, and
// descends while the branch is longer than MinLength. Terminal segments use
// the inverted colour. An invalid branch yields no primitives and a
// *ConfigError.
func GenerateTree(tf geom.Transform, b Branch) ([]Primitive, error) {
	out, _, err := generateTree(tf, b)
	return out, err
}

func generateTree(tf geom.Transform, b Branch) ([]Primitive, bool, error) {
	if err := b.Validate(); err != nil {
		return []Primitive{}, false, err
	}
	widthDecay, lumDecay := b.WidthDecay, b.LuminanceDecay
	if widthDecay <= 0 {
		widthDecay = 1
	}
	if lumDecay <= 0 {
		lumDecay = 1
	}

	e := newEmitter(tf, treeCapacity(b))
	stack := []node{{at: b.Root, angle: b.RootAngle, length: b.RootLength}}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		right := project(n.at, n.angle-b.BranchAngle, n.length)
		left := project(n.at, n.angle+b.BranchAngle, n.length)

		c := b.Color.Scale(math.Pow(lumDecay, float64(n.depth)))
		terminal := n.length <= b.MinLength
		if terminal {
			c = c.Invert()
		}
		w := b.Width * math.Pow(widthDecay, float64(n.depth))
		if !e.line(n.at, right, c, w) || !e.line(n.at, left, c, w) {
			break
		}
		if terminal {
			continue
		}
		if n.depth+1 >= MaxTreeDepth {
			e.truncated = true
			continue
		}
		l := n.length * b.Scaling
		stack = append(stack,
			node{at: left, angle: n.angle + b.BranchAngle, length: l, depth: n.depth + 1},
			node{at: right, angle: n.angle - b.BranchAngle, length: l, depth: n.depth + 1},
		)
	}
	return e.out, e.truncated, nil
}

// project moves length along angle from p, with y growing downwards.
func project(p vec.Vec2, angle, length float64) vec.Vec2 {
	return vec.Vec2{X: p.X + math.Cos(angle)*length, Y: p.Y - math.Sin(angle)*length}
}

// treeCapacity estimates the number of segments so the output slice is
// allocated once.
func treeCapacity(b Branch) int {
	depth := math.Log(b.MinLength/b.RootLength)/math.Log(b.Scaling) + 2
	if math.IsNaN(depth) || depth < 1 {
		depth = 1
	}
	if depth > 14 {
		depth = 14
	}
	return 2 * (1<<int(depth) - 1)
}

// Tree variants.
const (
	VariantTree  = "tree"
	VariantHTree = "htree"
)

// TreeParams are the tree sliders. MinLength is derived from Detail.
type TreeParams struct {
	Variant        string        `yaml:"variant" json:"variant"`
	Detail         int           `yaml:"detail" json:"detail"`
	BranchAngle    float64       `yaml:"branch_angle" json:"branch_angle"`
	Scaling        float64       `yaml:"scaling" json:"scaling"`
	RootLength     float64       `yaml:"root_length" json:"root_length"`
	Color          palette.Color `yaml:"color" json:"color"`
	Zoom           float64       `yaml:"zoom" json:"zoom"`
	Width          float64       `yaml:"width" json:"width"`
	WidthDecay     float64       `yaml:"width_decay" json:"width_decay"`
	LuminanceDecay float64       `yaml:"luminance_decay" json:"luminance_decay"`
}

// DefaultTreeParams returns the start-up binary tree settings.
func DefaultTreeParams() TreeParams {
	return TreeParams{
		Variant:        VariantTree,
		Detail:         1,
		BranchAngle:    0.26,
		Scaling:        0.87,
		RootLength:     100,
		Color:          palette.Red,
		Zoom:           1,
		Width:          0.5,
		WidthDecay:     1,
		LuminanceDecay: 1,
	}
}

// DefaultHTreeParams returns the start-up H-tree settings.
func DefaultHTreeParams() TreeParams {
	p := DefaultTreeParams()
	p.Variant = VariantHTree
	p.BranchAngle = math.Pi / 2
	p.Scaling = 1 / math.Sqrt2
	p.RootLength = 160
	return p
}

// Clamp returns p with every slider inside its range. Scaling is left for
// Validate.
func (p TreeParams) Clamp() TreeParams {
	if p.Variant != VariantHTree {
		p.Variant = VariantTree
	}
	p.Detail = clampInt(p.Detail, 1, 3)
	p.BranchAngle = clampFloat(p.BranchAngle, 0.01, math.Pi/2)
	p.Zoom = clampFloat(p.Zoom, 0.05, 4)
	p.Width = clampFloat(p.Width, 0.1, 10)
	p.WidthDecay = clampFloat(p.WidthDecay, 0.1, 1)
	p.LuminanceDecay = clampFloat(p.LuminanceDecay, 0.1, 1)
	return p
}

// MinLength is the terminal branch length for the detail level.
func (p TreeParams) MinLength() float64 {
	return float64(20 * (4 - p.Detail))
}

// Validate reports parameters that would not terminate.
func (p TreeParams) Validate() error {
	return p.Branch(geom.DefaultCanvas).Validate()
}

// Branch lays the tree out for canvas. The binary tree grows upwards from
// a sixth of the canvas height below the centre; the H-tree starts at the
// centre with a horizontal bar.
func (p TreeParams) Branch(canvas geom.Canvas) Branch {
	b := Branch{
		RootLength:     p.RootLength,
		RootAngle:      math.Pi / 2,
		BranchAngle:    p.BranchAngle,
		Scaling:        p.Scaling,
		MinLength:      p.MinLength(),
		Color:          p.Color,
		Width:          p.Width,
		WidthDecay:     p.WidthDecay,
		LuminanceDecay: p.LuminanceDecay,
	}
	switch p.Variant {
	case VariantHTree:
		b.BranchAngle = math.Pi / 2
		b.Scaling = 1 / math.Sqrt2
	default:
		if p.Zoom > 0 {
			b.Root = vec.Vec2{X: 0, Y: canvas.Height / (6 * p.Zoom)}
		}
	}
	return b
}

type treeKey struct {
	params TreeParams
	canvas geom.Canvas
}

// Tree is the binary tree and H-tree generator.
type Tree struct {
	Params TreeParams
	cache  Cache[treeKey]
}

// NewTree returns a binary tree generator with default parameters.
func NewTree() *Tree {
	return &Tree{Params: DefaultTreeParams()}
}

func (g *Tree) Name() string { return "tree" }

// Frame returns the tree for canvas. Invalid parameters yield an empty
// frame and Err reports why.
func (g *Tree) Frame(canvas geom.Canvas) []Primitive {
	key := treeKey{params: g.Params.Clamp(), canvas: canvas}
	return g.cache.Get(key, func(k treeKey) ([]Primitive, error) {
		return traced(g.Name(), func() ([]Primitive, bool, error) {
			tf := geom.Centered(k.canvas, k.params.Zoom)
			return generateTree(tf, k.params.Branch(k.canvas))
		})
	})
}

func (g *Tree) Err() error          { return g.cache.Err() }
func (g *Tree) Recomputations() int { return g.cache.Recomputations() }
