package dispatch

import (
	"math"
	"strconv"

	"github.com/san-kum/fractalab/internal/fractal"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	ParamInt   ParamType = "int"
	ParamFloat ParamType = "float"
	ParamBool  ParamType = "bool"
)

// Param is one tunable slider or toggle of a generator. Get and Set read and
// write the generator's live parameters; the generator notices the change on
// its next frame.
type Param struct {
	Key   string
	Label string
	Type  ParamType
	Min   float64
	Max   float64
	Step  float64

	get func() float64
	set func(float64)
}

// Value returns the current setting. Toggles read as 0 or 1.
func (p Param) Value() float64 { return p.get() }

// Set stores v clamped to the parameter range.
func (p Param) Set(v float64) {
	if math.IsNaN(v) {
		return
	}
	v = math.Max(p.Min, math.Min(p.Max, v))
	if p.Type != ParamFloat {
		v = math.Round(v)
	}
	p.set(v)
}

// Nudge moves the value by dir steps. Toggles flip.
func (p Param) Nudge(dir int) {
	if p.Type == ParamBool {
		p.Set(1 - p.Value())
		return
	}
	p.Set(p.Value() + float64(dir)*p.Step)
}

// Format renders the value for display.
func (p Param) Format() string {
	v := p.Value()
	switch p.Type {
	case ParamBool:
		if v != 0 {
			return "on"
		}
		return "off"
	case ParamInt:
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func boolParam(key, label string, ptr *bool) Param {
	return Param{
		Key: key, Label: label, Type: ParamBool, Max: 1, Step: 1,
		get: func() float64 {
			if *ptr {
				return 1
			}
			return 0
		},
		set: func(v float64) { *ptr = v != 0 },
	}
}

func intParam(key, label string, ptr *int, lo, hi, step int) Param {
	return Param{
		Key: key, Label: label, Type: ParamInt, Min: float64(lo), Max: float64(hi), Step: float64(step),
		get: func() float64 { return float64(*ptr) },
		set: func(v float64) { *ptr = int(v) },
	}
}

func floatParam(key, label string, ptr *float64, lo, hi, step float64) Param {
	return Param{
		Key: key, Label: label, Type: ParamFloat, Min: lo, Max: hi, Step: step,
		get: func() float64 { return *ptr },
		set: func(v float64) { *ptr = v },
	}
}

func channelParam(key, label string, ptr *uint8) Param {
	return Param{
		Key: key, Label: label, Type: ParamInt, Max: 255, Step: 15,
		get: func() float64 { return float64(*ptr) },
		set: func(v float64) { *ptr = uint8(v) },
	}
}

// Params lists the tunables of the active fractal.
func (s *Selector) Params() []Param {
	return s.ParamsFor(s.active)
}

// ParamsFor lists the tunables of fractal k.
func (s *Selector) ParamsFor(k Kind) []Param {
	switch k {
	case Carpet:
		p := &s.carpet.Params
		return []Param{
			intParam("depth", "Depth", &p.Depth, 1, fractal.MaxCarpetDepth, 1),
			floatParam("zoom", "Zoom", &p.Zoom, 0.05, 1, 0.05),
			boolParam("shaded", "Shade levels", &p.Shaded),
			boolParam("random", "Randomness", &p.Random),
			floatParam("probability", "Probability", &p.Probability, 0, 1, 0.05),
			channelParam("r", "Red", &p.Color.R),
			channelParam("g", "Green", &p.Color.G),
			channelParam("b", "Blue", &p.Color.B),
		}
	case Word:
		p := &s.word.Params
		return []Param{
			intParam("length", "Word length", &p.Length, 1, fractal.MaxWordLength, 1),
			floatParam("zoom", "Zoom", &p.Zoom, 0.01, 1, 0.01),
			floatParam("width", "Line width", &p.Width, 0.1, 10, 0.1),
		}
	case Tree:
		p := &s.tree.Params
		return []Param{
			intParam("detail", "Detail", &p.Detail, 1, 3, 1),
			floatParam("branch_angle", "Branch angle", &p.BranchAngle, 0.01, math.Pi/2, 0.01),
			floatParam("zoom", "Zoom", &p.Zoom, 0.05, 4, 0.05),
			floatParam("width_decay", "Width decay", &p.WidthDecay, 0.1, 1, 0.05),
			floatParam("luminance_decay", "Luminance decay", &p.LuminanceDecay, 0.1, 1, 0.05),
			variantParam(p),
			channelParam("r", "Red", &p.Color.R),
			channelParam("g", "Green", &p.Color.G),
			channelParam("b", "Blue", &p.Color.B),
		}
	case Escape:
		p := &s.escape.Params
		return []Param{
			floatParam("zoom", "Zoom", &p.Zoom, 1e-7, 1, 0.01),
			intParam("resolution", "Resolution", &p.Resolution, 100, 750, 25),
			intParam("max_iterations", "Iterations", &p.MaxIterations, 25, 255, 5),
		}
	}
	return nil
}

// variantParam toggles between the binary tree and the H-tree, loading the
// variant's default geometry.
func variantParam(p *fractal.TreeParams) Param {
	return Param{
		Key: "htree", Label: "H-tree", Type: ParamBool, Max: 1, Step: 1,
		get: func() float64 {
			if p.Variant == fractal.VariantHTree {
				return 1
			}
			return 0
		},
		set: func(v float64) {
			def := fractal.DefaultTreeParams()
			if v != 0 {
				def = fractal.DefaultHTreeParams()
			}
			p.Variant = def.Variant
			p.BranchAngle = def.BranchAngle
			p.Scaling = def.Scaling
			p.RootLength = def.RootLength
		},
	}
}

// Param finds a parameter of fractal k by key.
func (s *Selector) Param(k Kind, key string) (Param, bool) {
	for _, p := range s.ParamsFor(k) {
		if p.Key == key {
			return p, true
		}
	}
	return Param{}, false
}
