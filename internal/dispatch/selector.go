// Package dispatch routes frame requests to the active fractal generator.
package dispatch

import (
	"fmt"
	"strings"

	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
)

// Kind names a fractal generator.
type Kind string

const (
	Carpet Kind = "carpet"
	Word   Kind = "word"
	Tree   Kind = "tree"
	Escape Kind = "escape"
)

var kinds = []Kind{Carpet, Word, Tree, Escape}

var aliases = map[string]Kind{
	"sierpinski": Carpet,
	"fibonacci":  Word,
	"htree":      Tree,
	"mandelbrot": Escape,
}

// Kinds lists every fractal in menu order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind resolves a fractal name or alias, ignoring case.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range kinds {
		if string(k) == name {
			return k, nil
		}
	}
	if k, ok := aliases[name]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", fractal.ErrUnknownKind, s)
}

// Selector holds one generator of each kind and forwards frames to the
// active one. Each generator keeps its own cache, so switching back and
// forth does not regenerate unchanged fractals.
type Selector struct {
	carpet *fractal.Carpet
	word   *fractal.Word
	tree   *fractal.Tree
	escape *fractal.EscapeTime

	generators map[Kind]fractal.Generator
	active     Kind
}

// New returns a selector with default parameters and the carpet active.
func New() *Selector {
	s := &Selector{
		carpet: fractal.NewCarpet(),
		word:   fractal.NewWord(),
		tree:   fractal.NewTree(),
		escape: fractal.NewEscapeTime(),
		active: Carpet,
	}
	s.generators = map[Kind]fractal.Generator{
		Carpet: s.carpet,
		Word:   s.word,
		Tree:   s.tree,
		Escape: s.escape,
	}
	return s
}

// Select makes k the active fractal.
func (s *Selector) Select(k Kind) error {
	if _, ok := s.generators[k]; !ok {
		return fmt.Errorf("%w: %q", fractal.ErrUnknownKind, string(k))
	}
	s.active = k
	return nil
}

// Next cycles to the following fractal.
func (s *Selector) Next() Kind {
	for i, k := range kinds {
		if k == s.active {
			s.active = kinds[(i+1)%len(kinds)]
			break
		}
	}
	return s.active
}

func (s *Selector) Active() Kind { return s.active }

// Generator returns the active generator.
func (s *Selector) Generator() fractal.Generator {
	return s.generators[s.active]
}

// Lookup returns the generator for k.
func (s *Selector) Lookup(k Kind) (fractal.Generator, bool) {
	g, ok := s.generators[k]
	return g, ok
}

// Frame returns the active fractal's primitives for canvas.
func (s *Selector) Frame(canvas geom.Canvas) []fractal.Primitive {
	return s.Generator().Frame(canvas)
}

// Err reports the active generator's configuration error, if any.
func (s *Selector) Err() error {
	return s.Generator().Err()
}

func (s *Selector) Carpet() *fractal.Carpet     { return s.carpet }
func (s *Selector) Word() *fractal.Word         { return s.word }
func (s *Selector) Tree() *fractal.Tree         { return s.tree }
func (s *Selector) Escape() *fractal.EscapeTime { return s.escape }
