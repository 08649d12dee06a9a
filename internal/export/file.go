package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/palette"
)

// ErrFormat reports an output path whose extension is not supported.
var ErrFormat = errors.New("export: unsupported format")

// WriteFile renders prims to path, choosing SVG or PNG by extension.
func WriteFile(path string, prims []fractal.Primitive, canvas geom.Canvas, bg palette.Color) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".svg" && ext != ".png" {
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}
	if canvas.Empty() {
		return fmt.Errorf("export: empty canvas %gx%g", canvas.Width, canvas.Height)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch ext {
	case ".svg":
		_, err = f.WriteString(FrameToSVG(prims, canvas, bg))
	case ".png":
		err = FrameToPNG(f, prims, canvas, bg)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
