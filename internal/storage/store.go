package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/config"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/palette"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RenderMetadata struct {
	ID         string             `json:"id"`
	Fractal    string             `json:"fractal"`
	Timestamp  time.Time          `json:"timestamp"`
	Primitives int                `json:"primitives"`
	Config     *config.Config     `json:"config"`
	Metrics    map[string]float64 `json:"metrics"`
}

var csvHeader = []string{"kind", "ax", "ay", "bx", "by", "r", "g", "b", "width"}

// Save writes the configuration and the primitives of one frame under a
// new render ID.
func (s *Store) Save(cfg *config.Config, prims []fractal.Primitive, metrics map[string]float64) (string, error) {
	now := time.Now()
	renderID := fmt.Sprintf("%s_%d", cfg.Fractal, now.UnixNano())
	renderDir := filepath.Join(s.baseDir, renderID)

	if err := os.MkdirAll(renderDir, 0755); err != nil {
		return "", err
	}

	meta := RenderMetadata{
		ID:         renderID,
		Fractal:    cfg.Fractal,
		Timestamp:  now,
		Primitives: len(prims),
		Config:     cfg,
		Metrics:    metrics,
	}
	if err := writeJSON(filepath.Join(renderDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(renderDir, "primitives.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WritePrimitives(csvFile, prims); err != nil {
		return "", err
	}
	return renderID, csvFile.Close()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// WritePrimitives encodes prims as CSV, one row per primitive.
func WritePrimitives(w io.Writer, prims []fractal.Primitive) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	u := func(v uint8) string { return strconv.Itoa(int(v)) }
	for _, p := range prims {
		row := []string{
			p.Kind.String(),
			f(p.A.X), f(p.A.Y), f(p.B.X), f(p.B.Y),
			u(p.Color.R), u(p.Color.G), u(p.Color.B),
			f(p.Width),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns the saved renders, oldest first.
func (s *Store) List() ([]RenderMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RenderMetadata{}, nil
		}
		return nil, err
	}

	renders := make([]RenderMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		renders = append(renders, *meta)
	}
	sort.Slice(renders, func(i, j int) bool {
		if renders[i].Timestamp.Equal(renders[j].Timestamp) {
			return renders[i].ID < renders[j].ID
		}
		return renders[i].Timestamp.Before(renders[j].Timestamp)
	})
	return renders, nil
}

func (s *Store) Load(renderID string) (*RenderMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, renderID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RenderMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadPrimitives(renderID string) ([]fractal.Primitive, error) {
	file, err := os.Open(filepath.Join(s.baseDir, renderID, "primitives.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadPrimitives(file)
}

// ReadPrimitives decodes CSV written by WritePrimitives. Rows that do not
// parse are skipped.
func ReadPrimitives(r io.Reader) ([]fractal.Primitive, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []fractal.Primitive{}, nil
	}

	prims := make([]fractal.Primitive, 0, len(records)-1)
	for _, record := range records[1:] {
		p, ok := parseRow(record)
		if !ok {
			continue
		}
		prims = append(prims, p)
	}
	return prims, nil
}

func parseRow(record []string) (fractal.Primitive, bool) {
	if len(record) != len(csvHeader) {
		return fractal.Primitive{}, false
	}
	var kind fractal.Kind
	switch record[0] {
	case fractal.KindRect.String():
		kind = fractal.KindRect
	case fractal.KindLine.String():
		kind = fractal.KindLine
	default:
		return fractal.Primitive{}, false
	}

	var nums [4]float64
	for i := range nums {
		v, err := strconv.ParseFloat(record[1+i], 64)
		if err != nil {
			return fractal.Primitive{}, false
		}
		nums[i] = v
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(record[5+i], 10, 8)
		if err != nil {
			return fractal.Primitive{}, false
		}
		rgb[i] = uint8(v)
	}
	width, err := strconv.ParseFloat(record[8], 64)
	if err != nil {
		return fractal.Primitive{}, false
	}

	return fractal.Primitive{
		Kind:  kind,
		A:     vec.Vec2{X: nums[0], Y: nums[1]},
		B:     vec.Vec2{X: nums[2], Y: nums[3]},
		Color: palette.Color{R: rgb[0], G: rgb[1], B: rgb[2]},
		Width: width,
	}, true
}

// Delete removes a saved render.
func (s *Store) Delete(renderID string) error {
	dir := filepath.Join(s.baseDir, renderID)
	if _, err := os.Stat(filepath.Join(dir, "metadata.json")); err != nil {
		return err
	}
	return os.RemoveAll(dir)
}
