package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/fractalab/internal/fractal"
)

type ExportData struct {
	RenderMetadata
	Items []ExportPrimitive `json:"items"`
}

type ExportPrimitive struct {
	Kind  string     `json:"kind"`
	A     [2]float64 `json:"a"`
	B     [2]float64 `json:"b"`
	Color string     `json:"color"`
	Width float64    `json:"width,omitempty"`
}

// ExportJSON writes the metadata and primitives of a render as one JSON
// document.
func ExportJSON(w io.Writer, meta *RenderMetadata, prims []fractal.Primitive) error {
	data := ExportData{
		RenderMetadata: *meta,
		Items:          make([]ExportPrimitive, len(prims)),
	}
	for i, p := range prims {
		data.Items[i] = ExportPrimitive{
			Kind:  p.Kind.String(),
			A:     [2]float64{p.A.X, p.A.Y},
			B:     [2]float64{p.B.X, p.B.Y},
			Color: p.Color.Hex(),
			Width: p.Width,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
