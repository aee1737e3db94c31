// Package export writes documents out as PNG images, SVG drawings, or
// native JSON files, and detects which of those formats a file or byte
// stream holds.
package export

import (
	"fmt"
	"image/png"
	"io"

	"github.com/MaddTheSane/Sketch/model"
	"github.com/MaddTheSane/Sketch/render"
)

// WritePNG rasterizes the document at scale pixels per canvas unit and
// writes it PNG-encoded.
func WritePNG(w io.Writer, d *model.Document, scale float64) error {
	r := render.NewRenderer()
	r.Scale = scale
	img, err := r.Render(d)
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return png.Encode(w, img)
}

// WriteJSON writes the document in the native JSON format.
func WriteJSON(w io.Writer, d *model.Document) error {
	return model.WriteDocument(w, d)
}

// Write exports the document in the given format. PNG output renders
// at one pixel per canvas unit; use WritePNG directly for other
// scales. Requesting a format the exporter cannot write returns an
// UnsupportedFormatError.
func Write(w io.Writer, d *model.Document, f Format) error {
	switch f {
	case PNG:
		return WritePNG(w, d, 1)
	case SVG:
		return WriteSVG(w, d)
	case JSON:
		return WriteJSON(w, d)
	default:
		return &UnsupportedFormatError{Format: f}
	}
}
