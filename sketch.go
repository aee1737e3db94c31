// Package sketch provides a 2-D drawing document model: graphics with
// bounds and styles, undoable editing, hit testing, grid snapping, and
// PNG, SVG, and JSON output.
//
// Basic usage:
//
//	doc, warnings, err := sketch.Open("drawing.sketch").Document()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", sketch.FormatWarnings(warnings))
//	}
//
// With options:
//
//	warnings, err := sketch.Open("drawing.sketch").
//	    Scale(2).
//	    WithGrid(8).
//	    Export("preview.png")
//
// For direct document manipulation, the lower-level model package is
// also available.
package sketch

import (
	"fmt"
	"os"

	"github.com/MaddTheSane/Sketch/geom"
	"github.com/MaddTheSane/Sketch/model"
)

// Warning is a non-fatal problem reported while loading or repairing a
// document. It aliases model.Warning, so warnings returned here and by
// the model package interoperate directly.
type Warning = model.Warning

// FormatWarnings formats a list of warnings as a multi-line string
// suitable for logging.
func FormatWarnings(warnings []Warning) string {
	return model.FormatWarnings(warnings)
}

// New creates an empty document with the default canvas size.
//
// Example:
//
//	doc := sketch.New()
//	doc.AddGraphic(model.NewRectangle())
func New() *model.Document {
	return model.NewDocument()
}

// NewWithSize creates an empty document with the given canvas size in
// canvas units.
//
// Example:
//
//	doc := sketch.NewWithSize(400, 300)
func NewWithSize(width, height float64) *model.Document {
	return model.NewDocumentWithSize(geom.Size{Width: width, Height: height})
}

// Open prepares to load a drawing from a file and returns an Exporter
// for fluent configuration. Both the native JSON document format and
// SVG drawings can be opened; the format is detected from the file
// content, falling back to the extension. Loading is deferred until a
// terminal operation like Document or Export runs.
//
// Example:
//
//	doc, warnings, err := sketch.Open("drawing.sketch").Document()
func Open(filename string) *Exporter {
	return &Exporter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates an Exporter for a document that is already in
// memory. The document is not copied; edits made through doc are
// visible to later terminal operations.
//
// Example:
//
//	doc := sketch.NewWithSize(200, 150)
//	doc.AddGraphic(model.NewRectangle())
//	warnings, err := sketch.FromDocument(doc).Export("out.svg")
func FromDocument(doc *model.Document) *Exporter {
	e := &Exporter{
		doc:       doc,
		docLoaded: doc != nil,
		options:   defaultOptions(),
	}
	if doc == nil {
		e.err = fmt.Errorf("no document provided")
	}
	return e
}

// Save writes the document to a file in the native JSON format. Use
// Exporter.Export to write PNG or SVG instead.
//
// Example:
//
//	if err := sketch.Save("drawing.sketch", doc); err != nil {
//	    // handle error
//	}
func Save(filename string, doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("no document to save")
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	werr := model.WriteDocument(f, doc)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	return werr
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := sketch.Must(sketch.Open("drawing.sketch").GraphicCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDocument is a helper that wraps a call returning a value with
// warnings, such as Document() or Image(), and panics if the error is
// non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	doc := sketch.MustDocument(sketch.Open("drawing.sketch").Document())
func MustDocument[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
