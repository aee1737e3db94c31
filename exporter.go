package sketch

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/MaddTheSane/Sketch/export"
	"github.com/MaddTheSane/Sketch/geom"
	"github.com/MaddTheSane/Sketch/grid"
	"github.com/MaddTheSane/Sketch/model"
	"github.com/MaddTheSane/Sketch/render"
)

// Exporter provides a fluent interface for loading drawings and
// producing documents, raster images, and exported files from them.
// Each configuration method returns a new Exporter instance, making it
// safe for concurrent use and allowing method chaining.
type Exporter struct {
	// Source
	filename string
	doc      *model.Document

	// Lifecycle
	docLoaded bool // true if the document has been loaded or supplied

	// Configuration
	options ExportOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during loading
	warnings []Warning
}

// clone creates a shallow copy of the Exporter with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Exporter) clone() *Exporter {
	newExp := &Exporter{
		filename:  e.filename,
		doc:       e.doc,
		docLoaded: e.docLoaded,
		options:   e.options.clone(),
		err:       e.err,
		warnings:  append([]Warning(nil), e.warnings...),
	}
	return newExp
}

// ensureDocument loads the document if not already loaded.
func (e *Exporter) ensureDocument() error {
	if e.docLoaded {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	data, err := os.ReadFile(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	f := export.DetectFromMagic(data)
	if f == export.Unknown {
		f = export.Detect(e.filename)
	}

	switch f {
	case export.JSON:
		doc, warnings, err := model.ReadDocument(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}
		e.doc = doc
		e.warnings = append(e.warnings, warnings...)
		e.docLoaded = true
		return nil

	case export.SVG:
		doc, warnings, err := model.FromSVG(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to import svg: %w", err)
		}
		e.doc = doc
		e.warnings = append(e.warnings, warnings...)
		e.docLoaded = true
		return nil

	default:
		return fmt.Errorf("unsupported document format: %s", f)
	}
}

// ============================================================================
// Configuration Methods (return new Exporter instance)
// ============================================================================

// Graphics restricts output to the given graphics, identified by their
// 0-indexed front-to-back position in the document. Multiple calls are
// cumulative. The narrowed document keeps the original z-order.
//
// Example:
//
//	warnings, err := sketch.Open("drawing.sketch").Graphics(0, 2).Export("subset.svg")
func (e *Exporter) Graphics(indexes ...int) *Exporter {
	newExp := e.clone()
	newExp.options.graphics = append(newExp.options.graphics, indexes...)
	return newExp
}

// Scale sets the rasterization scale in pixels per canvas unit for
// image output. The default is 1.
//
// Example:
//
//	img, _, err := sketch.Open("drawing.sketch").Scale(2).Image()
func (e *Exporter) Scale(scale float64) *Exporter {
	newExp := e.clone()
	newExp.options.scale = scale
	return newExp
}

// WithGrid draws grid lines behind the graphics in raster output, at
// the given spacing in canvas units. Spacings of zero or less leave
// the grid hidden.
//
// Example:
//
//	img, _, err := sketch.Open("drawing.sketch").WithGrid(8).Image()
func (e *Exporter) WithGrid(spacing float64) *Exporter {
	newExp := e.clone()
	newExp.options.gridSpacing = spacing
	return newExp
}

// Select draws selection handles on the given graphics in raster
// output, identified by their 0-indexed position in the document.
// Multiple calls are cumulative.
//
// Example:
//
//	img, _, err := sketch.Open("drawing.sketch").Select(0).Image()
func (e *Exporter) Select(indexes ...int) *Exporter {
	newExp := e.clone()
	newExp.options.selection = append(newExp.options.selection, indexes...)
	return newExp
}

// GraphicCount returns the number of graphics in the document,
// ignoring any Graphics restriction.
//
// Example:
//
//	count, err := sketch.Open("drawing.sketch").GraphicCount()
func (e *Exporter) GraphicCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	if err := e.ensureDocument(); err != nil {
		return 0, err
	}

	return e.doc.GraphicCount(), nil
}

// CanvasSize returns the document's canvas size in canvas units.
//
// Example:
//
//	size, err := sketch.Open("drawing.sketch").CanvasSize()
func (e *Exporter) CanvasSize() (geom.Size, error) {
	if e.err != nil {
		return geom.Size{}, e.err
	}

	if err := e.ensureDocument(); err != nil {
		return geom.Size{}, err
	}

	return e.doc.CanvasSize(), nil
}

// ============================================================================
// Terminal Operations (load the document and produce results)
// ============================================================================

// Document loads and returns the document. When Graphics was called,
// the result is a fresh document holding deep copies of just those
// graphics; otherwise it is the loaded document itself.
//
// Returns the document, any warnings encountered during loading, and
// an error if loading failed. Warnings indicate non-fatal issues
// (e.g., a graphic of an unknown kind was dropped) where loading
// succeeded but the result may be incomplete.
//
// Example:
//
//	doc, warnings, err := sketch.Open("drawing.sketch").Document()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", sketch.FormatWarnings(warnings))
//	}
func (e *Exporter) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}

	doc, err := e.resolveDocument()
	if err != nil {
		return nil, nil, err
	}

	return doc, e.warnings, nil
}

// Image rasterizes the document and returns the pixels. The canvas is
// scaled by the configured Scale, grid lines draw behind the graphics
// when WithGrid was called, and selection handles draw on top of every
// graphic named by Select.
//
// Example:
//
//	img, warnings, err := sketch.Open("drawing.sketch").Scale(2).Image()
func (e *Exporter) Image() (*image.RGBA, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}

	doc, err := e.resolveDocument()
	if err != nil {
		return nil, nil, err
	}

	selection, err := e.resolveSelection()
	if err != nil {
		return nil, nil, err
	}

	var g *grid.Grid
	if e.options.gridSpacing > 0 {
		g = grid.New()
		g.SetSpacing(e.options.gridSpacing)
		g.SetAlwaysShown(true)
	}

	r := render.NewRenderer()
	r.Scale = e.options.scale

	img, err := r.RenderEditor(doc, g, selection...)
	if err != nil {
		return nil, e.warnings, err
	}
	return img, e.warnings, nil
}

// PNG rasterizes the document and writes it to w as a PNG image.
//
// Example:
//
//	var buf bytes.Buffer
//	warnings, err := sketch.Open("drawing.sketch").PNG(&buf)
func (e *Exporter) PNG(w io.Writer) ([]Warning, error) {
	img, warnings, err := e.Image()
	if err != nil {
		return warnings, err
	}

	if err := png.Encode(w, img); err != nil {
		return warnings, fmt.Errorf("failed to encode png: %w", err)
	}
	return warnings, nil
}

// SVG writes the document to w as an SVG drawing.
//
// Example:
//
//	var buf bytes.Buffer
//	warnings, err := sketch.Open("drawing.sketch").SVG(&buf)
func (e *Exporter) SVG(w io.Writer) ([]Warning, error) {
	if e.err != nil {
		return nil, e.err
	}

	if err := e.ensureDocument(); err != nil {
		return nil, err
	}

	doc, err := e.resolveDocument()
	if err != nil {
		return nil, err
	}

	if err := export.WriteSVG(w, doc); err != nil {
		return e.warnings, err
	}
	return e.warnings, nil
}

// JSON writes the document to w in the native JSON format.
//
// Example:
//
//	var buf bytes.Buffer
//	warnings, err := sketch.Open("drawing.svg").JSON(&buf)
func (e *Exporter) JSON(w io.Writer) ([]Warning, error) {
	if e.err != nil {
		return nil, e.err
	}

	if err := e.ensureDocument(); err != nil {
		return nil, err
	}

	doc, err := e.resolveDocument()
	if err != nil {
		return nil, err
	}

	if err := export.WriteJSON(w, doc); err != nil {
		return e.warnings, err
	}
	return e.warnings, nil
}

// Export writes the document to a file, choosing the output format
// from the filename extension: .png rasterizes at the configured
// scale, .svg writes an SVG drawing, and .json or .sketch write the
// native document format. Unrecognized extensions return an
// *export.UnsupportedFormatError.
//
// Example:
//
//	warnings, err := sketch.Open("drawing.sketch").Scale(2).Export("preview.png")
func (e *Exporter) Export(filename string) ([]Warning, error) {
	if e.err != nil {
		return nil, e.err
	}

	f := export.Detect(filename)
	if f == export.Unknown {
		return nil, &export.UnsupportedFormatError{Format: f}
	}

	out, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", filename, err)
	}

	warnings, werr := e.write(out, f)
	if cerr := out.Close(); werr == nil {
		werr = cerr
	}
	return warnings, werr
}

// write produces the requested format on w.
func (e *Exporter) write(w io.Writer, f export.Format) ([]Warning, error) {
	switch f {
	case export.PNG:
		return e.PNG(w)
	case export.SVG:
		return e.SVG(w)
	case export.JSON:
		return e.JSON(w)
	default:
		return nil, &export.UnsupportedFormatError{Format: f}
	}
}

// ============================================================================
// Internal helpers
// ============================================================================

// resolveDocument returns the loaded document, narrowed to the
// configured graphics when Graphics was called. Narrowing goes through
// records, so the result holds independent copies with the original
// IDs and an empty history.
func (e *Exporter) resolveDocument() (*model.Document, error) {
	if len(e.options.graphics) == 0 {
		return e.doc, nil
	}

	indexes, err := e.resolveIndexes(e.options.graphics)
	if err != nil {
		return nil, err
	}

	rec := e.doc.Record()
	all, _ := rec[model.KeyGraphics].([]model.Record)
	picked := make([]model.Record, len(indexes))
	for i, idx := range indexes {
		picked[i] = all[idx]
	}
	rec[model.KeyGraphics] = picked

	doc, _ := model.DocumentFromRecord(rec)
	return doc, nil
}

// resolveSelection maps the configured selection indexes to graphic
// IDs. Indexes refer to the document as loaded, before any Graphics
// narrowing.
func (e *Exporter) resolveSelection() ([]uuid.UUID, error) {
	if len(e.options.selection) == 0 {
		return nil, nil
	}

	indexes, err := e.resolveIndexes(e.options.selection)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(indexes))
	for i, idx := range indexes {
		ids[i] = e.doc.GraphicAt(idx).ID()
	}
	return ids, nil
}

// resolveIndexes validates graphic indexes against the loaded document
// and returns them deduplicated in front-to-back order.
func (e *Exporter) resolveIndexes(raw []int) ([]int, error) {
	count := e.doc.GraphicCount()

	seen := make(map[int]bool)
	var indexes []int
	for _, idx := range raw {
		if idx < 0 || idx >= count {
			return nil, fmt.Errorf("graphic %d out of range (document has %d graphics)", idx, count)
		}
		if !seen[idx] {
			seen[idx] = true
			indexes = append(indexes, idx)
		}
	}

	sort.Ints(indexes)
	return indexes, nil
}
