package model

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MaddTheSane/Sketch/geom"
)

// FormatVersion is written into every document record
const FormatVersion = 2

// Document record keys
const (
	KeyVersion    = "version"
	KeyCanvasSize = "canvasSize"
	KeyGraphics   = "graphics"
	KeyPrintInfo  = "printInfo"
)

// Record returns the document's persisted form: a version integer,
// the canvas size, the graphic records front to back, and the print
// setup blob when one is carried
func (d *Document) Record() Record {
	recs := make([]Record, len(d.graphics))
	for i, g := range d.graphics {
		recs[i] = g.Record()
	}

	rec := Record{
		KeyVersion:    FormatVersion,
		KeyCanvasSize: d.canvasSize.String(),
		KeyGraphics:   recs,
	}
	if len(d.printInfo) > 0 {
		rec[KeyPrintInfo] = d.printInfo
	}
	return rec
}

// DocumentFromRecord rebuilds a document from its persisted form.
// Decoding is best-effort: unknown keys and versions are ignored,
// malformed fields fall back to defaults, graphics that cannot
// identify their kind are dropped, and every repair or drop is
// reported as a warning. The rebuilt document starts with empty
// history.
func DocumentFromRecord(rec Record) (*Document, []Warning) {
	d := NewDocument()
	var warnings []Warning

	if s, ok := recString(rec, KeyCanvasSize); ok {
		size, err := geom.ParseSize(s)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnBadGeometry,
				Message: "unreadable canvas size, using default",
				Detail:  s,
			})
		} else if size.Width > 0 && size.Height > 0 {
			d.canvasSize = size
		}
	}

	graphicRecs, recWarnings := recordList(rec[KeyGraphics])
	warnings = append(warnings, recWarnings...)

	graphics, graphicWarnings := GraphicsFromRecords(graphicRecs)
	warnings = append(warnings, graphicWarnings...)
	d.graphics = graphics

	if blob, ok := recBytes(rec, KeyPrintInfo); ok {
		d.printInfo = blob
	}

	return d, warnings
}

// recordList normalizes the graphics entry, which arrives as []Record
// from direct construction or []any after a trip through JSON
func recordList(v any) ([]Record, []Warning) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []Record:
		return list, nil
	case []any:
		recs := make([]Record, 0, len(list))
		var warnings []Warning
		for i, item := range list {
			switch m := item.(type) {
			case Record:
				recs = append(recs, m)
			case map[string]any:
				recs = append(recs, Record(m))
			default:
				warnings = append(warnings, Warning{
					Code:    WarnBadRecord,
					Message: fmt.Sprintf("graphic entry %d is not a record, dropping it", i),
				})
			}
		}
		return recs, warnings
	default:
		return nil, []Warning{{
			Code:    WarnBadRecord,
			Message: "graphics entry is not a list, ignoring it",
		}}
	}
}

// WriteDocument writes the document's record as indented JSON
func WriteDocument(w io.Writer, d *Document) error {
	data, err := json.MarshalIndent(d.Record(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// ReadDocument rebuilds a document from JSON produced by
// WriteDocument. Malformed JSON is an error; everything recoverable
// inside the record surfaces as warnings.
func ReadDocument(r io.Reader) (*Document, []Warning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read document: %w", err)
	}

	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil, fmt.Errorf("failed to decode document: %w", err)
	}

	d, warnings := DocumentFromRecord(Record(rec))
	return d, warnings, nil
}
