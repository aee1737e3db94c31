package model

import "github.com/MaddTheSane/Sketch/geom"

// DefaultFontSize is the point size of freshly created text graphics
const DefaultFontSize = 12.0

// Text is a run of text laid out inside its bounds. The fill draws a
// background behind the text; the stroke outlines the bounds.
type Text struct {
	base
	text     string
	fontSize float64
}

// NewText creates an empty text graphic with the default style
func NewText() *Text {
	return &Text{
		base:     newBase(),
		fontSize: DefaultFontSize,
	}
}

// Kind returns KindText
func (t *Text) Kind() Kind {
	return KindText
}

// Text returns the text content
func (t *Text) Text() string {
	return t.text
}

// SetText replaces the text content
func (t *Text) SetText(s string) {
	t.text = s
}

// FontSize returns the point size
func (t *Text) FontSize() float64 {
	return t.fontSize
}

// SetFontSize replaces the point size; non-positive sizes fall back
// to the default
func (t *Text) SetFontSize(size float64) {
	if size <= 0 {
		size = DefaultFontSize
	}
	t.fontSize = size
}

// HitTest reports whether p falls inside the text's bounds
func (t *Text) HitTest(p geom.Point) bool {
	return t.bounds.Contains(p)
}

// Record returns the text graphic's persisted form
func (t *Text) Record() Record {
	rec := t.record(KindText)
	rec[KeyText] = t.text
	rec[KeyFontSize] = t.fontSize
	return rec
}

// Restore replaces the text graphic's state from a record
func (t *Text) Restore(rec Record) []Warning {
	warnings := t.restore(rec)

	t.text = ""
	if s, ok := recString(rec, KeyText); ok {
		t.text = s
	}
	t.SetFontSize(recFloat(rec, KeyFontSize, DefaultFontSize))
	return warnings
}
