package model

import "github.com/MaddTheSane/Sketch/geom"

// Rectangle is the simplest graphic: its bounds, filled and stroked
type Rectangle struct {
	base
}

// NewRectangle creates an empty rectangle with the default style
func NewRectangle() *Rectangle {
	return &Rectangle{base: newBase()}
}

// Kind returns KindRectangle
func (r *Rectangle) Kind() Kind {
	return KindRectangle
}

// HitTest reports whether p falls inside the rectangle
func (r *Rectangle) HitTest(p geom.Point) bool {
	return r.bounds.Contains(p)
}

// Record returns the rectangle's persisted form
func (r *Rectangle) Record() Record {
	return r.record(KindRectangle)
}

// Restore replaces the rectangle's state from a record
func (r *Rectangle) Restore(rec Record) []Warning {
	return r.restore(rec)
}
