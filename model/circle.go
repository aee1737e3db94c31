package model

import "github.com/MaddTheSane/Sketch/geom"

// Circle is an ellipse inscribed in its bounds
type Circle struct {
	base
}

// NewCircle creates an empty circle with the default style
func NewCircle() *Circle {
	return &Circle{base: newBase()}
}

// Kind returns KindCircle
func (c *Circle) Kind() Kind {
	return KindCircle
}

// HitTest reports whether p falls inside the inscribed ellipse.
// Degenerate bounds (zero width or height) contain nothing.
func (c *Circle) HitTest(p geom.Point) bool {
	rx := c.bounds.Width / 2
	ry := c.bounds.Height / 2
	if rx <= 0 || ry <= 0 {
		return false
	}

	center := c.bounds.Center()
	dx := (p.X - center.X) / rx
	dy := (p.Y - center.Y) / ry
	return dx*dx+dy*dy <= 1
}

// Record returns the circle's persisted form
func (c *Circle) Record() Record {
	return c.record(KindCircle)
}

// Restore replaces the circle's state from a record
func (c *Circle) Restore(rec Record) []Warning {
	return c.restore(rec)
}
