package model

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/MaddTheSane/Sketch/geom"
)

// Kind identifies a graphic class inside persisted records and the
// factory registry
type Kind string

// The built-in graphic kinds
const (
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindLine      Kind = "line"
	KindText      Kind = "text"
	KindImage     Kind = "image"
)

// Style holds the fill and stroke settings shared by every graphic
type Style struct {
	DrawsFill   bool
	FillColor   color.NRGBA
	DrawsStroke bool
	StrokeColor color.NRGBA
	StrokeWidth float64
}

// DefaultStyle returns the style of a freshly created graphic:
// no fill, one-unit black stroke
func DefaultStyle() Style {
	return Style{
		DrawsFill:   false,
		FillColor:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		DrawsStroke: true,
		StrokeColor: color.NRGBA{A: 255},
		StrokeWidth: 1,
	}
}

// Graphic is a drawable object on a document's canvas.
//
// Every graphic has an identity, a rectangular bounds, and a style.
// Bounds returned from any graphic always have non-negative width and
// height; mutation paths normalize before storing. Graphics hold no
// reference to their owning document; a document addresses them by
// index (and by ID through lookup).
type Graphic interface {
	// ID returns the graphic's stable identity.
	ID() uuid.UUID

	// Kind returns the registry tag, the classIdentifier of records.
	Kind() Kind

	// Bounds returns the graphic's extent.
	Bounds() geom.Rect

	// SetBounds replaces the extent, normalizing negative sizes.
	SetBounds(geom.Rect)

	// DrawingBounds returns the region a renderer touches when the
	// graphic is drawn selected: the bounds grown by the larger of
	// the handle overhang and half the stroke width.
	DrawingBounds() geom.Rect

	// Style and SetStyle access the fill/stroke settings. SetStyle
	// does not consult the capability flags; callers that honor them
	// (property application, the HTTP surface) check first.
	Style() Style
	SetStyle(Style)

	// CanSetDrawingFill reports whether the kind supports filling.
	CanSetDrawingFill() bool

	// CanSetDrawingStroke reports whether the kind supports stroking.
	CanSetDrawingStroke() bool

	// HandleUnderPoint hit-tests the graphic's resize handles.
	HandleUnderPoint(geom.Point) geom.Handle

	// ResizeByHandle drags a handle to point and returns the handle's
	// identity afterwards, which differs from h when the drag crossed
	// an opposite edge.
	ResizeByHandle(h geom.Handle, point geom.Point) geom.Handle

	// HitTest reports whether point falls on the graphic's contents.
	HitTest(geom.Point) bool

	// Record returns the graphic's persisted form.
	Record() Record

	// Restore replaces the graphic's state from a persisted record,
	// ignoring unknown keys and defaulting missing or malformed ones.
	Restore(Record) []Warning
}

// Flippable is implemented by graphics that track mirror orientation
// and react to flip events from handle drags
type Flippable interface {
	// Flip toggles the horizontal and/or vertical mirror flags.
	Flip(horizontal, vertical bool)
}

// base carries the state and behavior shared by all graphic kinds
type base struct {
	id     uuid.UUID
	bounds geom.Rect
	style  Style
}

func newBase() base {
	return base{
		id:    uuid.New(),
		style: DefaultStyle(),
	}
}

// ID returns the graphic's stable identity
func (b *base) ID() uuid.UUID {
	return b.id
}

// Bounds returns the graphic's extent
func (b *base) Bounds() geom.Rect {
	return b.bounds
}

// SetBounds replaces the extent, normalizing negative sizes
func (b *base) SetBounds(r geom.Rect) {
	b.bounds = r.Standardized()
}

// DrawingBounds returns the bounds grown by the larger of the handle
// overhang and half the stroke width
func (b *base) DrawingBounds() geom.Rect {
	outset := geom.HandleHalfWidth
	if b.style.DrawsStroke {
		if strokeOutset := b.style.StrokeWidth / 2; strokeOutset > outset {
			outset = strokeOutset
		}
	}
	return b.bounds.Outset(outset)
}

// Style returns the fill/stroke settings
func (b *base) Style() Style {
	return b.style
}

// SetStyle replaces the fill/stroke settings
func (b *base) SetStyle(s Style) {
	if s.StrokeWidth < 0 {
		s.StrokeWidth = 0
	}
	b.style = s
}

// CanSetDrawingFill reports fill support; kinds that cannot fill
// shadow this
func (b *base) CanSetDrawingFill() bool {
	return true
}

// CanSetDrawingStroke reports stroke support
func (b *base) CanSetDrawingStroke() bool {
	return true
}

// HandleUnderPoint hit-tests the eight bounds handles
func (b *base) HandleUnderPoint(p geom.Point) geom.Handle {
	return geom.HandleUnderPoint(b.bounds, p)
}

// ResizeByHandle drags a handle to point. Flip events are dropped
// here; kinds that track orientation shadow this.
func (b *base) ResizeByHandle(h geom.Handle, point geom.Point) geom.Handle {
	r, newHandle, _, _ := geom.Resize(b.bounds, h, point)
	b.bounds = r
	return newHandle
}
