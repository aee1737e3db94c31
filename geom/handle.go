package geom

import (
	"fmt"
	"math"
)

// Handle identifies one of the eight resize handles of a rectangle,
// or no handle at all
type Handle int

// Handles in hit-test priority order. A point over two overlapping
// handle hit boxes resolves to the lower-numbered handle.
const (
	NoHandle Handle = iota
	UpperLeft
	UpperMiddle
	UpperRight
	MiddleLeft
	MiddleRight
	LowerLeft
	LowerMiddle
	LowerRight
)

// Handle hit boxes are squares of HandleWidth centered on the handle
// point; a hit registers within HandleHalfWidth of the center on each
// axis.
const (
	HandleWidth     = 6.0
	HandleHalfWidth = HandleWidth / 2.0
)

// AllHandles lists the eight handles in hit-test priority order
var AllHandles = [8]Handle{
	UpperLeft, UpperMiddle, UpperRight,
	MiddleLeft, MiddleRight,
	LowerLeft, LowerMiddle, LowerRight,
}

// String returns the handle's name
func (h Handle) String() string {
	switch h {
	case NoHandle:
		return "none"
	case UpperLeft:
		return "upperLeft"
	case UpperMiddle:
		return "upperMiddle"
	case UpperRight:
		return "upperRight"
	case MiddleLeft:
		return "middleLeft"
	case MiddleRight:
		return "middleRight"
	case LowerLeft:
		return "lowerLeft"
	case LowerMiddle:
		return "lowerMiddle"
	case LowerRight:
		return "lowerRight"
	default:
		return "unknown"
	}
}

// ParseHandle converts a handle name back to a [Handle]
func ParseHandle(s string) (Handle, error) {
	for h := NoHandle; h <= LowerRight; h++ {
		if h.String() == s {
			return h, nil
		}
	}
	return NoHandle, fmt.Errorf("unknown handle %q", s)
}

// FlippedHorizontally returns the handle's identity after a left-right
// flip: corner and middle handles swap sides, upper-middle and
// lower-middle are unaffected
func (h Handle) FlippedHorizontally() Handle {
	switch h {
	case UpperLeft:
		return UpperRight
	case UpperRight:
		return UpperLeft
	case MiddleLeft:
		return MiddleRight
	case MiddleRight:
		return MiddleLeft
	case LowerLeft:
		return LowerRight
	case LowerRight:
		return LowerLeft
	default:
		return h
	}
}

// FlippedVertically returns the handle's identity after a top-bottom
// flip: upper and lower handles swap rows, middle-left and
// middle-right are unaffected
func (h Handle) FlippedVertically() Handle {
	switch h {
	case UpperLeft:
		return LowerLeft
	case LowerLeft:
		return UpperLeft
	case UpperMiddle:
		return LowerMiddle
	case LowerMiddle:
		return UpperMiddle
	case UpperRight:
		return LowerRight
	case LowerRight:
		return UpperRight
	default:
		return h
	}
}

// HandlePoint returns the point at the center of a handle's hit box
func HandlePoint(r Rect, h Handle) Point {
	switch h {
	case UpperLeft:
		return Point{X: r.MinX(), Y: r.MinY()}
	case UpperMiddle:
		return Point{X: r.MidX(), Y: r.MinY()}
	case UpperRight:
		return Point{X: r.MaxX(), Y: r.MinY()}
	case MiddleLeft:
		return Point{X: r.MinX(), Y: r.MidY()}
	case MiddleRight:
		return Point{X: r.MaxX(), Y: r.MidY()}
	case LowerLeft:
		return Point{X: r.MinX(), Y: r.MaxY()}
	case LowerMiddle:
		return Point{X: r.MidX(), Y: r.MaxY()}
	case LowerRight:
		return Point{X: r.MaxX(), Y: r.MaxY()}
	default:
		return Point{}
	}
}

// HandlePoints returns the eight handle points in priority order
func HandlePoints(r Rect) [8]Point {
	var points [8]Point
	for i, h := range AllHandles {
		points[i] = HandlePoint(r, h)
	}
	return points
}

// HandleUnderPoint tests p against each handle hit box of r in
// priority order and returns the first match, or [NoHandle]
func HandleUnderPoint(r Rect, p Point) Handle {
	for _, h := range AllHandles {
		center := HandlePoint(r, h)
		if math.Abs(p.X-center.X) <= HandleHalfWidth &&
			math.Abs(p.Y-center.Y) <= HandleHalfWidth {
			return h
		}
	}
	return NoHandle
}
