package model

import (
	"math"

	"github.com/MaddTheSane/Sketch/geom"
)

// Lines have only two handles, begin and end. They reuse the first
// two handle codes; the handle positions come from the endpoints, not
// from bounds corners.
const (
	LineBeginHandle = geom.UpperLeft
	LineEndHandle   = geom.UpperMiddle
)

// lineHitSlop widens line hit testing beyond the stroke itself
const lineHitSlop = 2.0

// Line is a straight segment between two endpoints. The endpoints are
// not stored literally: the line keeps its bounds, shared with all the
// bounds-based machinery, plus two orientation flags from which begin
// and end are derived. pointsRight means begin is on the left edge,
// pointsDown means begin is on the upper edge.
type Line struct {
	base
	pointsRight bool
	pointsDown  bool
}

// NewLine creates a zero-length line with the default style
func NewLine() *Line {
	l := &Line{base: newBase()}
	l.pointsRight = true
	l.pointsDown = true
	return l
}

// LineFromPoints creates a line between two endpoints
func LineFromPoints(begin, end geom.Point) *Line {
	l := NewLine()
	l.SetPoints(begin, end)
	return l
}

// Kind returns KindLine
func (l *Line) Kind() Kind {
	return KindLine
}

// CanSetDrawingFill reports false: an open path cannot fill
func (l *Line) CanSetDrawingFill() bool {
	return false
}

// SetPoints places the endpoints, recomputing bounds and orientation
func (l *Line) SetPoints(begin, end geom.Point) {
	l.bounds = geom.RectFromPoints(begin, end)
	l.pointsRight = begin.X < end.X
	l.pointsDown = begin.Y < end.Y
}

// BeginPoint derives the begin endpoint from bounds and orientation
func (l *Line) BeginPoint() geom.Point {
	p := geom.Point{X: l.bounds.MinX(), Y: l.bounds.MinY()}
	if !l.pointsRight {
		p.X = l.bounds.MaxX()
	}
	if !l.pointsDown {
		p.Y = l.bounds.MaxY()
	}
	return p
}

// EndPoint derives the end endpoint from bounds and orientation
func (l *Line) EndPoint() geom.Point {
	p := geom.Point{X: l.bounds.MaxX(), Y: l.bounds.MaxY()}
	if !l.pointsRight {
		p.X = l.bounds.MinX()
	}
	if !l.pointsDown {
		p.Y = l.bounds.MinY()
	}
	return p
}

// PointsRight reports whether begin lies left of end
func (l *Line) PointsRight() bool {
	return l.pointsRight
}

// PointsDown reports whether begin lies above end
func (l *Line) PointsDown() bool {
	return l.pointsDown
}

// HandleUnderPoint hit-tests the two endpoint handles, begin first
func (l *Line) HandleUnderPoint(p geom.Point) geom.Handle {
	if inHandleBox(l.BeginPoint(), p) {
		return LineBeginHandle
	}
	if inHandleBox(l.EndPoint(), p) {
		return LineEndHandle
	}
	return geom.NoHandle
}

func inHandleBox(center, p geom.Point) bool {
	return math.Abs(p.X-center.X) <= geom.HandleHalfWidth &&
		math.Abs(p.Y-center.Y) <= geom.HandleHalfWidth
}

// ResizeByHandle reassigns the dragged endpoint and recomputes bounds
// and orientation. There is no relabeling: with two handles the
// recomputation already resolves which side each endpoint is on.
func (l *Line) ResizeByHandle(h geom.Handle, point geom.Point) geom.Handle {
	switch h {
	case LineBeginHandle:
		l.SetPoints(point, l.EndPoint())
	case LineEndHandle:
		l.SetPoints(l.BeginPoint(), point)
	}
	return h
}

// HitTest reports whether p falls within the stroke of the segment,
// widened by a small slop. Vertical lines take their own branch so no
// slope is ever divided out of a zero run.
func (l *Line) HitTest(p geom.Point) bool {
	begin := l.BeginPoint()
	end := l.EndPoint()
	tolerance := l.style.StrokeWidth/2 + lineHitSlop

	dx := end.X - begin.X
	dy := end.Y - begin.Y

	if dx == 0 && dy == 0 {
		return math.Abs(p.X-begin.X) <= tolerance && math.Abs(p.Y-begin.Y) <= tolerance
	}

	if dx == 0 {
		return math.Abs(p.X-begin.X) <= tolerance &&
			p.Y >= l.bounds.MinY()-tolerance &&
			p.Y <= l.bounds.MaxY()+tolerance
	}

	if p.X < l.bounds.MinX()-tolerance || p.X > l.bounds.MaxX()+tolerance ||
		p.Y < l.bounds.MinY()-tolerance || p.Y > l.bounds.MaxY()+tolerance {
		return false
	}

	slope := dy / dx
	yOnLine := begin.Y + slope*(p.X-begin.X)
	distance := math.Abs(p.Y-yOnLine) / math.Sqrt(slope*slope+1)
	return distance <= tolerance
}

// Record returns the line's persisted form: endpoints stand in for
// bounds
func (l *Line) Record() Record {
	rec := l.record(KindLine)
	delete(rec, KeyBounds)
	rec[KeyBeginPoint] = l.BeginPoint().String()
	rec[KeyEndPoint] = l.EndPoint().String()
	return rec
}

// Restore replaces the line's state from a record. Endpoint strings
// are preferred; a record carrying only bounds keeps them with the
// default orientation.
func (l *Line) Restore(rec Record) []Warning {
	warnings := l.restore(rec)
	l.pointsRight = true
	l.pointsDown = true

	beginStr, haveBegin := recString(rec, KeyBeginPoint)
	endStr, haveEnd := recString(rec, KeyEndPoint)
	if !haveBegin && !haveEnd {
		return warnings
	}

	var begin, end geom.Point
	if haveBegin {
		p, err := geom.ParsePoint(beginStr)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnBadGeometry,
				Message: "unreadable begin point, using origin",
				Detail:  beginStr,
			})
		} else {
			begin = p
		}
	}
	if haveEnd {
		p, err := geom.ParsePoint(endStr)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnBadGeometry,
				Message: "unreadable end point, using origin",
				Detail:  endStr,
			})
		} else {
			end = p
		}
	}

	l.SetPoints(begin, end)
	return warnings
}
