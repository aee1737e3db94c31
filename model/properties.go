package model

import "github.com/MaddTheSane/Sketch/geom"

// Positional property keys, addressable individually alongside the
// record keys
const (
	PropXPosition = "xPosition"
	PropYPosition = "yPosition"
	PropWidth     = "width"
	PropHeight    = "height"
)

// ApplyProperties patches the graphic at index from a partial record
// and records one compound edit for the whole patch. Unknown keys and
// malformed values are ignored; style keys are ignored on graphics
// whose capability flags refuse them; width and height clamp at zero.
// Applying an empty or fully ignored patch records nothing.
func (d *Document) ApplyProperties(index int, props Record) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	g := d.graphics[index]

	var edits []Edit
	edits = append(edits, d.applyGeometryProps(index, g, props)...)
	edits = append(edits, d.applyStyleProps(index, g, props)...)
	edits = append(edits, d.applyTextProps(index, g, props)...)

	if len(edits) > 0 {
		d.history.record(compoundEdit{edits: edits, label: "Change Properties"})
	}
	return nil
}

func (d *Document) applyGeometryProps(index int, g Graphic, props Record) []Edit {
	var edits []Edit

	before := g.Bounds()
	bounds := before
	changed := false

	if s, ok := recString(props, KeyBounds); ok {
		if r, err := geom.ParseRect(s); err == nil {
			bounds = r.Standardized()
			changed = true
		}
	}
	if v, ok := propFloat(props, PropXPosition); ok {
		bounds.X = v
		changed = true
	}
	if v, ok := propFloat(props, PropYPosition); ok {
		bounds.Y = v
		changed = true
	}
	if v, ok := propFloat(props, PropWidth); ok {
		if v < 0 {
			v = 0
		}
		bounds.Width = v
		changed = true
	}
	if v, ok := propFloat(props, PropHeight); ok {
		if v < 0 {
			v = 0
		}
		bounds.Height = v
		changed = true
	}

	if changed && bounds != before {
		g.SetBounds(bounds)
		edits = append(edits, boundsEdit{index: index, bounds: before, label: "Change Geometry"})
	}

	// Endpoint keys override bounds arithmetic on lines.
	if l, ok := g.(*Line); ok {
		beginStr, haveBegin := recString(props, KeyBeginPoint)
		endStr, haveEnd := recString(props, KeyEndPoint)
		if haveBegin || haveEnd {
			beforeBegin := l.BeginPoint()
			beforeEnd := l.EndPoint()
			begin, end := beforeBegin, beforeEnd

			if haveBegin {
				if p, err := geom.ParsePoint(beginStr); err == nil {
					begin = p
				}
			}
			if haveEnd {
				if p, err := geom.ParsePoint(endStr); err == nil {
					end = p
				}
			}
			if begin != beforeBegin || end != beforeEnd {
				l.SetPoints(begin, end)
				edits = append(edits, pointsEdit{index: index, begin: beforeBegin, end: beforeEnd, label: "Change Endpoints"})
			}
		}
	}

	return edits
}

func (d *Document) applyStyleProps(index int, g Graphic, props Record) []Edit {
	before := g.Style()
	style := before

	if g.CanSetDrawingFill() {
		if v, ok := props[KeyDrawingFill].(bool); ok {
			style.DrawsFill = v
		}
		if s, ok := recString(props, KeyFillColor); ok {
			if c, err := ParseColor(s); err == nil {
				style.FillColor = c
			}
		}
	}
	if g.CanSetDrawingStroke() {
		if v, ok := props[KeyDrawingStroke].(bool); ok {
			style.DrawsStroke = v
		}
		if s, ok := recString(props, KeyStrokeColor); ok {
			if c, err := ParseColor(s); err == nil {
				style.StrokeColor = c
			}
		}
		if v, ok := propFloat(props, KeyStrokeWidth); ok {
			if v < 0 {
				v = 0
			}
			style.StrokeWidth = v
		}
	}

	if style == before {
		return nil
	}
	g.SetStyle(style)
	return []Edit{styleEdit{index: index, style: before, label: "Change Style"}}
}

func (d *Document) applyTextProps(index int, g Graphic, props Record) []Edit {
	t, ok := g.(*Text)
	if !ok {
		return nil
	}

	beforeText := t.Text()
	beforeSize := t.FontSize()
	changed := false

	if s, ok := recString(props, KeyText); ok && s != beforeText {
		t.SetText(s)
		changed = true
	}
	if v, ok := propFloat(props, KeyFontSize); ok && v > 0 && v != beforeSize {
		t.SetFontSize(v)
		changed = true
	}

	if !changed {
		return nil
	}
	return []Edit{textEdit{index: index, text: beforeText, fontSize: beforeSize, label: "Change Text"}}
}

// propFloat reads a numeric property, reporting presence
func propFloat(props Record, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
