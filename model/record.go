package model

import (
	"encoding/base64"
	"fmt"
	"image/color"
	"strings"

	"github.com/google/uuid"

	"github.com/MaddTheSane/Sketch/geom"
)

// Record is the persisted form of a graphic or document: a flat
// property map with JSON-compatible values. Rects, points and sizes
// appear as strings ("{{x, y}, {w, h}}"), colors as "#RRGGBBAA" hex
// strings, and binary payloads as []byte (base64 strings once they
// have passed through JSON).
type Record map[string]any

// Property keys shared by all graphic records
const (
	KeyClass         = "classIdentifier"
	KeyGraphicID     = "id"
	KeyBounds        = "bounds"
	KeyDrawingFill   = "drawingFill"
	KeyFillColor     = "fillColor"
	KeyDrawingStroke = "drawingStroke"
	KeyStrokeColor   = "strokeColor"
	KeyStrokeWidth   = "strokeWidth"
)

// Kind-specific property keys
const (
	KeyBeginPoint          = "beginPoint"
	KeyEndPoint            = "endPoint"
	KeyText                = "text"
	KeyFontSize            = "fontSize"
	KeyContents            = "contents"
	KeyFlippedHorizontally = "flippedHorizontally"
	KeyFlippedVertically   = "flippedVertically"
)

// GraphicFromRecord rebuilds one graphic from its persisted record.
// A record whose classIdentifier is missing or names no registered
// kind yields a nil graphic and a warning: the caller drops it and
// keeps going. All other problems are repaired field by field.
func GraphicFromRecord(rec Record) (Graphic, []Warning) {
	class, ok := recString(rec, KeyClass)
	if !ok {
		return nil, []Warning{{
			Code:    WarnUnknownClass,
			Message: "graphic record has no class identifier",
		}}
	}

	factory, ok := KindFactory(Kind(class))
	if !ok {
		return nil, []Warning{{
			Code:    WarnUnknownClass,
			Message: "no registered graphic kind",
			Detail:  class,
		}}
	}

	g := factory()
	warnings := g.Restore(rec)
	return g, warnings
}

// GraphicsFromRecords rebuilds a graphic list, dropping records that
// cannot identify their kind and collecting warnings along the way
func GraphicsFromRecords(recs []Record) ([]Graphic, []Warning) {
	graphics := make([]Graphic, 0, len(recs))
	var warnings []Warning

	for _, rec := range recs {
		g, w := GraphicFromRecord(rec)
		warnings = append(warnings, w...)
		if g != nil {
			graphics = append(graphics, g)
		}
	}
	return graphics, warnings
}

// record builds the shared portion of a graphic record
func (b *base) record(kind Kind) Record {
	return Record{
		KeyClass:         string(kind),
		KeyGraphicID:     b.id.String(),
		KeyBounds:        b.bounds.String(),
		KeyDrawingFill:   b.style.DrawsFill,
		KeyFillColor:     FormatColor(b.style.FillColor),
		KeyDrawingStroke: b.style.DrawsStroke,
		KeyStrokeColor:   FormatColor(b.style.StrokeColor),
		KeyStrokeWidth:   b.style.StrokeWidth,
	}
}

// restore reads the shared portion of a graphic record, repairing
// each malformed field with its default
func (b *base) restore(rec Record) []Warning {
	var warnings []Warning

	b.id = uuid.New()
	if s, ok := recString(rec, KeyGraphicID); ok {
		if id, err := uuid.Parse(s); err == nil {
			b.id = id
		}
	}

	b.bounds = geom.Rect{}
	if s, ok := recString(rec, KeyBounds); ok {
		r, err := geom.ParseRect(s)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnBadGeometry,
				Message: "unreadable bounds, using empty rect",
				Detail:  s,
			})
		} else {
			b.bounds = r.Standardized()
		}
	}

	style := DefaultStyle()
	style.DrawsFill = recBool(rec, KeyDrawingFill, style.DrawsFill)
	style.DrawsStroke = recBool(rec, KeyDrawingStroke, style.DrawsStroke)
	style.StrokeWidth = recFloat(rec, KeyStrokeWidth, style.StrokeWidth)
	if style.StrokeWidth < 0 {
		style.StrokeWidth = 0
	}

	if s, ok := recString(rec, KeyFillColor); ok {
		c, err := ParseColor(s)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnBadColor,
				Message: "unreadable fill color, using default",
				Detail:  s,
			})
		} else {
			style.FillColor = c
		}
	}
	if s, ok := recString(rec, KeyStrokeColor); ok {
		c, err := ParseColor(s)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnBadColor,
				Message: "unreadable stroke color, using default",
				Detail:  s,
			})
		} else {
			style.StrokeColor = c
		}
	}

	b.style = style
	return warnings
}

// ============================================================================
// Tolerant field readers
// ============================================================================

func recString(rec Record, key string) (string, bool) {
	s, ok := rec[key].(string)
	return s, ok
}

func recBool(rec Record, key string, def bool) bool {
	if v, ok := rec[key].(bool); ok {
		return v
	}
	return def
}

// recFloat accepts the numeric types JSON decoding and direct
// construction produce
func recFloat(rec Record, key string, def float64) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// recBytes reads a binary payload, accepting raw bytes or the base64
// string form JSON turns them into
func recBytes(rec Record, key string) ([]byte, bool) {
	switch v := rec[key].(type) {
	case []byte:
		return v, true
	case string:
		data, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, false
		}
		return data, true
	default:
		return nil, false
	}
}

// ============================================================================
// Color codec
// ============================================================================

// FormatColor formats a color as "#RRGGBBAA"
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor parses "#RRGGBB" and "#RRGGBBAA" hex colors
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var c color.NRGBA
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return color.NRGBA{}, fmt.Errorf("failed to parse color %q: %w", s, err)
		}
		c.A = 255
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return color.NRGBA{}, fmt.Errorf("failed to parse color %q: %w", s, err)
		}
	default:
		return color.NRGBA{}, fmt.Errorf("failed to parse color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	return c, nil
}
