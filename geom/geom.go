package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point represents a 2D point in canvas coordinates
type Point struct {
	X, Y float64
}

// Size represents a width/height pair
type Size struct {
	Width, Height float64
}

// Rect represents an axis-aligned rectangle. The canvas coordinate
// system has y growing downward, so MinY is the upper edge and MaxY
// the lower edge.
type Rect struct {
	X      float64 // Left
	Y      float64 // Upper (y grows downward)
	Width  float64
	Height float64
}

// NewRect creates a rectangle from an origin and size
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromPoints creates the smallest rectangle containing both points
func RectFromPoints(p1, p2 Point) Rect {
	return Rect{
		X:      math.Min(p1.X, p2.X),
		Y:      math.Min(p1.Y, p2.Y),
		Width:  math.Abs(p2.X - p1.X),
		Height: math.Abs(p2.Y - p1.Y),
	}
}

// Origin returns the rectangle's origin point
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's size
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// MinX returns the left edge X coordinate
func (r Rect) MinX() float64 {
	return r.X
}

// MidX returns the horizontal center X coordinate
func (r Rect) MidX() float64 {
	return r.X + r.Width/2
}

// MaxX returns the right edge X coordinate
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// MinY returns the upper edge Y coordinate
func (r Rect) MinY() float64 {
	return r.Y
}

// MidY returns the vertical center Y coordinate
func (r Rect) MidY() float64 {
	return r.Y + r.Height/2
}

// MaxY returns the lower edge Y coordinate
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{X: r.MidX(), Y: r.MidY()}
}

// Contains checks if a point is inside the rectangle
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() &&
		p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Union returns the smallest rectangle containing both rectangles
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.MinX(), other.MinX())
	y := math.Min(r.MinY(), other.MinY())
	right := math.Max(r.MaxX(), other.MaxX())
	bottom := math.Max(r.MaxY(), other.MaxY())

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Outset returns the rectangle grown by margin on all sides
func (r Rect) Outset(margin float64) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// IsEmpty checks if the rectangle has no area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Standardized returns an equal rectangle with non-negative size,
// swapping edges where the width or height is negative
func (r Rect) Standardized() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// String formats the point as "{x, y}"
func (p Point) String() string {
	return "{" + formatCoord(p.X) + ", " + formatCoord(p.Y) + "}"
}

// String formats the size as "{w, h}"
func (s Size) String() string {
	return "{" + formatCoord(s.Width) + ", " + formatCoord(s.Height) + "}"
}

// String formats the rectangle as "{{x, y}, {w, h}}"
func (r Rect) String() string {
	return "{" + r.Origin().String() + ", " + r.Size().String() + "}"
}

// ParsePoint parses the "{x, y}" form produced by [Point.String]
func ParsePoint(s string) (Point, error) {
	c, err := parseCoords(s, 2)
	if err != nil {
		return Point{}, fmt.Errorf("failed to parse point %q: %w", s, err)
	}
	return Point{X: c[0], Y: c[1]}, nil
}

// ParseSize parses the "{w, h}" form produced by [Size.String]
func ParseSize(s string) (Size, error) {
	c, err := parseCoords(s, 2)
	if err != nil {
		return Size{}, fmt.Errorf("failed to parse size %q: %w", s, err)
	}
	return Size{Width: c[0], Height: c[1]}, nil
}

// ParseRect parses the "{{x, y}, {w, h}}" form produced by [Rect.String]
func ParseRect(s string) (Rect, error) {
	c, err := parseCoords(s, 4)
	if err != nil {
		return Rect{}, fmt.Errorf("failed to parse rect %q: %w", s, err)
	}
	return Rect{X: c[0], Y: c[1], Width: c[2], Height: c[3]}, nil
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// parseCoords strips braces and whitespace, then reads exactly n
// comma-separated numbers
func parseCoords(s string, n int) ([]float64, error) {
	clean := strings.NewReplacer("{", "", "}", "", " ", "", "\t", "").Replace(s)
	parts := strings.Split(clean, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d coordinates, got %d", n, len(parts))
	}

	coords := make([]float64, n)
	for i, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		coords[i] = f
	}
	return coords, nil
}
