package model

import (
	"image/color"
	"testing"

	"github.com/MaddTheSane/Sketch/geom"
)

// ============================================================================
// Shared Graphic Behavior
// ============================================================================

func TestSetBoundsNormalizes(t *testing.T) {
	tests := []struct {
		name string
		r    geom.Rect
		want geom.Rect
	}{
		{"positive", geom.NewRect(1, 2, 3, 4), geom.NewRect(1, 2, 3, 4)},
		{"negative width", geom.NewRect(10, 0, -10, 5), geom.NewRect(0, 0, 10, 5)},
		{"negative height", geom.NewRect(0, 10, 5, -10), geom.NewRect(0, 0, 5, 10)},
		{"both negative", geom.NewRect(10, 10, -10, -10), geom.NewRect(0, 0, 10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewRectangle()
			g.SetBounds(tt.r)
			if got := g.Bounds(); got != tt.want {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
			if got := g.Bounds(); got.Width < 0 || got.Height < 0 {
				t.Errorf("Bounds() = %+v has negative size", got)
			}
		})
	}
}

func TestResizeKeepsBoundsNonNegative(t *testing.T) {
	kinds := []Graphic{NewRectangle(), NewCircle(), NewText(), NewImage()}
	points := []geom.Point{{-50, -50}, {0, 0}, {500, 500}, {5, -5}}

	for _, g := range kinds {
		g.SetBounds(geom.NewRect(0, 0, 100, 50))
		for _, h := range geom.AllHandles {
			for _, p := range points {
				g.ResizeByHandle(h, p)
				if b := g.Bounds(); b.Width < 0 || b.Height < 0 {
					t.Fatalf("%s: Bounds() = %+v has negative size after dragging %v to %+v",
						g.Kind(), b, h, p)
				}
			}
		}
	}
}

func TestDrawingBounds(t *testing.T) {
	g := NewRectangle()
	g.SetBounds(geom.NewRect(10, 10, 100, 50))

	// Thin stroke: the handle overhang dominates.
	style := g.Style()
	style.DrawsStroke = true
	style.StrokeWidth = 1
	g.SetStyle(style)

	want := geom.NewRect(7, 7, 106, 56)
	if got := g.DrawingBounds(); got != want {
		t.Errorf("DrawingBounds() = %+v, want %+v", got, want)
	}

	// Fat stroke: half the stroke width dominates.
	style.StrokeWidth = 12
	g.SetStyle(style)

	want = geom.NewRect(4, 4, 112, 62)
	if got := g.DrawingBounds(); got != want {
		t.Errorf("DrawingBounds() = %+v, want %+v", got, want)
	}

	// No stroke: back to the handle overhang.
	style.DrawsStroke = false
	g.SetStyle(style)

	want = geom.NewRect(7, 7, 106, 56)
	if got := g.DrawingBounds(); got != want {
		t.Errorf("DrawingBounds() = %+v, want %+v", got, want)
	}
}

func TestHandleUnderPointOnGraphic(t *testing.T) {
	g := NewCircle()
	g.SetBounds(geom.NewRect(0, 0, 100, 50))

	if got := g.HandleUnderPoint(geom.Point{100, 50}); got != geom.LowerRight {
		t.Errorf("HandleUnderPoint() = %v, want %v", got, geom.LowerRight)
	}
	if got := g.HandleUnderPoint(geom.Point{50, 25}); got != geom.NoHandle {
		t.Errorf("HandleUnderPoint() = %v, want %v", got, geom.NoHandle)
	}
}

func TestCapabilityFlags(t *testing.T) {
	tests := []struct {
		name       string
		g          Graphic
		wantFill   bool
		wantStroke bool
	}{
		{"rectangle", NewRectangle(), true, true},
		{"circle", NewCircle(), true, true},
		{"line", NewLine(), false, true},
		{"text", NewText(), true, true},
		{"image", NewImage(), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.CanSetDrawingFill(); got != tt.wantFill {
				t.Errorf("CanSetDrawingFill() = %v, want %v", got, tt.wantFill)
			}
			if got := tt.g.CanSetDrawingStroke(); got != tt.wantStroke {
				t.Errorf("CanSetDrawingStroke() = %v, want %v", got, tt.wantStroke)
			}
		})
	}
}

// ============================================================================
// Hit Testing
// ============================================================================

func TestRectangleHitTest(t *testing.T) {
	g := NewRectangle()
	g.SetBounds(geom.NewRect(0, 0, 100, 50))

	if !g.HitTest(geom.Point{50, 25}) {
		t.Error("HitTest(center) = false, want true")
	}
	if !g.HitTest(geom.Point{0, 0}) {
		t.Error("HitTest(corner) = false, want true")
	}
	if g.HitTest(geom.Point{150, 25}) {
		t.Error("HitTest(outside) = true, want false")
	}
}

func TestCircleHitTest(t *testing.T) {
	g := NewCircle()
	g.SetBounds(geom.NewRect(0, 0, 100, 50))

	tests := []struct {
		name string
		p    geom.Point
		want bool
	}{
		{"center", geom.Point{50, 25}, true},
		{"inside ellipse", geom.Point{70, 30}, true},
		{"bounds corner outside ellipse", geom.Point{2, 2}, false},
		{"edge point", geom.Point{100, 25}, true},
		{"outside", geom.Point{200, 25}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.HitTest(tt.p); got != tt.want {
				t.Errorf("HitTest(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestCircleHitTestDegenerate(t *testing.T) {
	g := NewCircle()
	g.SetBounds(geom.NewRect(10, 10, 0, 50))

	if g.HitTest(geom.Point{10, 30}) {
		t.Error("HitTest() on zero-width circle = true, want false")
	}
}

// ============================================================================
// Image Flips
// ============================================================================

func TestImageFlipTogglesOnCrossingDrag(t *testing.T) {
	img := NewImage()
	img.SetBounds(geom.NewRect(0, 0, 100, 50))

	// Drag the right edge past the left edge.
	h := img.ResizeByHandle(geom.MiddleRight, geom.Point{-30, 25})
	if h != geom.MiddleLeft {
		t.Errorf("ResizeByHandle() handle = %v, want %v", h, geom.MiddleLeft)
	}
	if !img.FlippedHorizontally() {
		t.Error("FlippedHorizontally() = false after crossing drag, want true")
	}
	if img.FlippedVertically() {
		t.Error("FlippedVertically() = true after horizontal drag, want false")
	}

	// Crossing back toggles the mirror off again.
	h = img.ResizeByHandle(h, geom.Point{60, 25})
	if h != geom.MiddleRight {
		t.Errorf("ResizeByHandle() handle = %v, want %v", h, geom.MiddleRight)
	}
	if img.FlippedHorizontally() {
		t.Error("FlippedHorizontally() = true after flipping back, want false")
	}
}

func TestImageFlipIgnoresNonCrossingDrag(t *testing.T) {
	img := NewImage()
	img.SetBounds(geom.NewRect(0, 0, 100, 50))

	img.ResizeByHandle(geom.LowerRight, geom.Point{40, 20})
	if img.FlippedHorizontally() || img.FlippedVertically() {
		t.Error("flip flags set by a non-crossing drag")
	}

	// Collapsing to exactly zero is not a flip.
	img.ResizeByHandle(geom.MiddleRight, geom.Point{0, 25})
	if img.FlippedHorizontally() {
		t.Error("FlippedHorizontally() = true after collapsing to zero width")
	}
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()

	if s.DrawsFill {
		t.Error("DefaultStyle().DrawsFill = true, want false")
	}
	if !s.DrawsStroke {
		t.Error("DefaultStyle().DrawsStroke = false, want true")
	}
	if s.StrokeWidth != 1 {
		t.Errorf("DefaultStyle().StrokeWidth = %v, want 1", s.StrokeWidth)
	}
	if s.StrokeColor != (color.NRGBA{A: 255}) {
		t.Errorf("DefaultStyle().StrokeColor = %+v, want opaque black", s.StrokeColor)
	}
}
