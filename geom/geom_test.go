package geom

import (
	"testing"
)

// ============================================================================
// Rect Tests
// ============================================================================

func TestRectFromPoints(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		want   Rect
	}{
		{"normal", Point{10, 20}, Point{50, 70}, Rect{10, 20, 40, 50}},
		{"reversed", Point{50, 70}, Point{10, 20}, Rect{10, 20, 40, 50}},
		{"crossed", Point{50, 20}, Point{10, 70}, Rect{10, 20, 40, 50}},
		{"same point", Point{10, 10}, Point{10, 10}, Rect{10, 10, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RectFromPoints(tt.p1, tt.p2)
			if got != tt.want {
				t.Errorf("RectFromPoints() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 100, 50)

	if r.MinX() != 10 {
		t.Errorf("MinX() = %v, want 10", r.MinX())
	}
	if r.MaxX() != 110 {
		t.Errorf("MaxX() = %v, want 110", r.MaxX())
	}
	if r.MidX() != 60 {
		t.Errorf("MidX() = %v, want 60", r.MidX())
	}
	if r.MinY() != 20 {
		t.Errorf("MinY() = %v, want 20", r.MinY())
	}
	if r.MaxY() != 70 {
		t.Errorf("MaxY() = %v, want 70", r.MaxY())
	}
	if r.MidY() != 45 {
		t.Errorf("MidY() = %v, want 45", r.MidY())
	}
	if got := (Point{60, 45}); r.Center() != got {
		t.Errorf("Center() = %+v, want %+v", r.Center(), got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 100, 50)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{50, 25}, true},
		{"corner", Point{0, 0}, true},
		{"edge", Point{100, 25}, true},
		{"outside right", Point{101, 25}, false},
		{"outside below", Point{50, 51}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 5, 10, 10)

	want := NewRect(0, 0, 30, 15)
	if got := a.Union(b); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestRectOutset(t *testing.T) {
	r := NewRect(10, 10, 20, 20)

	want := NewRect(7, 7, 26, 26)
	if got := r.Outset(3); got != want {
		t.Errorf("Outset(3) = %+v, want %+v", got, want)
	}
}

func TestRectStandardized(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want Rect
	}{
		{"already standard", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}},
		{"negative width", Rect{10, 0, -10, 10}, Rect{0, 0, 10, 10}},
		{"negative height", Rect{0, 10, 10, -10}, Rect{0, 0, 10, 10}},
		{"both negative", Rect{10, 10, -10, -10}, Rect{0, 0, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Standardized(); got != tt.want {
				t.Errorf("Standardized() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ============================================================================
// String Codec Tests
// ============================================================================

func TestRectStringRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
	}{
		{"integers", Rect{0, 0, 100, 50}},
		{"fractions", Rect{1.5, -2.25, 10.125, 0.5}},
		{"zero size", Rect{5, 5, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.r.String()
			got, err := ParseRect(s)
			if err != nil {
				t.Fatalf("ParseRect(%q) error: %v", s, err)
			}
			if got != tt.r {
				t.Errorf("ParseRect(%q) = %+v, want %+v", s, got, tt.r)
			}
		})
	}
}

func TestRectStringFormat(t *testing.T) {
	r := Rect{0, 0, 100, 50}
	want := "{{0, 0}, {100, 50}}"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Point
		wantErr bool
	}{
		{"plain", "{14, 26}", Point{14, 26}, false},
		{"no spaces", "{14,26}", Point{14, 26}, false},
		{"negative", "{-3.5, 2}", Point{-3.5, 2}, false},
		{"garbage", "{a, b}", Point{}, true},
		{"too few", "{1}", Point{}, true},
		{"too many", "{1, 2, 3}", Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePoint(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePoint(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePoint(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	got, err := ParseSize("{210, 297}")
	if err != nil {
		t.Fatalf("ParseSize() error: %v", err)
	}
	if want := (Size{210, 297}); got != want {
		t.Errorf("ParseSize() = %+v, want %+v", got, want)
	}
}
