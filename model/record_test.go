package model

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/MaddTheSane/Sketch/geom"
)

func tinyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// ============================================================================
// Color Codec
// ============================================================================

func TestColorCodec(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want color.NRGBA
	}{
		{"opaque red", "#FF0000FF", color.NRGBA{R: 255, A: 255}},
		{"translucent blue", "#0000FF80", color.NRGBA{B: 255, A: 128}},
		{"six digit implies opaque", "#00FF00", color.NRGBA{G: 255, A: 255}},
		{"lowercase", "#a1b2c3d4", color.NRGBA{R: 161, G: 178, B: 195, A: 212}},
		{"surrounding space", "  #102030  ", color.NRGBA{R: 16, G: 32, B: 48, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorRoundTrip(t *testing.T) {
	colors := []color.NRGBA{
		{R: 255, A: 255},
		{R: 1, G: 2, B: 3, A: 4},
		{},
		{R: 255, G: 255, B: 255, A: 255},
	}

	for _, c := range colors {
		s := FormatColor(c)
		got, err := ParseColor(s)
		if err != nil {
			t.Fatalf("ParseColor(%q) error = %v", s, err)
		}
		if got != c {
			t.Errorf("round trip of %+v through %q = %+v", c, s, got)
		}
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#", "#FFF", "#GGGGGG", "red", "#12345"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) error = nil, want error", in)
		}
	}
}

// ============================================================================
// Unknown and Malformed Records
// ============================================================================

func TestGraphicFromRecordUnknownClass(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		{"missing class", Record{KeyBounds: "{{0, 0}, {10, 10}}"}},
		{"unregistered class", Record{KeyClass: "hexagon"}},
		{"non-string class", Record{KeyClass: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, warnings := GraphicFromRecord(tt.rec)
			if g != nil {
				t.Errorf("GraphicFromRecord() = %T, want nil", g)
			}
			if len(warnings) != 1 || warnings[0].Code != WarnUnknownClass {
				t.Errorf("warnings = %v, want one %s warning", warnings, WarnUnknownClass)
			}
		})
	}
}

func TestGraphicsFromRecordsDropsUnknown(t *testing.T) {
	recs := []Record{
		{KeyClass: string(KindRectangle), KeyBounds: "{{0, 0}, {10, 10}}"},
		{KeyClass: "hexagon"},
		{KeyClass: string(KindCircle), KeyBounds: "{{5, 5}, {20, 20}}"},
	}

	graphics, warnings := GraphicsFromRecords(recs)
	if len(graphics) != 2 {
		t.Fatalf("got %d graphics, want 2", len(graphics))
	}
	if graphics[0].Kind() != KindRectangle || graphics[1].Kind() != KindCircle {
		t.Errorf("kinds = %v, %v; want rectangle, circle", graphics[0].Kind(), graphics[1].Kind())
	}
	if len(warnings) != 1 || warnings[0].Code != WarnUnknownClass {
		t.Errorf("warnings = %v, want one %s warning", warnings, WarnUnknownClass)
	}
}

func TestRestoreRepairsMalformedFields(t *testing.T) {
	rec := Record{
		KeyClass:         string(KindRectangle),
		KeyGraphicID:     "not-a-uuid",
		KeyBounds:        "nonsense",
		KeyFillColor:     "#XYZXYZ",
		KeyStrokeColor:   42,
		KeyStrokeWidth:   "wide",
		KeyDrawingFill:   "yes",
		KeyDrawingStroke: true,
	}

	g, warnings := GraphicFromRecord(rec)
	if g == nil {
		t.Fatal("GraphicFromRecord() = nil, want a repaired rectangle")
	}

	if got := g.Bounds(); !got.IsEmpty() {
		t.Errorf("Bounds() = %+v, want empty after repair", got)
	}

	want := DefaultStyle()
	if got := g.Style(); got != want {
		t.Errorf("Style() = %+v, want defaults %+v", got, want)
	}

	codes := map[string]int{}
	for _, w := range warnings {
		codes[w.Code]++
	}
	if codes[WarnBadGeometry] != 1 {
		t.Errorf("got %d %s warnings, want 1", codes[WarnBadGeometry], WarnBadGeometry)
	}
	if codes[WarnBadColor] != 1 {
		t.Errorf("got %d %s warnings, want 1", codes[WarnBadColor], WarnBadColor)
	}
}

func TestRestoreClampsNegativeStrokeWidth(t *testing.T) {
	rec := Record{
		KeyClass:       string(KindRectangle),
		KeyStrokeWidth: -5.0,
	}

	g, _ := GraphicFromRecord(rec)
	if got := g.Style().StrokeWidth; got != 0 {
		t.Errorf("StrokeWidth = %v, want 0", got)
	}
}

// ============================================================================
// Per-Kind Round Trips
// ============================================================================

func TestGraphicRecordRoundTrip(t *testing.T) {
	style := Style{
		DrawsFill:   true,
		FillColor:   color.NRGBA{R: 10, G: 20, B: 30, A: 255},
		DrawsStroke: true,
		StrokeColor: color.NRGBA{R: 200, G: 100, B: 50, A: 128},
		StrokeWidth: 2.5,
	}

	rect := NewRectangle()
	rect.SetBounds(geom.NewRect(1, 2, 30, 40))
	rect.SetStyle(style)

	circle := NewCircle()
	circle.SetBounds(geom.NewRect(5, 5, 50, 25))
	circle.SetStyle(style)

	line := LineFromPoints(geom.Point{60, 10}, geom.Point{10, 40})

	text := NewText()
	text.SetBounds(geom.NewRect(0, 0, 80, 20))
	text.SetText("width x height")
	text.SetFontSize(18)

	for _, g := range []Graphic{rect, circle, line, text} {
		t.Run(string(g.Kind()), func(t *testing.T) {
			restored, warnings := GraphicFromRecord(g.Record())
			if len(warnings) != 0 {
				t.Fatalf("unexpected warnings: %v", warnings)
			}
			if restored.Kind() != g.Kind() {
				t.Fatalf("Kind() = %v, want %v", restored.Kind(), g.Kind())
			}
			if restored.ID() != g.ID() {
				t.Errorf("ID() = %v, want %v", restored.ID(), g.ID())
			}
			if restored.Bounds() != g.Bounds() {
				t.Errorf("Bounds() = %+v, want %+v", restored.Bounds(), g.Bounds())
			}
			if restored.Style() != g.Style() {
				t.Errorf("Style() = %+v, want %+v", restored.Style(), g.Style())
			}
		})
	}

	restored, _ := GraphicFromRecord(line.Record())
	if l, ok := restored.(*Line); !ok || l.BeginPoint() != line.BeginPoint() || l.EndPoint() != line.EndPoint() {
		t.Errorf("restored line endpoints differ: %T", restored)
	}

	restoredText, _ := GraphicFromRecord(text.Record())
	if tg, ok := restoredText.(*Text); !ok || tg.Text() != "width x height" || tg.FontSize() != 18 {
		t.Errorf("restored text state differs: %T", restoredText)
	}
}

func TestImageRecordRoundTrip(t *testing.T) {
	img := NewImage()
	img.SetBounds(geom.NewRect(0, 0, 40, 30))
	if err := img.SetData(tinyPNG(t, 4, 3)); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	img.Flip(true, false)

	restored, warnings := GraphicFromRecord(img.Record())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	ri, ok := restored.(*Image)
	if !ok {
		t.Fatalf("GraphicFromRecord() = %T, want *Image", restored)
	}
	if !bytes.Equal(ri.Data(), img.Data()) {
		t.Error("restored payload differs from original")
	}
	if got := ri.NaturalSize(); got != (geom.Size{Width: 4, Height: 3}) {
		t.Errorf("NaturalSize() = %+v, want {4, 3}", got)
	}
	if !ri.FlippedHorizontally() || ri.FlippedVertically() {
		t.Errorf("flips = (%v, %v), want (true, false)",
			ri.FlippedHorizontally(), ri.FlippedVertically())
	}
}

func TestImageRestoreDropsBadPayload(t *testing.T) {
	rec := Record{
		KeyClass:    string(KindImage),
		KeyContents: []byte("not an image"),
	}

	g, warnings := GraphicFromRecord(rec)
	img := g.(*Image)
	if len(img.Data()) != 0 {
		t.Error("Data() kept an undecodable payload, want empty")
	}

	found := false
	for _, w := range warnings {
		if w.Code == WarnBadImage {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want a %s warning", warnings, WarnBadImage)
	}
}

// ============================================================================
// Registry
// ============================================================================

func TestRegisteredKinds(t *testing.T) {
	want := []Kind{KindCircle, KindImage, KindLine, KindRectangle, KindText}
	got := RegisteredKinds()

	if len(got) < len(want) {
		t.Fatalf("RegisteredKinds() = %v, want at least %v", got, want)
	}
	have := map[Kind]bool{}
	for _, k := range got {
		have[k] = true
	}
	for _, k := range want {
		if !have[k] {
			t.Errorf("RegisteredKinds() is missing %v", k)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("blob", func() Graphic { return NewRectangle() })
	r.Register("arrow", func() Graphic { return NewLine() })

	if _, ok := r.Get("blob"); !ok {
		t.Error("Get(blob) not found after Register")
	}
	if _, ok := r.Get("star"); ok {
		t.Error("Get(star) found, want missing")
	}

	want := []Kind{"arrow", "blob"}
	got := r.List()
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
