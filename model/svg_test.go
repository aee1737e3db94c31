package model

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/MaddTheSane/Sketch/geom"
)

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="400px" height="300">
  <rect x="10" y="20" width="100" height="50" fill="#FF0000" stroke="none"/>
  <circle cx="60" cy="60" r="25" fill="none" stroke="#0000FF" stroke-width="2"/>
  <line x1="0" y1="0" x2="50" y2="80" stroke="#000000"/>
  <text x="10" y="100" font-size="20">hello</text>
</svg>`

func TestFromSVG(t *testing.T) {
	d, warnings, err := FromSVG(strings.NewReader(sampleSVG))
	if err != nil {
		t.Fatalf("FromSVG() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if got := d.CanvasSize(); got != (geom.Size{Width: 400, Height: 300}) {
		t.Errorf("CanvasSize() = %+v, want {400, 300}", got)
	}
	if got := d.GraphicCount(); got != 4 {
		t.Fatalf("GraphicCount() = %d, want 4", got)
	}

	txt, ok := d.GraphicAt(0).(*Text)
	if !ok {
		t.Fatalf("GraphicAt(0) = %T, want *Text in front", d.GraphicAt(0))
	}
	if txt.Text() != "hello" || txt.FontSize() != 20 {
		t.Errorf("text state = (%q, %v)", txt.Text(), txt.FontSize())
	}
	if got := txt.Bounds(); got != geom.NewRect(10, 80, 60, 28) {
		t.Errorf("text Bounds() = %+v", got)
	}

	l, ok := d.GraphicAt(1).(*Line)
	if !ok {
		t.Fatalf("GraphicAt(1) = %T, want *Line", d.GraphicAt(1))
	}
	if l.BeginPoint() != (geom.Point{0, 0}) || l.EndPoint() != (geom.Point{50, 80}) {
		t.Errorf("line endpoints = %+v, %+v", l.BeginPoint(), l.EndPoint())
	}
	if !l.Style().DrawsStroke || l.Style().StrokeWidth != 1 {
		t.Errorf("line style = %+v, want default width stroke", l.Style())
	}

	c, ok := d.GraphicAt(2).(*Circle)
	if !ok {
		t.Fatalf("GraphicAt(2) = %T, want *Circle", d.GraphicAt(2))
	}
	if got := c.Bounds(); got != geom.NewRect(35, 35, 50, 50) {
		t.Errorf("circle Bounds() = %+v, want {{35, 35}, {50, 50}}", got)
	}
	style := c.Style()
	if style.DrawsFill {
		t.Error("circle fill = on for fill=none")
	}
	if !style.DrawsStroke || style.StrokeWidth != 2 {
		t.Errorf("circle stroke = %+v, want 2 wide", style)
	}
	if FormatColor(style.StrokeColor) != "#0000FFFF" {
		t.Errorf("circle stroke color = %s", FormatColor(style.StrokeColor))
	}

	r, ok := d.GraphicAt(3).(*Rectangle)
	if !ok {
		t.Fatalf("GraphicAt(3) = %T, want *Rectangle in back", d.GraphicAt(3))
	}
	if got := r.Bounds(); got != geom.NewRect(10, 20, 100, 50) {
		t.Errorf("rect Bounds() = %+v", got)
	}
	if !r.Style().DrawsFill || r.Style().DrawsStroke {
		t.Errorf("rect style = %+v, want fill only", r.Style())
	}
	if FormatColor(r.Style().FillColor) != "#FF0000FF" {
		t.Errorf("rect fill color = %s", FormatColor(r.Style().FillColor))
	}
}

func TestFromSVGDefaultCanvas(t *testing.T) {
	d, _, err := FromSVG(strings.NewReader(`<svg><rect width="5" height="5"/></svg>`))
	if err != nil {
		t.Fatalf("FromSVG() error = %v", err)
	}
	if got := d.CanvasSize(); got != DefaultCanvasSize {
		t.Errorf("CanvasSize() = %+v, want default without svg dimensions", got)
	}
}

func TestFromSVGImage(t *testing.T) {
	payload := tinyPNG(t, 4, 3)
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
	in := fmt.Sprintf(`<svg width="100" height="100">
  <image x="5" y="5" width="40" height="30" href="%s"/>
  <image x="0" y="0" width="10" height="10" href="photo.png"/>
</svg>`, uri)

	d, warnings, err := FromSVG(strings.NewReader(in))
	if err != nil {
		t.Fatalf("FromSVG() error = %v", err)
	}

	if got := d.GraphicCount(); got != 1 {
		t.Fatalf("GraphicCount() = %d, want 1", got)
	}
	img, ok := d.GraphicAt(0).(*Image)
	if !ok {
		t.Fatalf("GraphicAt(0) = %T, want *Image", d.GraphicAt(0))
	}
	if got := img.NaturalSize(); got != (geom.Size{Width: 4, Height: 3}) {
		t.Errorf("NaturalSize() = %+v, want {4, 3}", got)
	}
	if got := img.Bounds(); got != geom.NewRect(5, 5, 40, 30) {
		t.Errorf("Bounds() = %+v", got)
	}

	if len(warnings) != 1 || warnings[0].Code != WarnBadSVG {
		t.Errorf("warnings = %v, want one %s warning for the external href", warnings, WarnBadSVG)
	}
}

func TestFromSVGMalformed(t *testing.T) {
	if _, _, err := FromSVG(strings.NewReader("<svg><rect</svg>")); err == nil {
		t.Error("FromSVG() error = nil, want error")
	}
}
