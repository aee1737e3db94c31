package model

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MaddTheSane/Sketch/geom"
)

// ============================================================================
// XML structures
// ============================================================================

type svgFile struct {
	XMLName  xml.Name     `xml:"svg"`
	Width    string       `xml:"width,attr"`
	Height   string       `xml:"height,attr"`
	Rects    []svgRect    `xml:"rect"`
	Ellipses []svgEllipse `xml:"ellipse"`
	Circles  []svgCircle  `xml:"circle"`
	Lines    []svgLine    `xml:"line"`
	Texts    []svgText    `xml:"text"`
	Images   []svgImage   `xml:"image"`
}

type svgStyle struct {
	Fill        string  `xml:"fill,attr"`
	Stroke      string  `xml:"stroke,attr"`
	StrokeWidth float64 `xml:"stroke-width,attr"`
}

type svgRect struct {
	svgStyle
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type svgEllipse struct {
	svgStyle
	CX float64 `xml:"cx,attr"`
	CY float64 `xml:"cy,attr"`
	RX float64 `xml:"rx,attr"`
	RY float64 `xml:"ry,attr"`
}

type svgCircle struct {
	svgStyle
	CX float64 `xml:"cx,attr"`
	CY float64 `xml:"cy,attr"`
	R  float64 `xml:"r,attr"`
}

type svgLine struct {
	svgStyle
	X1 float64 `xml:"x1,attr"`
	Y1 float64 `xml:"y1,attr"`
	X2 float64 `xml:"x2,attr"`
	Y2 float64 `xml:"y2,attr"`
}

type svgText struct {
	svgStyle
	X        float64 `xml:"x,attr"`
	Y        float64 `xml:"y,attr"`
	FontSize float64 `xml:"font-size,attr"`
	Content  string  `xml:",chardata"`
}

type svgImage struct {
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
	Href   string  `xml:"href,attr"`
}

// ============================================================================
// Import
// ============================================================================

// FromSVG builds a document from a subset of SVG: rect, ellipse,
// circle, line, text and image elements with plain numeric geometry.
// Anything else is skipped. Import is best-effort in the same way
// record decoding is: unusable elements are dropped with a warning.
func FromSVG(r io.Reader) (*Document, []Warning, error) {
	var file svgFile
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	d := NewDocument()
	var warnings []Warning

	if size, ok := svgCanvasSize(file.Width, file.Height); ok {
		d.canvasSize = size
	}

	// SVG order is back to front; the document list is front to back.
	var graphics []Graphic

	for _, el := range file.Rects {
		g := NewRectangle()
		g.SetBounds(geom.NewRect(el.X, el.Y, el.Width, el.Height))
		applySVGStyle(g, el.svgStyle)
		graphics = append(graphics, g)
	}
	for _, el := range file.Ellipses {
		g := NewCircle()
		g.SetBounds(geom.NewRect(el.CX-el.RX, el.CY-el.RY, 2*el.RX, 2*el.RY))
		applySVGStyle(g, el.svgStyle)
		graphics = append(graphics, g)
	}
	for _, el := range file.Circles {
		g := NewCircle()
		g.SetBounds(geom.NewRect(el.CX-el.R, el.CY-el.R, 2*el.R, 2*el.R))
		applySVGStyle(g, el.svgStyle)
		graphics = append(graphics, g)
	}
	for _, el := range file.Lines {
		g := LineFromPoints(geom.Point{X: el.X1, Y: el.Y1}, geom.Point{X: el.X2, Y: el.Y2})
		applySVGStyle(g, el.svgStyle)
		graphics = append(graphics, g)
	}
	for _, el := range file.Texts {
		g := NewText()
		g.SetText(strings.TrimSpace(el.Content))
		size := el.FontSize
		if size <= 0 {
			size = DefaultFontSize
		}
		g.SetFontSize(size)
		// SVG anchors text at the baseline; approximate the box from
		// the font size and run length.
		width := float64(len(g.Text())) * size * 0.6
		if width < size {
			width = size
		}
		g.SetBounds(geom.NewRect(el.X, el.Y-size, width, size*1.4))
		applySVGStyle(g, el.svgStyle)
		graphics = append(graphics, g)
	}
	for _, el := range file.Images {
		data, ok := decodeDataURI(el.Href)
		if !ok {
			warnings = append(warnings, Warning{
				Code:    WarnBadSVG,
				Message: "image element without an inline data URI, dropping it",
			})
			continue
		}

		g := NewImage()
		if err := g.SetData(data); err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnBadImage,
				Message: "unreadable svg image payload, dropping it",
				Detail:  err.Error(),
			})
			continue
		}
		g.SetBounds(geom.NewRect(el.X, el.Y, el.Width, el.Height))
		graphics = append(graphics, g)
	}

	for i := len(graphics) - 1; i >= 0; i-- {
		d.graphics = append(d.graphics, graphics[i])
	}
	return d, warnings, nil
}

func applySVGStyle(g Graphic, s svgStyle) {
	style := g.Style()

	switch {
	case s.Fill == "" || strings.EqualFold(s.Fill, "none"):
		style.DrawsFill = false
	default:
		if c, err := ParseColor(s.Fill); err == nil && g.CanSetDrawingFill() {
			style.DrawsFill = true
			style.FillColor = c
		}
	}

	switch {
	case s.Stroke == "" || strings.EqualFold(s.Stroke, "none"):
		style.DrawsStroke = false
	default:
		if c, err := ParseColor(s.Stroke); err == nil {
			style.DrawsStroke = true
			style.StrokeColor = c
			if s.StrokeWidth > 0 {
				style.StrokeWidth = s.StrokeWidth
			}
		}
	}

	g.SetStyle(style)
}

// svgCanvasSize reads the svg width/height attributes, tolerating a
// trailing unit suffix
func svgCanvasSize(width, height string) (geom.Size, bool) {
	w, okW := svgLength(width)
	h, okH := svgLength(height)
	if !okW || !okH || w <= 0 || h <= 0 {
		return geom.Size{}, false
	}
	return geom.Size{Width: w, Height: h}, true
}

func svgLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSuffix(s, "pt")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// decodeDataURI extracts the payload of a base64 data URI
func decodeDataURI(href string) ([]byte, bool) {
	const marker = ";base64,"
	i := strings.Index(href, marker)
	if !strings.HasPrefix(href, "data:") || i < 0 {
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(href[i+len(marker):])
	if err != nil {
		return nil, false
	}
	return data, true
}
