package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"io"
	"math"
	"net/http"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/MaddTheSane/Sketch/geom"
	"github.com/MaddTheSane/Sketch/model"
)

// WriteSVG writes the document as an SVG drawing. Elements appear in
// painter order, so the frontmost graphic is the last element. Styles
// go out as presentation attributes, which is also the form the SVG
// importer reads back.
func WriteSVG(w io.Writer, d *model.Document) error {
	if d == nil {
		return fmt.Errorf("no document to export")
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)

	size := d.CanvasSize()
	canvas.Start(round(size.Width), round(size.Height))

	graphics := d.Graphics()
	for i := len(graphics) - 1; i >= 0; i-- {
		writeGraphic(canvas, graphics[i])
	}

	canvas.End()
	_, err := w.Write(buf.Bytes())
	return err
}

func writeGraphic(canvas *svg.SVG, g model.Graphic) {
	switch t := g.(type) {
	case *model.Line:
		writeLine(canvas, t)
	case *model.Text:
		writeText(canvas, t)
	case *model.Image:
		writeImage(canvas, t)
	case *model.Circle:
		b := t.Bounds()
		canvas.Ellipse(round(b.MidX()), round(b.MidY()), round(b.Width/2), round(b.Height/2),
			styleAttrs(t.Style())...)
	default:
		b := g.Bounds()
		canvas.Rect(round(b.X), round(b.Y), round(b.Width), round(b.Height),
			styleAttrs(g.Style())...)
	}
}

func writeLine(canvas *svg.SVG, l *model.Line) {
	s := l.Style()
	if !s.DrawsStroke {
		return
	}
	s.DrawsFill = false

	begin, end := l.BeginPoint(), l.EndPoint()
	canvas.Line(round(begin.X), round(begin.Y), round(end.X), round(end.Y),
		styleAttrs(s)...)
}

// writeText draws the optional background and frame as rect elements
// around the text itself. The text element carries no fill attribute:
// glyphs paint in the SVG default black either way, and the importer
// then reads the element back without inventing a box fill.
func writeText(canvas *svg.SVG, t *model.Text) {
	b := t.Bounds()
	s := t.Style()

	if s.DrawsFill {
		fillOnly := s
		fillOnly.DrawsStroke = false
		canvas.Rect(round(b.X), round(b.Y), round(b.Width), round(b.Height),
			styleAttrs(fillOnly)...)
	}

	if content := t.Text(); content != "" {
		size := t.FontSize()
		attr := fmt.Sprintf(`font-size="%s"`, formatNumber(size))
		y := b.Y + size
		for _, line := range strings.Split(content, "\n") {
			canvas.Text(round(b.X), round(y), line, attr)
			y += size * 1.2
		}
	}

	if s.DrawsStroke {
		strokeOnly := s
		strokeOnly.DrawsFill = false
		canvas.Rect(round(b.X), round(b.Y), round(b.Width), round(b.Height),
			styleAttrs(strokeOnly)...)
	}
}

func writeImage(canvas *svg.SVG, img *model.Image) {
	b := img.Bounds()
	data := img.Data()
	if len(data) == 0 {
		writeImagePlaceholder(canvas, b)
		return
	}

	uri := "data:" + http.DetectContentType(data) + ";base64," +
		base64.StdEncoding.EncodeToString(data)

	if img.FlippedHorizontally() || img.FlippedVertically() {
		sx, sy := 1, 1
		if img.FlippedHorizontally() {
			sx = -1
		}
		if img.FlippedVertically() {
			sy = -1
		}
		// Mirror in place about the center so the element keeps its
		// true x and y.
		transform := fmt.Sprintf(`transform="translate(%d,%d) scale(%d,%d) translate(%d,%d)"`,
			round(b.MidX()), round(b.MidY()), sx, sy, -round(b.MidX()), -round(b.MidY()))
		canvas.Image(round(b.X), round(b.Y), round(b.Width), round(b.Height), uri, transform)
		return
	}

	canvas.Image(round(b.X), round(b.Y), round(b.Width), round(b.Height), uri)
}

// writeImagePlaceholder frames the bounds with crossed diagonals where
// an image graphic has no payload
func writeImagePlaceholder(canvas *svg.SVG, b geom.Rect) {
	attrs := styleAttrs(model.Style{
		DrawsStroke: true,
		StrokeColor: color.NRGBA{R: 128, G: 128, B: 128, A: 255},
		StrokeWidth: 1,
	})
	canvas.Rect(round(b.X), round(b.Y), round(b.Width), round(b.Height), attrs...)
	canvas.Line(round(b.MinX()), round(b.MinY()), round(b.MaxX()), round(b.MaxY()), attrs...)
	canvas.Line(round(b.MinX()), round(b.MaxY()), round(b.MaxX()), round(b.MinY()), attrs...)
}

// styleAttrs renders a style as SVG presentation attributes
func styleAttrs(s model.Style) []string {
	attrs := make([]string, 0, 3)

	if s.DrawsFill {
		attrs = append(attrs, fmt.Sprintf(`fill="%s"`, svgPaint(s.FillColor)))
	} else {
		attrs = append(attrs, `fill="none"`)
	}

	if s.DrawsStroke {
		width := s.StrokeWidth
		if width == 0 {
			width = 1
		}
		attrs = append(attrs,
			fmt.Sprintf(`stroke="%s"`, svgPaint(s.StrokeColor)),
			fmt.Sprintf(`stroke-width="%s"`, formatNumber(width)))
	} else {
		attrs = append(attrs, `stroke="none"`)
	}

	return attrs
}

// svgPaint renders a color for fill and stroke attributes, using the
// eight-digit hex form only when the color is translucent
func svgPaint(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return model.FormatColor(c)
}

// formatNumber renders a length attribute without a unit suffix
func formatNumber(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}

func round(v float64) int {
	return int(math.Round(v))
}
