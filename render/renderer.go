package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/MaddTheSane/Sketch/geom"
	"github.com/MaddTheSane/Sketch/grid"
	"github.com/MaddTheSane/Sketch/model"
)

// Renderer rasterizes documents. The zero value is not usable; create
// renderers with NewRenderer and adjust the exported fields before the
// first call. A renderer caches parsed font state and is not safe for
// concurrent use.
type Renderer struct {
	// Scale converts canvas units to pixels. 1 gives one pixel per
	// canvas unit.
	Scale float64

	// Background fills the canvas before anything draws. A fully
	// transparent background leaves the canvas unpainted.
	Background color.NRGBA

	// GridColor strokes grid lines when a visible grid is passed to
	// RenderEditor.
	GridColor color.NRGBA

	// HandleFill and HandleStroke paint selection handles.
	HandleFill   color.NRGBA
	HandleStroke color.NRGBA

	// FontData is the TrueType font used for text graphics.
	FontData []byte

	ttf   *truetype.Font
	faces map[float64]font.Face
}

// NewRenderer creates a renderer with a white background and the
// bundled regular font
func NewRenderer() *Renderer {
	return &Renderer{
		Scale:        1,
		Background:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		GridColor:    color.NRGBA{R: 200, G: 216, B: 255, A: 255},
		HandleFill:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		HandleStroke: color.NRGBA{A: 255},
		FontData:     goregular.TTF,
		faces:        make(map[float64]font.Face),
	}
}

// Render rasterizes the document at the renderer's scale
func (r *Renderer) Render(d *model.Document) (*image.RGBA, error) {
	return r.render(d, nil, nil)
}

// RenderEditor rasterizes the document the way an editing surface
// shows it: grid lines behind the graphics when g is visible, and
// selection handles on top of every graphic whose ID is selected.
func (r *Renderer) RenderEditor(d *model.Document, g *grid.Grid, selection ...uuid.UUID) (*image.RGBA, error) {
	return r.render(d, g, selection)
}

func (r *Renderer) render(d *model.Document, g *grid.Grid, selection []uuid.UUID) (*image.RGBA, error) {
	if d == nil {
		return nil, fmt.Errorf("no document to render")
	}
	if r.Scale <= 0 {
		return nil, fmt.Errorf("render scale must be positive, got %v", r.Scale)
	}

	canvas := d.CanvasSize()
	width := int(math.Ceil(canvas.Width * r.Scale))
	height := int(math.Ceil(canvas.Height * r.Scale))
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("canvas %v is too small to render", canvas)
	}

	dc := gg.NewContext(width, height)
	if r.Background.A > 0 {
		dc.SetColor(r.Background)
		dc.Clear()
	}

	if g != nil && g.IsVisible() {
		r.drawGrid(dc, g.Spacing(), canvas)
	}

	// Index 0 is frontmost, so drawing walks the list backwards.
	graphics := d.Graphics()
	for i := len(graphics) - 1; i >= 0; i-- {
		if err := r.drawGraphic(dc, graphics[i]); err != nil {
			return nil, err
		}
	}

	if len(selection) > 0 {
		selected := make(map[uuid.UUID]bool, len(selection))
		for _, id := range selection {
			selected[id] = true
		}
		for _, gr := range graphics {
			if selected[gr.ID()] {
				r.drawHandles(dc, gr)
			}
		}
	}

	return dc.Image().(*image.RGBA), nil
}

// ============================================================================
// Graphics
// ============================================================================

func (r *Renderer) drawGraphic(dc *gg.Context, g model.Graphic) error {
	switch t := g.(type) {
	case *model.Line:
		r.drawLine(dc, t)
	case *model.Text:
		return r.drawText(dc, t)
	case *model.Image:
		r.drawImage(dc, t)
	case *model.Circle:
		b := t.Bounds()
		s := r.Scale
		dc.DrawEllipse(b.MidX()*s, b.MidY()*s, b.Width/2*s, b.Height/2*s)
		r.paintPath(dc, t.Style())
	default:
		b := g.Bounds()
		s := r.Scale
		dc.DrawRectangle(b.X*s, b.Y*s, b.Width*s, b.Height*s)
		r.paintPath(dc, g.Style())
	}
	return nil
}

// paintPath fills and strokes the current path per the style
func (r *Renderer) paintPath(dc *gg.Context, style model.Style) {
	if style.DrawsFill {
		dc.SetColor(style.FillColor)
		if style.DrawsStroke {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if style.DrawsStroke {
		dc.SetColor(style.StrokeColor)
		dc.SetLineWidth(r.strokeWidth(style))
		dc.Stroke()
	} else if !style.DrawsFill {
		dc.ClearPath()
	}
}

// strokeWidth converts the style's width to pixels; a zero width
// strokes one hairline pixel
func (r *Renderer) strokeWidth(style model.Style) float64 {
	w := style.StrokeWidth * r.Scale
	if w < 1 {
		w = 1
	}
	return w
}

func (r *Renderer) drawLine(dc *gg.Context, l *model.Line) {
	style := l.Style()
	if !style.DrawsStroke {
		return
	}

	begin := l.BeginPoint()
	end := l.EndPoint()
	s := r.Scale
	dc.SetColor(style.StrokeColor)
	dc.SetLineWidth(r.strokeWidth(style))
	dc.DrawLine(begin.X*s, begin.Y*s, end.X*s, end.Y*s)
	dc.Stroke()
}

func (r *Renderer) drawText(dc *gg.Context, t *model.Text) error {
	b := t.Bounds()
	s := r.Scale
	style := t.Style()

	if style.DrawsFill {
		dc.SetColor(style.FillColor)
		dc.DrawRectangle(b.X*s, b.Y*s, b.Width*s, b.Height*s)
		dc.Fill()
	}

	if content := t.Text(); content != "" && !b.IsEmpty() {
		face, err := r.face(t.FontSize() * s)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		dc.SetColor(color.NRGBA{A: 255})
		dc.DrawStringWrapped(content, b.X*s, b.Y*s, 0, 0, b.Width*s, 1.2, gg.AlignLeft)
	}

	if style.DrawsStroke {
		dc.SetColor(style.StrokeColor)
		dc.SetLineWidth(r.strokeWidth(style))
		dc.DrawRectangle(b.X*s, b.Y*s, b.Width*s, b.Height*s)
		dc.Stroke()
	}
	return nil
}

func (r *Renderer) drawImage(dc *gg.Context, img *model.Image) {
	b := img.Bounds()
	if b.IsEmpty() {
		return
	}

	decoded, err := img.Decode()
	if err != nil {
		r.drawImagePlaceholder(dc, b)
		return
	}
	size := decoded.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		r.drawImagePlaceholder(dc, b)
		return
	}

	sx := b.Width * r.Scale / float64(size.X)
	sy := b.Height * r.Scale / float64(size.Y)
	if img.FlippedHorizontally() {
		sx = -sx
	}
	if img.FlippedVertically() {
		sy = -sy
	}

	dc.Push()
	dc.Translate(b.MidX()*r.Scale, b.MidY()*r.Scale)
	dc.Scale(sx, sy)
	dc.DrawImageAnchored(decoded, 0, 0, 0.5, 0.5)
	dc.Pop()

	style := img.Style()
	if style.DrawsStroke {
		s := r.Scale
		dc.SetColor(style.StrokeColor)
		dc.SetLineWidth(r.strokeWidth(style))
		dc.DrawRectangle(b.X*s, b.Y*s, b.Width*s, b.Height*s)
		dc.Stroke()
	}
}

// drawImagePlaceholder frames the bounds with crossed diagonals where
// an image graphic has no decodable payload
func (r *Renderer) drawImagePlaceholder(dc *gg.Context, b geom.Rect) {
	s := r.Scale
	dc.SetColor(color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	dc.SetLineWidth(1)
	dc.DrawRectangle(b.X*s, b.Y*s, b.Width*s, b.Height*s)
	dc.Stroke()
	dc.DrawLine(b.MinX()*s, b.MinY()*s, b.MaxX()*s, b.MaxY()*s)
	dc.Stroke()
	dc.DrawLine(b.MinX()*s, b.MaxY()*s, b.MaxX()*s, b.MinY()*s)
	dc.Stroke()
}

// ============================================================================
// Editor decorations
// ============================================================================

func (r *Renderer) drawGrid(dc *gg.Context, spacing float64, canvas geom.Size) {
	s := r.Scale
	dc.SetColor(r.GridColor)
	dc.SetLineWidth(1)

	for x := 0.0; x <= canvas.Width; x += spacing {
		dc.DrawLine(x*s, 0, x*s, canvas.Height*s)
		dc.Stroke()
	}
	for y := 0.0; y <= canvas.Height; y += spacing {
		dc.DrawLine(0, y*s, canvas.Width*s, y*s)
		dc.Stroke()
	}
}

func (r *Renderer) drawHandles(dc *gg.Context, g model.Graphic) {
	var points []geom.Point
	if l, ok := g.(*model.Line); ok {
		points = []geom.Point{l.BeginPoint(), l.EndPoint()}
	} else {
		all := geom.HandlePoints(g.Bounds())
		points = all[:]
	}

	s := r.Scale
	half := geom.HandleHalfWidth * s
	for _, p := range points {
		dc.DrawRectangle(p.X*s-half, p.Y*s-half, 2*half, 2*half)
		dc.SetColor(r.HandleFill)
		dc.FillPreserve()
		dc.SetColor(r.HandleStroke)
		dc.SetLineWidth(1)
		dc.Stroke()
	}
}

// ============================================================================
// Fonts
// ============================================================================

// face returns a cached font face for one pixel size
func (r *Renderer) face(size float64) (font.Face, error) {
	if r.ttf == nil {
		data := r.FontData
		if len(data) == 0 {
			data = goregular.TTF
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		r.ttf = f
	}

	if r.faces == nil {
		r.faces = make(map[float64]font.Face)
	}
	if face, ok := r.faces[size]; ok {
		return face, nil
	}

	face := truetype.NewFace(r.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[size] = face
	return face, nil
}
