package export

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/MaddTheSane/Sketch/geom"
	"github.com/MaddTheSane/Sketch/model"
)

func TestWritePNG(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		wantW int
		wantH int
	}{
		{"unit scale", 1, 10, 8},
		{"double scale", 2, 20, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := model.NewDocumentWithSize(geom.Size{Width: 10, Height: 8})

			var buf bytes.Buffer
			if err := WritePNG(&buf, d, tt.scale); err != nil {
				t.Fatalf("WritePNG() error = %v", err)
			}

			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatalf("failed to decode output: %v", err)
			}
			if got := img.Bounds().Dx(); got != tt.wantW {
				t.Errorf("width = %d, want %d", got, tt.wantW)
			}
			if got := img.Bounds().Dy(); got != tt.wantH {
				t.Errorf("height = %d, want %d", got, tt.wantH)
			}
		})
	}
}

func TestWritePNGBadScale(t *testing.T) {
	d := model.NewDocument()
	var buf bytes.Buffer
	if err := WritePNG(&buf, d, 0); err == nil {
		t.Error("WritePNG() with zero scale error = nil, want error")
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	d := model.NewDocumentWithSize(geom.Size{Width: 300, Height: 200})
	rect := model.NewRectangle()
	rect.SetBounds(geom.Rect{X: 10, Y: 20, Width: 50, Height: 40})
	d.AddGraphic(rect)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, d); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, warnings, err := model.ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if got.CanvasSize() != d.CanvasSize() {
		t.Errorf("canvas = %v, want %v", got.CanvasSize(), d.CanvasSize())
	}
	if got.GraphicCount() != 1 {
		t.Fatalf("GraphicCount() = %d, want 1", got.GraphicCount())
	}
	if got.GraphicAt(0).Bounds() != rect.Bounds() {
		t.Errorf("bounds = %v, want %v", got.GraphicAt(0).Bounds(), rect.Bounds())
	}
}

func TestWriteDispatch(t *testing.T) {
	d := model.NewDocumentWithSize(geom.Size{Width: 10, Height: 10})

	t.Run("each supported format", func(t *testing.T) {
		for _, f := range []Format{PNG, SVG, JSON} {
			var buf bytes.Buffer
			if err := Write(&buf, d, f); err != nil {
				t.Errorf("Write(%v) error = %v", f, err)
			}
			if buf.Len() == 0 {
				t.Errorf("Write(%v) produced no output", f)
			}
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		err := Write(&buf, d, Unknown)
		if err == nil {
			t.Fatal("Write(Unknown) error = nil, want error")
		}

		var ufe *UnsupportedFormatError
		if !errors.As(err, &ufe) {
			t.Fatalf("error = %v, want *UnsupportedFormatError", err)
		}
		if ufe.Format != Unknown {
			t.Errorf("Format = %v, want %v", ufe.Format, Unknown)
		}
	})
}

func TestWritePNGPaintsGraphics(t *testing.T) {
	d := model.NewDocumentWithSize(geom.Size{Width: 10, Height: 10})
	rect := model.NewRectangle()
	rect.SetBounds(geom.Rect{Width: 10, Height: 10})
	rect.SetStyle(model.Style{DrawsFill: true, FillColor: color.NRGBA{R: 255, A: 255}})
	d.AddGraphic(rect)

	var buf bytes.Buffer
	if err := WritePNG(&buf, d, 1); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	r, g, b, _ := img.At(5, 5).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("pixel = (%d, %d, %d), want red", r>>8, g>>8, b>>8)
	}
}
