package model

import (
	"bytes"
	"fmt"
	"image"

	// Image graphics accept any registered format; these cover the
	// stdlib formats plus the extended set.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/MaddTheSane/Sketch/geom"
)

// Image is a bitmap drawn inside its bounds. It keeps the encoded
// payload verbatim and two mirror flags that toggle whenever a handle
// drag flips the bounds; rendering mirrors the bitmap accordingly.
type Image struct {
	base
	data                []byte
	naturalSize         geom.Size
	flippedHorizontally bool
	flippedVertically   bool
}

// NewImage creates an image graphic with no payload
func NewImage() *Image {
	return &Image{base: newBase()}
}

// Kind returns KindImage
func (img *Image) Kind() Kind {
	return KindImage
}

// Data returns the encoded image payload
func (img *Image) Data() []byte {
	return img.data
}

// NaturalSize returns the pixel dimensions of the payload, or a zero
// size when there is none
func (img *Image) NaturalSize() geom.Size {
	return img.naturalSize
}

// SetData replaces the payload. The encoded bytes must be a
// registered image format; the natural size is read from the header.
func (img *Image) SetData(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	img.data = data
	img.naturalSize = geom.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	return nil
}

// Decode decodes the payload into a pixel image
func (img *Image) Decode() (image.Image, error) {
	if len(img.data) == 0 {
		return nil, fmt.Errorf("image graphic has no payload")
	}

	decoded, _, err := image.Decode(bytes.NewReader(img.data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return decoded, nil
}

// FlippedHorizontally reports whether rendering mirrors left-right
func (img *Image) FlippedHorizontally() bool {
	return img.flippedHorizontally
}

// FlippedVertically reports whether rendering mirrors top-bottom
func (img *Image) FlippedVertically() bool {
	return img.flippedVertically
}

// Flip toggles the mirror flags
func (img *Image) Flip(horizontal, vertical bool) {
	if horizontal {
		img.flippedHorizontally = !img.flippedHorizontally
	}
	if vertical {
		img.flippedVertically = !img.flippedVertically
	}
}

// ResizeByHandle drags a handle to point, toggling the mirror flags
// when the drag crosses an opposite edge
func (img *Image) ResizeByHandle(h geom.Handle, point geom.Point) geom.Handle {
	r, newHandle, flippedH, flippedV := geom.Resize(img.bounds, h, point)
	img.bounds = r
	img.Flip(flippedH, flippedV)
	return newHandle
}

// HitTest reports whether p falls inside the image's bounds
func (img *Image) HitTest(p geom.Point) bool {
	return img.bounds.Contains(p)
}

// Record returns the image graphic's persisted form
func (img *Image) Record() Record {
	rec := img.record(KindImage)
	if len(img.data) > 0 {
		rec[KeyContents] = img.data
	}
	rec[KeyFlippedHorizontally] = img.flippedHorizontally
	rec[KeyFlippedVertically] = img.flippedVertically
	return rec
}

// Restore replaces the image graphic's state from a record. An
// unreadable payload leaves an empty image and reports a warning.
func (img *Image) Restore(rec Record) []Warning {
	warnings := img.restore(rec)

	img.data = nil
	img.naturalSize = geom.Size{}
	if data, ok := recBytes(rec, KeyContents); ok {
		if err := img.SetData(data); err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnBadImage,
				Message: "unreadable image payload, dropping it",
				Detail:  err.Error(),
			})
		}
	} else if _, present := rec[KeyContents]; present {
		warnings = append(warnings, Warning{
			Code:    WarnBadImage,
			Message: "image payload is not binary data, dropping it",
		})
	}

	img.flippedHorizontally = recBool(rec, KeyFlippedHorizontally, false)
	img.flippedVertically = recBool(rec, KeyFlippedVertically, false)
	return warnings
}
