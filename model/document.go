package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MaddTheSane/Sketch/geom"
)

// DefaultCanvasSize matches a letter page in points
var DefaultCanvasSize = geom.Size{Width: 612, Height: 792}

// Document owns a canvas and a z-ordered list of graphics. Index 0 is
// the frontmost graphic; renderers draw the list back to front and
// hit testing walks it front to back. Every mutating method records a
// reversible edit on the document's history.
//
// A document is not safe for concurrent mutation; callers that share
// one across goroutines serialize access themselves.
type Document struct {
	canvasSize geom.Size
	printInfo  []byte
	graphics   []Graphic
	history    *History
}

// NewDocument creates an empty document with the default canvas size
func NewDocument() *Document {
	return &Document{
		canvasSize: DefaultCanvasSize,
		history:    newHistory(DefaultHistoryLimit),
	}
}

// NewDocumentWithSize creates an empty document with the given canvas
func NewDocumentWithSize(size geom.Size) *Document {
	d := NewDocument()
	if size.Width > 0 && size.Height > 0 {
		d.canvasSize = size
	}
	return d
}

// CanvasSize returns the canvas dimensions
func (d *Document) CanvasSize() geom.Size {
	return d.canvasSize
}

// SetCanvasSize changes the canvas dimensions, recording an edit
func (d *Document) SetCanvasSize(size geom.Size) {
	if size == d.canvasSize {
		return
	}
	before := d.canvasSize
	d.canvasSize = size
	d.history.record(canvasSizeEdit{size: before, label: "Change Canvas Size"})
}

// PrintConfiguration returns the opaque print setup blob carried with
// the document
func (d *Document) PrintConfiguration() []byte {
	return d.printInfo
}

// SetPrintConfiguration replaces the print setup blob. Print setup is
// pass-through state: it is persisted verbatim and not undoable.
func (d *Document) SetPrintConfiguration(blob []byte) {
	d.printInfo = blob
}

// GraphicCount returns the number of graphics
func (d *Document) GraphicCount() int {
	return len(d.graphics)
}

// Graphics returns the graphics front to back. The slice is a copy;
// the graphics are not.
func (d *Document) Graphics() []Graphic {
	return append([]Graphic(nil), d.graphics...)
}

// GraphicAt returns the graphic at index, or nil if out of range
func (d *Document) GraphicAt(index int) Graphic {
	return d.graphicAt(index)
}

// IndexOf returns the z-order position of the graphic with the given
// ID, or -1. Graphics carry no back-reference to their document; this
// lookup is how external references resolve.
func (d *Document) IndexOf(id uuid.UUID) int {
	for i, g := range d.graphics {
		if g.ID() == id {
			return i
		}
	}
	return -1
}

// GraphicByID returns the graphic with the given ID, or nil
func (d *Document) GraphicByID(id uuid.UUID) Graphic {
	if i := d.IndexOf(id); i >= 0 {
		return d.graphics[i]
	}
	return nil
}

// GraphicUnderPoint returns the frontmost graphic whose contents
// contain p, and its index, or (nil, -1)
func (d *Document) GraphicUnderPoint(p geom.Point) (Graphic, int) {
	for i, g := range d.graphics {
		if g.HitTest(p) {
			return g, i
		}
	}
	return nil, -1
}

// AddGraphic inserts a graphic at the front of the z-order
func (d *Document) AddGraphic(g Graphic) {
	d.insertAt(0, g)
	d.history.record(removeEdit{index: 0, label: "Insert " + string(g.Kind())})
}

// InsertGraphic inserts a graphic at a z-order position
func (d *Document) InsertGraphic(g Graphic, index int) error {
	if index < 0 || index > len(d.graphics) {
		return fmt.Errorf("insert index %d out of range [0, %d]", index, len(d.graphics))
	}
	d.insertAt(index, g)
	d.history.record(removeEdit{index: index, label: "Insert " + string(g.Kind())})
	return nil
}

// RemoveGraphicAt removes and returns the graphic at index
func (d *Document) RemoveGraphicAt(index int) (Graphic, error) {
	if err := d.checkIndex(index); err != nil {
		return nil, err
	}
	g := d.removeAt(index)
	d.history.record(insertEdit{index: index, graphic: g, label: "Remove " + string(g.Kind())})
	return g, nil
}

// MoveGraphicBy translates the graphic at index by (dx, dy)
func (d *Document) MoveGraphicBy(index int, dx, dy float64) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}

	g := d.graphics[index]
	before := g.Bounds()
	moved := before
	moved.X += dx
	moved.Y += dy
	g.SetBounds(moved)
	d.history.record(boundsEdit{index: index, bounds: before, label: "Move"})
	return nil
}

// SetGraphicBounds replaces the bounds of the graphic at index
func (d *Document) SetGraphicBounds(index int, bounds geom.Rect) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}

	g := d.graphics[index]
	before := g.Bounds()
	g.SetBounds(bounds)
	d.history.record(boundsEdit{index: index, bounds: before, label: "Resize"})
	return nil
}

// ResizeGraphic drags a handle of the graphic at index to point and
// returns the handle's identity afterwards. The recorded edit also
// restores mirror flags on graphics that track them.
func (d *Document) ResizeGraphic(index int, handle geom.Handle, point geom.Point) (geom.Handle, error) {
	if err := d.checkIndex(index); err != nil {
		return geom.NoHandle, err
	}

	g := d.graphics[index]
	before := g.Bounds()
	beforeH, beforeV := flipState(g)

	newHandle := g.ResizeByHandle(handle, point)

	afterH, afterV := flipState(g)
	d.history.record(boundsEdit{
		index:  index,
		bounds: before,
		flipH:  beforeH != afterH,
		flipV:  beforeV != afterV,
		label:  "Resize",
	})
	return newHandle, nil
}

// flipState reads the mirror flags of graphics that track them
func flipState(g Graphic) (bool, bool) {
	type flipStater interface {
		FlippedHorizontally() bool
		FlippedVertically() bool
	}
	if f, ok := g.(flipStater); ok {
		return f.FlippedHorizontally(), f.FlippedVertically()
	}
	return false, false
}

// SetGraphicStyle replaces the style of the graphic at index
func (d *Document) SetGraphicStyle(index int, style Style) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}

	g := d.graphics[index]
	before := g.Style()
	g.SetStyle(style)
	d.history.record(styleEdit{index: index, style: before, label: "Change Style"})
	return nil
}

// BringToFront moves the graphic at index to the front of the z-order
func (d *Document) BringToFront(index int) error {
	return d.reorder(index, 0, "Bring to Front")
}

// SendToBack moves the graphic at index to the back of the z-order
func (d *Document) SendToBack(index int) error {
	return d.reorder(index, len(d.graphics)-1, "Send to Back")
}

func (d *Document) reorder(from, to int, label string) error {
	if err := d.checkIndex(from); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	g := d.removeAt(from)
	d.insertAt(to, g)
	d.history.record(reorderEdit{from: to, to: from, label: label})
	return nil
}

// ============================================================================
// Undo / redo
// ============================================================================

// CanUndo reports whether an edit is available to undo
func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo reports whether an undone edit is available to redo
func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

// UndoLabel names the edit Undo would revert
func (d *Document) UndoLabel() string {
	return d.history.UndoLabel()
}

// RedoLabel names the edit Redo would reapply
func (d *Document) RedoLabel() string {
	return d.history.RedoLabel()
}

// Undo reverts the most recent edit and returns its label
func (d *Document) Undo() (string, bool) {
	h := d.history
	if len(h.undo) == 0 {
		return "", false
	}

	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, e.Apply(d))
	return e.Label(), true
}

// Redo reapplies the most recently undone edit and returns its label
func (d *Document) Redo() (string, bool) {
	h := d.history
	if len(h.redo) == 0 {
		return "", false
	}

	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, e.Apply(d))
	return e.Label(), true
}

// ============================================================================
// Raw list access used by edits
// ============================================================================

func (d *Document) graphicAt(index int) Graphic {
	if index < 0 || index >= len(d.graphics) {
		return nil
	}
	return d.graphics[index]
}

func (d *Document) insertAt(index int, g Graphic) {
	if index < 0 {
		index = 0
	}
	if index > len(d.graphics) {
		index = len(d.graphics)
	}
	d.graphics = append(d.graphics, nil)
	copy(d.graphics[index+1:], d.graphics[index:])
	d.graphics[index] = g
}

func (d *Document) removeAt(index int) Graphic {
	if index < 0 || index >= len(d.graphics) {
		return nil
	}
	g := d.graphics[index]
	d.graphics = append(d.graphics[:index], d.graphics[index+1:]...)
	return g
}

func (d *Document) checkIndex(index int) error {
	if index < 0 || index >= len(d.graphics) {
		return fmt.Errorf("graphic index %d out of range [0, %d)", index, len(d.graphics))
	}
	return nil
}
