package model

import (
	"github.com/MaddTheSane/Sketch/geom"
)

// DefaultHistoryLimit bounds how many edits a document retains
const DefaultHistoryLimit = 100

// Edit is a reversible change to a document. Apply performs the edit
// and returns its inverse, so undoing is applying the recorded
// inverse and keeping its return value for redo. Edits mutate the
// document directly and record nothing.
type Edit interface {
	// Label names the change for undo/redo menus, e.g. "Move".
	Label() string

	// Apply performs the edit on d and returns its inverse.
	Apply(d *Document) Edit
}

// History holds the undo and redo stacks of a document. Recording a
// new edit clears the redo stack; exceeding the limit drops the
// oldest undo entry.
type History struct {
	limit int
	undo  []Edit
	redo  []Edit
}

func newHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

func (h *History) record(e Edit) {
	h.undo = append(h.undo, e)
	if len(h.undo) > h.limit {
		h.undo = h.undo[1:]
	}
	h.redo = h.redo[:0]
}

// CanUndo reports whether an edit is available to undo
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether an undone edit is available to redo
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoLabel returns the label of the edit Undo would revert
func (h *History) UndoLabel() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].Label()
}

// RedoLabel returns the label of the edit Redo would reapply
func (h *History) RedoLabel() string {
	if len(h.redo) == 0 {
		return ""
	}
	return h.redo[len(h.redo)-1].Label()
}

// ============================================================================
// Concrete edits
// ============================================================================

// insertEdit puts a graphic back at an index; its inverse removes it
type insertEdit struct {
	index   int
	graphic Graphic
	label   string
}

func (e insertEdit) Label() string { return e.label }

func (e insertEdit) Apply(d *Document) Edit {
	d.insertAt(e.index, e.graphic)
	return removeEdit{index: e.index, label: e.label}
}

// removeEdit takes a graphic out of the list; its inverse reinserts it
type removeEdit struct {
	index int
	label string
}

func (e removeEdit) Label() string { return e.label }

func (e removeEdit) Apply(d *Document) Edit {
	g := d.removeAt(e.index)
	return insertEdit{index: e.index, graphic: g, label: e.label}
}

// boundsEdit restores a graphic's previous bounds. When the original
// change flipped a mirror-tracking graphic, the edit toggles the same
// flags back; toggling is its own inverse.
type boundsEdit struct {
	index  int
	bounds geom.Rect
	flipH  bool
	flipV  bool
	label  string
}

func (e boundsEdit) Label() string { return e.label }

func (e boundsEdit) Apply(d *Document) Edit {
	g := d.graphicAt(e.index)
	if g == nil {
		return e
	}

	inverse := e
	inverse.bounds = g.Bounds()
	g.SetBounds(e.bounds)
	if f, ok := g.(Flippable); ok && (e.flipH || e.flipV) {
		f.Flip(e.flipH, e.flipV)
	}
	return inverse
}

// styleEdit restores a graphic's previous style
type styleEdit struct {
	index int
	style Style
	label string
}

func (e styleEdit) Label() string { return e.label }

func (e styleEdit) Apply(d *Document) Edit {
	g := d.graphicAt(e.index)
	if g == nil {
		return e
	}

	inverse := e
	inverse.style = g.Style()
	g.SetStyle(e.style)
	return inverse
}

// textEdit restores a text graphic's previous content and font size
type textEdit struct {
	index    int
	text     string
	fontSize float64
	label    string
}

func (e textEdit) Label() string { return e.label }

func (e textEdit) Apply(d *Document) Edit {
	t, ok := d.graphicAt(e.index).(*Text)
	if !ok {
		return e
	}

	inverse := e
	inverse.text = t.Text()
	inverse.fontSize = t.FontSize()
	t.SetText(e.text)
	t.SetFontSize(e.fontSize)
	return inverse
}

// pointsEdit restores a line's previous endpoints
type pointsEdit struct {
	index int
	begin geom.Point
	end   geom.Point
	label string
}

func (e pointsEdit) Label() string { return e.label }

func (e pointsEdit) Apply(d *Document) Edit {
	l, ok := d.graphicAt(e.index).(*Line)
	if !ok {
		return e
	}

	inverse := e
	inverse.begin = l.BeginPoint()
	inverse.end = l.EndPoint()
	l.SetPoints(e.begin, e.end)
	return inverse
}

// reorderEdit moves a graphic between z-order positions
type reorderEdit struct {
	from  int
	to    int
	label string
}

func (e reorderEdit) Label() string { return e.label }

func (e reorderEdit) Apply(d *Document) Edit {
	g := d.removeAt(e.from)
	d.insertAt(e.to, g)
	return reorderEdit{from: e.to, to: e.from, label: e.label}
}

// canvasSizeEdit restores the document's previous canvas size
type canvasSizeEdit struct {
	size  geom.Size
	label string
}

func (e canvasSizeEdit) Label() string { return e.label }

func (e canvasSizeEdit) Apply(d *Document) Edit {
	inverse := e
	inverse.size = d.canvasSize
	d.canvasSize = e.size
	return inverse
}

// compoundEdit groups edits recorded by one operation. Undoing
// applies the inverses in reverse order.
type compoundEdit struct {
	edits []Edit
	label string
}

func (e compoundEdit) Label() string { return e.label }

func (e compoundEdit) Apply(d *Document) Edit {
	inverses := make([]Edit, 0, len(e.edits))
	for i := len(e.edits) - 1; i >= 0; i-- {
		inverses = append(inverses, e.edits[i].Apply(d))
	}
	return compoundEdit{edits: inverses, label: e.label}
}
