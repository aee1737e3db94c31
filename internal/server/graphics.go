package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/MaddTheSane/Sketch/geom"
	"github.com/MaddTheSane/Sketch/grid"
	"github.com/MaddTheSane/Sketch/model"
)

func parseIndex(c fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("index"))
}

// indexError renders an out-of-range graphic index.
func indexError(c fiber.Ctx, err error) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
}

// listGraphics returns every graphic's record, front to back.
func (s *Server) listGraphics(c fiber.Ctx) error {
	sess, err := s.session(c.Params("id"))
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	graphics := sess.doc.Graphics()
	records := make([]model.Record, len(graphics))
	for i, g := range graphics {
		records[i] = g.Record()
	}
	return c.JSON(fiber.Map{"count": len(records), "graphics": records})
}

// addGraphic creates a graphic from a record in the request body and
// inserts it at the front of the z-order. The record's classIdentifier
// picks the kind; everything else is optional and defaults like any
// other restore.
func (s *Server) addGraphic(c fiber.Ctx) error {
	id := c.Params("id")

	var rec model.Record
	if err := json.Unmarshal(c.Body(), &rec); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	g, warnings := model.GraphicFromRecord(rec)
	if g == nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": model.FormatWarnings(warnings)})
	}

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.doc.AddGraphic(g)
	if err := s.save(id, sess.doc); err != nil {
		return saveError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"index":    0,
		"graphic":  g.Record(),
		"warnings": warningStrings(warnings),
	})
}

// getGraphic returns one graphic's record.
func (s *Server) getGraphic(c fiber.Ctx) error {
	index, err := parseIndex(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid graphic index"})
	}

	sess, err := s.session(c.Params("id"))
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	g := sess.doc.GraphicAt(index)
	if g == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "graphic not found"})
	}
	return c.JSON(fiber.Map{"index": index, "graphic": g.Record()})
}

// updateGraphic patches a graphic from a partial record in the request
// body. Unknown keys are ignored; the patch is one undo step.
func (s *Server) updateGraphic(c fiber.Ctx) error {
	id := c.Params("id")
	index, err := parseIndex(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid graphic index"})
	}

	var props model.Record
	if err := json.Unmarshal(c.Body(), &props); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.doc.ApplyProperties(index, props); err != nil {
		return indexError(c, err)
	}
	if err := s.save(id, sess.doc); err != nil {
		return saveError(c, err)
	}
	return c.JSON(fiber.Map{"index": index, "graphic": sess.doc.GraphicAt(index).Record()})
}

// removeGraphic deletes the graphic at an index.
func (s *Server) removeGraphic(c fiber.Ctx) error {
	id := c.Params("id")
	index, err := parseIndex(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid graphic index"})
	}

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	g, err := sess.doc.RemoveGraphicAt(index)
	if err != nil {
		return indexError(c, err)
	}
	if err := s.save(id, sess.doc); err != nil {
		return saveError(c, err)
	}
	return c.JSON(fiber.Map{"removed": g.Record()})
}

type moveRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// moveGraphic translates a graphic by a delta.
func (s *Server) moveGraphic(c fiber.Ctx) error {
	id := c.Params("id")
	index, err := parseIndex(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid graphic index"})
	}

	var req moveRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.doc.MoveGraphicBy(index, req.DX, req.DY); err != nil {
		return indexError(c, err)
	}
	if err := s.save(id, sess.doc); err != nil {
		return saveError(c, err)
	}
	return c.JSON(fiber.Map{"index": index, "graphic": sess.doc.GraphicAt(index).Record()})
}

type resizeRequest struct {
	Handle string  `json:"handle"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`

	// Snap, when positive, snaps the dragged point to a grid of that
	// spacing before resizing.
	Snap float64 `json:"snap"`
}

// resizeGraphic drags one of a graphic's resize handles to a point and
// reports the handle's identity afterwards, which changes when the
// drag crossed an opposite edge.
func (s *Server) resizeGraphic(c fiber.Ctx) error {
	id := c.Params("id")
	index, err := parseIndex(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid graphic index"})
	}

	var req resizeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	handle, err := geom.ParseHandle(req.Handle)
	if err != nil || handle == geom.NoHandle {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "handle required"})
	}

	point := geom.Point{X: req.X, Y: req.Y}
	if req.Snap > 0 {
		g := grid.New()
		g.SetSpacing(req.Snap)
		g.SetConstraining(true)
		point = g.ConstrainedPoint(point)
	}

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	newHandle, err := sess.doc.ResizeGraphic(index, handle, point)
	if err != nil {
		return indexError(c, err)
	}
	if err := s.save(id, sess.doc); err != nil {
		return saveError(c, err)
	}
	return c.JSON(fiber.Map{
		"index":   index,
		"handle":  newHandle.String(),
		"graphic": sess.doc.GraphicAt(index).Record(),
	})
}

// bringToFront moves a graphic to the front of the z-order.
func (s *Server) bringToFront(c fiber.Ctx) error {
	return s.reorder(c, true)
}

// sendToBack moves a graphic to the back of the z-order.
func (s *Server) sendToBack(c fiber.Ctx) error {
	return s.reorder(c, false)
}

func (s *Server) reorder(c fiber.Ctx, toFront bool) error {
	id := c.Params("id")
	index, err := parseIndex(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid graphic index"})
	}

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	g := sess.doc.GraphicAt(index)
	if g == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "graphic not found"})
	}

	if toFront {
		err = sess.doc.BringToFront(index)
	} else {
		err = sess.doc.SendToBack(index)
	}
	if err != nil {
		return indexError(c, err)
	}
	if err := s.save(id, sess.doc); err != nil {
		return saveError(c, err)
	}

	newIndex := sess.doc.IndexOf(g.ID())
	return c.JSON(fiber.Map{"index": newIndex, "graphic": g.Record()})
}

// graphicUnderPoint hit-tests the document at a point and returns the
// frontmost graphic there.
func (s *Server) graphicUnderPoint(c fiber.Ctx) error {
	x, errX := strconv.ParseFloat(c.Query("x"), 64)
	y, errY := strconv.ParseFloat(c.Query("y"), 64)
	if errX != nil || errY != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "x and y query parameters required"})
	}

	sess, err := s.session(c.Params("id"))
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	g, index := sess.doc.GraphicUnderPoint(geom.Point{X: x, Y: y})
	if g == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "no graphic at point"})
	}
	return c.JSON(fiber.Map{"index": index, "graphic": g.Record()})
}

// history reports what undo and redo would do next.
func (s *Server) history(c fiber.Ctx) error {
	sess, err := s.session(c.Params("id"))
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return c.JSON(fiber.Map{
		"can_undo":   sess.doc.CanUndo(),
		"undo_label": sess.doc.UndoLabel(),
		"can_redo":   sess.doc.CanRedo(),
		"redo_label": sess.doc.RedoLabel(),
	})
}

// undo reverts the most recent edit.
func (s *Server) undo(c fiber.Ctx) error {
	id := c.Params("id")

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	label, ok := sess.doc.Undo()
	if !ok {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "nothing to undo"})
	}
	if err := s.save(id, sess.doc); err != nil {
		return saveError(c, err)
	}
	return c.JSON(fiber.Map{"undone": label})
}

// redo reapplies the most recently undone edit.
func (s *Server) redo(c fiber.Ctx) error {
	id := c.Params("id")

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	label, ok := sess.doc.Redo()
	if !ok {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "nothing to redo"})
	}
	if err := s.save(id, sess.doc); err != nil {
		return saveError(c, err)
	}
	return c.JSON(fiber.Map{"redone": label})
}
