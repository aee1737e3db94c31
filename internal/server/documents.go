package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/MaddTheSane/Sketch/geom"
	"github.com/MaddTheSane/Sketch/model"
	"github.com/MaddTheSane/Sketch/store"
)

type metaPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toMetaPayload(m store.Meta) metaPayload {
	return metaPayload{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type documentPayload struct {
	metaPayload
	Document json.RawMessage `json:"document"`
}

// listKinds reports the graphic classes the server can instantiate.
func (s *Server) listKinds(c fiber.Ctx) error {
	kinds := model.RegisteredKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return c.JSON(fiber.Map{"kinds": names})
}

// listDocuments returns metadata for every stored document.
func (s *Server) listDocuments(c fiber.Ctx) error {
	metas, err := s.store.List(context.Background())
	if err != nil {
		log.Printf("[API] list documents: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list documents"})
	}

	payload := make([]metaPayload, len(metas))
	for i, m := range metas {
		payload[i] = toMetaPayload(m)
	}
	return c.JSON(fiber.Map{"count": len(payload), "documents": payload})
}

type createDocumentRequest struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// createDocument makes a new empty document. Width and height are
// optional; leaving both out gives the default canvas.
func (s *Server) createDocument(c fiber.Ctx) error {
	var req createDocumentRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
	}
	if req.Name == "" {
		req.Name = "Untitled"
	}

	var doc *model.Document
	switch {
	case req.Width == 0 && req.Height == 0:
		doc = model.NewDocument()
	case req.Width > 0 && req.Height > 0:
		doc = model.NewDocumentWithSize(geom.Size{Width: req.Width, Height: req.Height})
	default:
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "width and height must both be positive"})
	}

	meta, err := s.store.Create(context.Background(), req.Name, doc)
	if err != nil {
		log.Printf("[API] create document: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create document"})
	}
	s.adopt(meta.ID, doc)

	return c.Status(http.StatusCreated).JSON(toMetaPayload(meta))
}

// getDocument returns a document's metadata and its full persisted
// form.
func (s *Server) getDocument(c fiber.Ctx) error {
	id := c.Params("id")

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}
	meta, err := s.store.Stat(context.Background(), id)
	if err != nil {
		return loadError(c, err)
	}

	var buf bytes.Buffer
	sess.mu.Lock()
	err = model.WriteDocument(&buf, sess.doc)
	sess.mu.Unlock()
	if err != nil {
		log.Printf("[API] encode document %s: %v", id, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encode document"})
	}

	return c.JSON(documentPayload{
		metaPayload: toMetaPayload(meta),
		Document:    json.RawMessage(buf.Bytes()),
	})
}

// replaceDocument swaps in a whole document from its persisted form.
// The live session is replaced too, which discards any undo history.
func (s *Server) replaceDocument(c fiber.Ctx) error {
	id := c.Params("id")

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}
	doc, warnings, err := model.ReadDocument(bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid document"})
	}

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	meta, err := s.store.Put(context.Background(), id, doc)
	if err != nil {
		return saveError(c, err)
	}
	sess.doc = doc

	return c.JSON(struct {
		metaPayload
		Warnings []string `json:"warnings"`
	}{toMetaPayload(meta), warningStrings(warnings)})
}

type renameDocumentRequest struct {
	Name string `json:"name"`
}

// renameDocument changes a document's display name.
func (s *Server) renameDocument(c fiber.Ctx) error {
	id := c.Params("id")

	var req renameDocumentRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name required"})
	}

	if err := s.store.Rename(context.Background(), id, req.Name); err != nil {
		return saveError(c, err)
	}
	meta, err := s.store.Stat(context.Background(), id)
	if err != nil {
		return loadError(c, err)
	}
	return c.JSON(toMetaPayload(meta))
}

// deleteDocument removes a document and drops its live session.
func (s *Server) deleteDocument(c fiber.Ctx) error {
	id := c.Params("id")

	if err := s.store.Delete(context.Background(), id); err != nil {
		return saveError(c, err)
	}
	s.evict(id)
	return c.JSON(fiber.Map{"status": "deleted"})
}

type canvasRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// setCanvasSize changes the canvas dimensions. The change is
// undoable.
func (s *Server) setCanvasSize(c fiber.Ctx) error {
	id := c.Params("id")

	var req canvasRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Width <= 0 || req.Height <= 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "width and height must both be positive"})
	}

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.doc.SetCanvasSize(geom.Size{Width: req.Width, Height: req.Height})
	if err := s.save(id, sess.doc); err != nil {
		return saveError(c, err)
	}

	size := sess.doc.CanvasSize()
	return c.JSON(fiber.Map{"width": size.Width, "height": size.Height})
}

// getPrintInfo returns the document's opaque print setup blob.
func (s *Server) getPrintInfo(c fiber.Ctx) error {
	sess, err := s.session(c.Params("id"))
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	blob := sess.doc.PrintConfiguration()
	sess.mu.Unlock()

	if len(blob) == 0 {
		return c.SendStatus(http.StatusNoContent)
	}
	c.Set("Content-Type", "application/octet-stream")
	return c.Send(blob)
}

// putPrintInfo stores the request body as the document's print setup
// blob, verbatim.
func (s *Server) putPrintInfo(c fiber.Ctx) error {
	id := c.Params("id")

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	// The request buffer is recycled after the handler returns.
	blob := append([]byte(nil), c.Body()...)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.doc.SetPrintConfiguration(blob)
	if err := s.save(id, sess.doc); err != nil {
		return saveError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
