package server

import (
	"bytes"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/MaddTheSane/Sketch/export"
	"github.com/MaddTheSane/Sketch/grid"
	"github.com/MaddTheSane/Sketch/render"
)

// renderPNG rasterizes a document. Query parameters shape the output:
// scale overrides the server default, grid draws grid lines at the
// given spacing, and selected lists z-order indexes to draw with
// resize handles.
func (s *Server) renderPNG(c fiber.Ctx) error {
	id := c.Params("id")

	scale := s.cfg.RenderScale
	if v := c.Query("scale"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid scale"})
		}
		scale = parsed
	}

	var g *grid.Grid
	if v := c.Query("grid"); v != "" {
		spacing, err := strconv.ParseFloat(v, 64)
		if err != nil || spacing <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid grid spacing"})
		}
		g = grid.New()
		g.SetSpacing(spacing)
		g.SetAlwaysShown(true)
	}

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	var selection []uuid.UUID
	if v := c.Query("selected"); v != "" {
		for _, part := range strings.Split(v, ",") {
			index, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid selection"})
			}
			gr := sess.doc.GraphicAt(index)
			if gr == nil {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid selection"})
			}
			selection = append(selection, gr.ID())
		}
	}

	r := render.NewRenderer()
	r.Scale = scale
	img, err := r.RenderEditor(sess.doc, g, selection...)
	if err != nil {
		log.Printf("[API] render document %s: %v", id, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to render document"})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("[API] encode png for %s: %v", id, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encode image"})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

// exportSVG writes the document as an SVG drawing.
func (s *Server) exportSVG(c fiber.Ctx) error {
	id := c.Params("id")

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	var buf bytes.Buffer
	if err := export.WriteSVG(&buf, sess.doc); err != nil {
		log.Printf("[API] export svg for %s: %v", id, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to export document"})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.Send(buf.Bytes())
}

// exportJSON writes the document's bare persisted form, without the
// metadata wrapper that GET /documents/:id adds.
func (s *Server) exportJSON(c fiber.Ctx) error {
	id := c.Params("id")

	sess, err := s.session(id)
	if err != nil {
		return loadError(c, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, sess.doc); err != nil {
		log.Printf("[API] export json for %s: %v", id, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to export document"})
	}

	c.Set("Content-Type", "application/json")
	return c.Send(buf.Bytes())
}
