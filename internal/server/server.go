// Package server exposes sketch documents over HTTP.
//
// The server keeps one live document per stored row, loaded on first
// touch and written back after every edit. Editing state that the
// persisted form does not carry, the undo history above all, lives on
// the live document and survives between requests for as long as the
// process runs.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/MaddTheSane/Sketch/internal/config"
	"github.com/MaddTheSane/Sketch/model"
	"github.com/MaddTheSane/Sketch/store"
)

// Server wires the document store and the render pipeline into HTTP
// routes.
type Server struct {
	cfg   *config.Config
	store *store.Store

	mu       sync.Mutex
	sessions map[string]*session
}

// session pairs a live document with the lock that serializes access
// to it. Document carries no locking of its own.
type session struct {
	mu  sync.Mutex
	doc *model.Document
}

// New creates a server backed by st.
func New(cfg *config.Config, st *store.Store) *Server {
	return &Server{
		cfg:      cfg,
		store:    st,
		sessions: make(map[string]*session),
	}
}

// App assembles the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
		AppName:      "sketchd",
	})

	app.Use(recover.New())
	app.Use(Logger())

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	api := app.Group("/api/v1")

	api.Get("/kinds", s.listKinds)

	api.Get("/documents", s.listDocuments)
	api.Post("/documents", s.createDocument)
	api.Get("/documents/:id", s.getDocument)
	api.Put("/documents/:id", s.replaceDocument)
	api.Patch("/documents/:id", s.renameDocument)
	api.Delete("/documents/:id", s.deleteDocument)

	api.Put("/documents/:id/canvas", s.setCanvasSize)
	api.Get("/documents/:id/print-info", s.getPrintInfo)
	api.Put("/documents/:id/print-info", s.putPrintInfo)

	api.Get("/documents/:id/history", s.history)
	api.Post("/documents/:id/undo", s.undo)
	api.Post("/documents/:id/redo", s.redo)

	api.Get("/documents/:id/graphics", s.listGraphics)
	api.Post("/documents/:id/graphics", s.addGraphic)

	// The static "at" route must come before the ":index" routes.
	api.Get("/documents/:id/graphics/at", s.graphicUnderPoint)
	api.Get("/documents/:id/graphics/:index", s.getGraphic)
	api.Patch("/documents/:id/graphics/:index", s.updateGraphic)
	api.Delete("/documents/:id/graphics/:index", s.removeGraphic)
	api.Post("/documents/:id/graphics/:index/move", s.moveGraphic)
	api.Post("/documents/:id/graphics/:index/resize", s.resizeGraphic)
	api.Post("/documents/:id/graphics/:index/front", s.bringToFront)
	api.Post("/documents/:id/graphics/:index/back", s.sendToBack)

	api.Get("/documents/:id/render.png", s.renderPNG)
	api.Get("/documents/:id/export.svg", s.exportSVG)
	api.Get("/documents/:id/export.json", s.exportJSON)

	return app
}

// session returns the live session for a document, loading it from the
// store on first use.
func (s *Server) session(id string) (*session, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[id]; ok {
		s.mu.Unlock()
		return sess, nil
	}
	s.mu.Unlock()

	// Load outside the map lock; decoding can be slow for image-heavy
	// documents.
	stored, err := s.store.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	sess := &session{doc: stored.Document}
	s.sessions[id] = sess
	return sess, nil
}

// adopt registers a live session for a document the server just
// created or replaced.
func (s *Server) adopt(id string, doc *model.Document) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &session{doc: doc}
	s.sessions[id] = sess
	return sess
}

func (s *Server) evict(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// save writes a session's document back to its store row. Callers hold
// the session lock.
func (s *Server) save(id string, doc *model.Document) error {
	_, err := s.store.Put(context.Background(), id, doc)
	return err
}

// loadError renders a session load failure.
func loadError(c fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "document not found"})
	}
	log.Printf("[API] load document: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load document"})
}

// saveError renders a store write failure.
func saveError(c fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "document not found"})
	}
	log.Printf("[API] save document: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save document"})
}

// warningStrings renders decode warnings for a JSON response. The
// result is never nil, so the field serializes as [] rather than null.
func warningStrings(warnings []model.Warning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}
