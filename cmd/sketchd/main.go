// Command sketchd serves sketch documents over HTTP: storage, editing
// operations, undo, rasterized previews, and SVG export.
package main

import (
	"context"
	"log"
	"os"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/MaddTheSane/Sketch/internal/config"
	"github.com/MaddTheSane/Sketch/internal/server"
	"github.com/MaddTheSane/Sketch/store"
)

func main() {
	cfg, err := config.Load(os.Getenv("SKETCHD_CONFIG"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	st := store.New(db)
	if err := st.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	app := server.New(cfg, st).App()

	log.Printf("Starting sketchd on %s (db: %s)", cfg.Addr(), cfg.DBPath)
	if err := app.Listen(cfg.Addr()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
