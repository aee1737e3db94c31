package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if got, want := cfg.Port, "4466"; got != want {
		t.Errorf("got Port = %q, want %q", got, want)
	}
	if got, want := cfg.DBPath, "data/sketch.db"; got != want {
		t.Errorf("got DBPath = %q, want %q", got, want)
	}
	if got, want := cfg.ReadTimeout, 10; got != want {
		t.Errorf("got ReadTimeout = %d, want %d", got, want)
	}
	if got, want := cfg.WriteTimeout, 10; got != want {
		t.Errorf("got WriteTimeout = %d, want %d", got, want)
	}
	if got, want := cfg.RenderScale, 1.0; got != want {
		t.Errorf("got RenderScale = %v, want %v", got, want)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketchd.yaml")
	yaml := `
port: "9000"
db_path: /var/lib/sketchd/sketch.db
read_timeout: 30
render_scale: 2.5
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got, want := cfg.Port, "9000"; got != want {
		t.Errorf("got Port = %q, want %q", got, want)
	}
	if got, want := cfg.DBPath, "/var/lib/sketchd/sketch.db"; got != want {
		t.Errorf("got DBPath = %q, want %q", got, want)
	}
	if got, want := cfg.ReadTimeout, 30; got != want {
		t.Errorf("got ReadTimeout = %d, want %d", got, want)
	}
	if got, want := cfg.RenderScale, 2.5; got != want {
		t.Errorf("got RenderScale = %v, want %v", got, want)
	}

	// Keys absent from the file keep their defaults.
	if got, want := cfg.WriteTimeout, 10; got != want {
		t.Errorf("got WriteTimeout = %d, want %d", got, want)
	}
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketchd.yaml")
	if err := os.WriteFile(path, []byte("port: [not, a, scalar"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketchd.yaml")
	if err := os.WriteFile(path, []byte("port: \"9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SKETCHD_PORT", "8123")
	t.Setenv("SKETCHD_DB_PATH", "mem.db")
	t.Setenv("SKETCHD_READ_TIMEOUT", "5")
	t.Setenv("SKETCHD_WRITE_TIMEOUT", "7")
	t.Setenv("SKETCHD_RENDER_SCALE", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// The environment wins over the file.
	if got, want := cfg.Port, "8123"; got != want {
		t.Errorf("got Port = %q, want %q", got, want)
	}
	if got, want := cfg.DBPath, "mem.db"; got != want {
		t.Errorf("got DBPath = %q, want %q", got, want)
	}
	if got, want := cfg.ReadTimeout, 5; got != want {
		t.Errorf("got ReadTimeout = %d, want %d", got, want)
	}
	if got, want := cfg.WriteTimeout, 7; got != want {
		t.Errorf("got WriteTimeout = %d, want %d", got, want)
	}
	if got, want := cfg.RenderScale, 3.0; got != want {
		t.Errorf("got RenderScale = %v, want %v", got, want)
	}
}

func TestLoadIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("SKETCHD_READ_TIMEOUT", "soon")
	t.Setenv("SKETCHD_RENDER_SCALE", "big")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, want := cfg.ReadTimeout, 10; got != want {
		t.Errorf("got ReadTimeout = %d, want %d", got, want)
	}
	if got, want := cfg.RenderScale, 1.0; got != want {
		t.Errorf("got RenderScale = %v, want %v", got, want)
	}
}

func TestLoadClampsRenderScale(t *testing.T) {
	t.Setenv("SKETCHD_RENDER_SCALE", "-2")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, want := cfg.RenderScale, 1.0; got != want {
		t.Errorf("got RenderScale = %v, want %v", got, want)
	}
}

func TestAddr(t *testing.T) {
	cfg := &Config{Port: "4466"}
	if got, want := cfg.Addr(), ":4466"; got != want {
		t.Errorf("got Addr() = %q, want %q", got, want)
	}
}
