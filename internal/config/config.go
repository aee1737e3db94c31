// Package config carries the runtime settings for the sketchd server.
//
// Settings are resolved in three layers: built-in defaults, an
// optional YAML file, and SKETCHD_* environment variables. Later
// layers win.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the settings sketchd needs at startup.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `yaml:"port"`

	// DBPath is the SQLite database file. Parent directories are
	// created on open.
	DBPath string `yaml:"db_path"`

	// ReadTimeout and WriteTimeout bound each HTTP request, in seconds.
	ReadTimeout  int `yaml:"read_timeout"`
	WriteTimeout int `yaml:"write_timeout"`

	// RenderScale is the default pixels-per-point factor for rendered
	// previews when a request does not specify one.
	RenderScale float64 `yaml:"render_scale"`
}

// Default returns the configuration used when no file and no
// environment overrides are present.
func Default() *Config {
	return &Config{
		Port:         "4466",
		DBPath:       "data/sketch.db",
		ReadTimeout:  10,
		WriteTimeout: 10,
		RenderScale:  1,
	}
}

// Load resolves the configuration. A non-empty path names a YAML file
// to merge over the defaults; a missing file is not an error, so the
// same invocation works with and without a deployed config. SKETCHD_*
// environment variables override both.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("SKETCHD_PORT", cfg.Port)
	cfg.DBPath = getEnv("SKETCHD_DB_PATH", cfg.DBPath)
	cfg.ReadTimeout = getEnvAsInt("SKETCHD_READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvAsInt("SKETCHD_WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.RenderScale = getEnvAsFloat("SKETCHD_RENDER_SCALE", cfg.RenderScale)

	if cfg.RenderScale <= 0 {
		cfg.RenderScale = 1
	}

	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
