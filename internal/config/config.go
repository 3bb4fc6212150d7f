// Package config loads all runtime configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for hubctl.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Log     LogConfig
	HTTP    HTTPConfig
	UI      UIConfig
	OTel    OTelConfig
}

// APIConfig locates the backend.
type APIConfig struct {
	BaseURL string `env:"HUB_API_URL" envDefault:"http://localhost:4000/v1"`
}

// SessionConfig selects where the signed-in session is persisted. The file
// driver assumes one writer at a time; sqlite tolerates concurrent processes.
type SessionConfig struct {
	Driver string `env:"HUB_SESSION_DRIVER" envDefault:"file"` // "file", "sqlite" or "memory"
	File   string `env:"HUB_SESSION_FILE"`                     // default: <user config dir>/hubctl/session.json
	DBFile string `env:"HUB_SESSION_DB"`                       // default: <user config dir>/hubctl/session.db
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"warn"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// HTTPConfig holds settings for the serve command.
type HTTPConfig struct {
	Port int `env:"HUB_HTTP_PORT" envDefault:"3000"`
}

// UIConfig locates the built single-page UI served by the serve command.
type UIConfig struct {
	Dir string `env:"HUB_UI_DIR" envDefault:"ui/dist"`
}

// OTelConfig holds OpenTelemetry exporter settings.
type OTelConfig struct {
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads configuration from environment variables, applies defaults,
// and returns an error naming the variable at fault.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.Session.Driver {
	case "file", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("HUB_SESSION_DRIVER: unsupported driver %q", cfg.Session.Driver)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT: unsupported format %q", cfg.Log.Format)
	}
	if cfg.API.BaseURL == "" {
		return nil, errors.New("HUB_API_URL must not be empty")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("HUB_HTTP_PORT: %d out of range", cfg.HTTP.Port)
	}

	if cfg.Session.File == "" || cfg.Session.DBFile == "" {
		dir, err := defaultStateDir()
		if err != nil {
			return nil, err
		}
		if cfg.Session.File == "" {
			cfg.Session.File = filepath.Join(dir, "session.json")
		}
		if cfg.Session.DBFile == "" {
			cfg.Session.DBFile = filepath.Join(dir, "session.db")
		}
	}
	return cfg, nil
}

func defaultStateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir (set HUB_SESSION_FILE): %w", err)
	}
	return filepath.Join(base, "hubctl"), nil
}
