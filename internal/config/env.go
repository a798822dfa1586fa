package config

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override file values.
const (
	EnvBaseDir     = "HTMLPUBLISH_BASE_DIR"
	EnvAnalyticsID = "HTMLPUBLISH_ANALYTICS_ID"
)

// envFiles are loaded in order. godotenv never overrides a variable that is
// already set, so the process environment wins, then .env.local, then .env.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads the env files that exist in the working directory.
func loadEnvFiles() {
	for _, name := range envFiles {
		err := godotenv.Load(name)
		switch {
		case err == nil:
			slog.Debug("Loaded environment file", slog.String("path", name))
		case stderrors.Is(err, fs.ErrNotExist):
		default:
			slog.Warn("Cannot load environment file", slog.String("path", name), slog.String("error", err.Error()))
		}
	}
}

// applyEnvOverrides copies override variables into cfg. An analytics id
// override only applies when the analytics step is configured.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvBaseDir); v != "" {
		cfg.BaseDir = v
	}
	if v := os.Getenv(EnvAnalyticsID); v != "" && cfg.Analytics != nil {
		cfg.Analytics.ID = v
	}
}
