// Package config loads non-credential settings for teams-mcp.
//
// Credentials are environment-only (see internal/auth); the optional TOML
// file at ~/.teams-mcp/config.toml carries tuning knobs that do not affect
// credential mode selection.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds all file-backed configuration.
type Settings struct {
	Graph GraphSettings `toml:"graph"`
	Log   LogSettings   `toml:"log"`
}

// GraphSettings tunes the Graph REST client.
type GraphSettings struct {
	// BaseURL overrides the Graph v1.0 endpoint. Empty means the default.
	BaseURL string `toml:"base_url"`
	// RequestsPerSecond is the sustained request rate limit. Zero means the default.
	RequestsPerSecond float64 `toml:"requests_per_second"`
	// Burst is the rate limiter burst size.
	Burst int `toml:"burst"`
}

// LogSettings tunes diagnostic logging.
type LogSettings struct {
	// Level is one of "debug", "info", "warn", "error". Default: "info".
	Level string `toml:"level"`
	// JSON switches log output to JSON format.
	JSON bool `toml:"json"`
}

// Default returns the settings used when no config file exists.
func Default() *Settings {
	return &Settings{
		Log: LogSettings{Level: "info"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".teams-mcp", "config.toml"), nil
}

// Load reads settings from path. An empty path selects DefaultPath. A missing
// file is not an error: defaults are returned.
func Load(path string) (*Settings, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	settings := Default()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return settings, nil
}

// SlogLevel converts the configured level name to a slog.Level.
// Unknown names fall back to info.
func (l LogSettings) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
