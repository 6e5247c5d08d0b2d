// Package logger provides the diagnostic logging infrastructure for teams-mcp.
//
// All log output goes to stderr: stdout is reserved for MCP protocol frames,
// so writing diagnostics there would corrupt the transport.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a type alias for *slog.Logger. Components accept logger.Logger as
// a constructor dependency and add context via With().
type Logger = *slog.Logger

// Config defines logger configuration options.
type Config struct {
	// Level sets the minimum log level. A *slog.LevelVar allows runtime
	// adjustment (the --verbose flag). Default: slog.LevelInfo.
	Level slog.Leveler

	// JSON enables JSON format output. Default: false (text format).
	JSON bool
}

// New creates a logger writing to os.Stderr.
func New(cfg Config) Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter creates a logger that writes to the specified writer.
// Useful for capturing output in tests.
func NewWithWriter(w io.Writer, cfg Config) Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
