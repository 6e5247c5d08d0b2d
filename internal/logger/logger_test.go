package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Config{})

	log.Info("server started", "transport", "stdio")

	out := buf.String()
	assert.Contains(t, out, "server started")
	assert.Contains(t, out, "transport=stdio")
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Config{JSON: true})

	log.Info("server started", "transport", "stdio")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "server started", entry["msg"])
	assert.Equal(t, "stdio", entry["transport"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Config{Level: slog.LevelWarn})

	log.Debug("hidden")
	log.Info("also hidden")
	log.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNewWithWriter_LevelVarAdjustsAtRuntime(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	log := NewWithWriter(&buf, Config{Level: level})

	log.Debug("before")
	level.Set(slog.LevelDebug)
	log.Debug("after")

	out := buf.String()
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "after")
}

func TestNewNop_DiscardsOutput(t *testing.T) {
	log := NewNop()
	require.NotNil(t, log)
	log.Error("nobody sees this")
}
