package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	logger := New(&Config{Level: "info", Format: "json", Service: "portfolio", Version: "1.0.0"})
	assert.NotNil(t, logger)
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&Config{Level: "info", Format: "json", Service: "portfolio", Version: "1.0.0"}, &buf)

	logger.Info("pages written", slog.Int("count", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pages written", entry["msg"])
	assert.Equal(t, "portfolio", entry["service_name"])
	assert.Equal(t, "1.0.0", entry["service_version"])
	assert.EqualValues(t, 3, entry["count"])
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&Config{Level: "debug", Format: "text", Service: "portfolio"}, &buf)

	logger.Debug("debug message")

	assert.Contains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "portfolio")
}

func TestNewWithWriter_TraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&Config{Level: "trace", Format: "json"}, &buf)

	logger.Log(context.Background(), LevelTrace, "record fetched")
	assert.Contains(t, buf.String(), "record fetched")

	buf.Reset()
	logger = NewWithWriter(&Config{Level: "debug", Format: "json"}, &buf)
	logger.Log(context.Background(), LevelTrace, "record fetched")
	assert.Empty(t, buf.String())
}

func TestNewWithWriter_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&Config{Level: "info", Format: "pretty", Service: "portfolio"}, &buf)

	logger.Info("pretty message", slog.String("password", "hunter2"))

	output := buf.String()
	assert.Contains(t, output, "pretty message")
	assert.NotContains(t, output, "hunter2")
}

func TestNewWithWriter_WithFileConfig(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "portfolio.log")

	var buf bytes.Buffer
	logger := NewWithWriter(&Config{
		Level:   "info",
		Format:  "json",
		Service: "portfolio",
		File: FileConfig{
			Enabled:    true,
			Path:       logFile,
			MaxSizeMB:  1,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}, &buf)

	logger.Info("written to both")

	assert.Contains(t, buf.String(), "written to both")
	assert.FileExists(t, logFile)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to both")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"trace", LevelTrace},
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestSlogToCharmLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    slog.Level
		expected log.Level
	}{
		{"trace maps to debug", LevelTrace, log.DebugLevel},
		{"debug", slog.LevelDebug, log.DebugLevel},
		{"info", slog.LevelInfo, log.InfoLevel},
		{"warn", slog.LevelWarn, log.WarnLevel},
		{"error", slog.LevelError, log.ErrorLevel},
		{"very high maps to error", slog.Level(12), log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slogToCharmLevel(tt.input))
		})
	}
}

func TestRedactHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	h := &redactHandler{next: slog.NewJSONHandler(&buf, nil), replace: NewReplaceAttr()}

	logger := slog.New(h).With(slog.String("token", "abc")).WithGroup("remote")
	logger.Info("fetch", slog.String("user", "nishant"))

	output := buf.String()
	assert.NotContains(t, output, `"abc"`)
	assert.Contains(t, output, "remote")
	assert.Contains(t, output, "nishant")
}

func TestTeeHandler_Enabled(t *testing.T) {
	debug := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	errOnly := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})

	assert.True(t, (&teeHandler{console: errOnly, file: debug}).Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, (&teeHandler{console: errOnly, file: errOnly}).Enabled(context.Background(), slog.LevelInfo))
}

func TestTeeHandler_LevelsPerSide(t *testing.T) {
	var console, file bytes.Buffer
	logger := slog.New(&teeHandler{
		console: slog.NewJSONHandler(&console, &slog.HandlerOptions{Level: slog.LevelInfo}),
		file:    slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: LevelTrace}),
	})

	logger.Info("pages written")
	assert.Contains(t, console.String(), "pages written")
	assert.Contains(t, file.String(), "pages written")

	console.Reset()
	file.Reset()

	logger.Log(context.Background(), LevelTrace, "shell written")
	assert.Empty(t, console.String())
	assert.Contains(t, file.String(), "shell written")
}

func TestTeeHandler_RecordAttrsReachBothSides(t *testing.T) {
	var console, file bytes.Buffer
	base := slog.New(&teeHandler{
		console: slog.NewJSONHandler(&console, nil),
		file:    slog.NewJSONHandler(&file, nil),
	})

	ctx := WithRecord(WithContext(context.Background(), base), "post", "hello-world")
	FromContext(ctx).WithGroup("build").Info("rendered", slog.Int("words", 250))

	for _, out := range []string{console.String(), file.String()} {
		assert.Contains(t, out, `"record_kind":"post"`)
		assert.Contains(t, out, `"record_id":"hello-world"`)
		assert.Contains(t, out, `"build":{"words":250}`)
	}
}
