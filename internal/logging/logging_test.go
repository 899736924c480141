package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestConfigureStderr(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := Configure(Options{Level: "warn", Stderr: &buf})
	require.NoError(t, err)
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=shown")
	require.Contains(t, buf.String(), "k=1")
}

func TestConfigureFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "formkit.log")
	logger, closeFn, err := Configure(Options{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("window created", "id", 3)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	require.Equal(t, "window created", rec["msg"])
	require.Equal(t, float64(3), rec["id"])
}

func TestTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace", "events.jsonl")
	_, _, err := Configure(Options{Trace: path, Stderr: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = setTrace("") })
	require.True(t, TraceEnabled())

	Trace("popup.open", map[string]int{"rows": 2})
	Trace("app.exit", nil)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var events []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry struct {
			Event   string         `json:"event"`
			Payload map[string]int `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		events = append(events, entry.Event)
		if entry.Event == "popup.open" {
			require.Equal(t, 2, entry.Payload["rows"])
		}
	}
	require.Equal(t, []string{"popup.open", "app.exit"}, events)
}

func TestTraceDisabled(t *testing.T) {
	require.NoError(t, setTrace(""))
	require.False(t, TraceEnabled())
	require.NotPanics(t, func() { Trace("ignored", 1) })
}
