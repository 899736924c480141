// Package logging builds the slog logger for formkit commands and appends
// structured trace entries when tracing is enabled.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Options selects the log destination and level.
type Options struct {
	// File receives JSON records; empty writes text records to Stderr.
	File   string
	Level  string
	// Trace is the JSON lines file Trace appends to; empty disables tracing.
	Trace  string
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

var (
	traceMu   sync.Mutex
	tracePath string
)

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("logging: %w", err)
	}
	return l, nil
}

// Configure returns a logger for opts and sets the trace destination. The
// returned close func releases the log file, if any.
func Configure(opts Options) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if err := setTrace(opts.Trace); err != nil {
		return nil, nil, err
	}

	hopts := &slog.HandlerOptions{Level: level}
	if strings.TrimSpace(opts.File) == "" {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		return slog.New(slog.NewTextHandler(w, hopts)), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("unable to create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, hopts)), f.Close, nil
}

func setTrace(path string) error {
	traceMu.Lock()
	defer traceMu.Unlock()
	path = strings.TrimSpace(path)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("unable to create trace directory: %w", err)
		}
	}
	tracePath = path
	return nil
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return tracePath != ""
}

// Trace appends a structured JSON entry to the trace file when tracing is
// enabled.
func Trace(event string, payload any) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if tracePath == "" {
		return
	}

	entry := struct {
		Time    time.Time `json:"time"`
		Event   string    `json:"event"`
		Payload any       `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	f, err := os.OpenFile(tracePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace logging failed: %v\n", err)
		return
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}
