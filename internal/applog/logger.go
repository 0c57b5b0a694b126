// Package applog builds the process-wide structured logger. A Bubble Tea
// program owns the whole terminal, so nothing may write to stdout/stderr
// while the UI is running (internal/trace/manager.go notes exactly this:
// "log.Printf interferes with the Bubble Tea rendering"); logs instead go
// to a file, in JSON, via log/slog.
package applog

import (
	"io"
	"log/slog"
	"os"
)

// New opens logPath (truncating if it exists) and returns a slog.Logger
// writing JSON records to it. verbose lowers the level to Debug; the
// default is Info. If logPath is empty, logs are discarded — useful for
// tests and the simulator backend, where there is no operator watching a
// log file anyway.
func New(logPath string, verbose bool) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer
	closeFn := func() error { return nil }
	if logPath == "" {
		w = io.Discard
	} else {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = f.Close
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closeFn, nil
}
