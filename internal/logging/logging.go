// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// EnvLogFile names a file that receives log output instead of the default writer.
const EnvLogFile = "DIFF2MD_LOG_FILE"

// New returns a text logger writing to w, or to the file named by
// DIFF2MD_LOG_FILE when that is set and can be opened. When the file cannot
// be opened a warning is logged to w. The returned close
// function releases the file and is safe to call when no file was opened.
func New(w io.Writer, verbose bool) (*slog.Logger, func() error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	if w == nil {
		w = io.Discard
	}

	closeFn := func() error { return nil }
	var openErr error
	path := os.Getenv(EnvLogFile)
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			w = f
			closeFn = f.Close
		} else {
			openErr = err
		}
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if openErr != nil {
		logger.Warn("cannot open log file, using default writer", "env", EnvLogFile, "path", path, "err", openErr)
	}
	return logger, closeFn
}
