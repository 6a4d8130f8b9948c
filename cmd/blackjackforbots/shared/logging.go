package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures console logging for the CLI. Quiet by default
// so simulation output stays readable.
func SetupLogger(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// SetupTUILogger writes logs to a file, or discards them when no path is
// given. Logging to stderr would corrupt the alternate screen.
func SetupTUILogger(path string, debug bool) (*log.Logger, func(), error) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	var w io.Writer = io.Discard
	cleanup := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		cleanup = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return logger, cleanup, nil
}
