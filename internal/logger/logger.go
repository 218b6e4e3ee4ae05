// Package logger wraps charm/log for the sidecar's structured logging.
// The process stdio may belong to the RPC transport, so logs default to
// a file inside the notebook.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at the given level.
func New(w io.Writer, level string) *Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           lvl,
	})
	return &Logger{Logger: l}
}

// NewFile creates a logger appending to the file at path.
// The returned cleanup closes the file.
func NewFile(path, level string) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, level), func() { f.Close() }, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, "info")
}
