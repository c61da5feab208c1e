package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that writes to a file and to any extra
// writers, such as stderr in verbose mode
func NewFileLogger(path string, level log.Level, extra ...io.Writer) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	l := NewMultiLogger(level, append([]io.Writer{f}, extra...)...)

	cleanup := func() {
		f.Close()
	}

	return l, cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(level log.Level, writers ...io.Writer) *Logger {
	return NewWithLevel(io.MultiWriter(writers...), level)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// DocumentParsed logs a completed parse of a note
func (l *Logger) DocumentParsed(file string, size int, blocks int, duration time.Duration) {
	l.Debug("document parsed",
		"file", file,
		"size", humanize.Bytes(uint64(size)),
		"blocks", blocks,
		"duration", duration.Round(time.Microsecond))
}

// BlockReplaced logs the replacement of one top-level block
func (l *Logger) BlockReplaced(file string, block int) {
	l.Info("block replaced",
		"file", file,
		"block", block)
}

// CheckboxToggled logs a task checkbox edit
func (l *Logger) CheckboxToggled(file string, task int, checked bool) {
	l.Info("checkbox toggled",
		"file", file,
		"task", task,
		"checked", checked)
}

// FileSaved logs a successful write of an edited note
func (l *Logger) FileSaved(file string, size int) {
	l.Info("file saved",
		"file", file,
		"size", humanize.Bytes(uint64(size)))
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path string, level log.Level) {
	l.Debug("config loaded",
		"path", path,
		"level", level)
}

// Skipped logs when an edit is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("edit skipped",
		"file", file,
		"reason", reason)
}
