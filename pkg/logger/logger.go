package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NewLogger creates a zerolog logger with console output on w.
func NewLogger(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(output).With().Timestamp().Logger()
}

// NewLoggerWithLevel creates a stderr logger parsing level; unknown levels fall back to info.
func NewLoggerWithLevel(level string) zerolog.Logger {
	return NewLogger(os.Stderr).Level(ParseLevel(level))
}

// NewFileLogger appends to path. The TUI owns the terminal, so it logs here.
func NewFileLogger(path, level string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop(), nil, errors.Wrap(err, "failed to create log directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, errors.Wrap(err, "failed to open log file")
	}
	output := zerolog.ConsoleWriter{Out: f, TimeFormat: "15:04:05", NoColor: true}
	return zerolog.New(output).With().Timestamp().Logger().Level(ParseLevel(level)), f, nil
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
