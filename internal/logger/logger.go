// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package logger provides a thin wrapper around log/slog used by all
// fast-planner-weather components.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger so that packages only depend on this module's
// logging surface.
type Logger struct {
	*slog.Logger
}

// New returns a Logger writing text output to STDERR at the given level.
func New(level slog.Level) *Logger {
	return NewLogger(level, os.Stderr)
}

// NewLogger returns a Logger writing text output to the given writer at the
// given level.
func NewLogger(level slog.Level, output io.Writer) *Logger {
	return &Logger{slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))}
}

// Err returns a slog.Attr for an error value.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

// With returns a Logger with the given attributes attached to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}
