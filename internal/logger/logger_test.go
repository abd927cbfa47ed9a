// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("new should successfully create a logger", func(t *testing.T) {
		l := New(slog.LevelInfo)
		if l == nil {
			t.Fatal("expected logger to be non-nil")
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("logger honors the configured level", func(t *testing.T) {
		tests := []struct {
			name        string
			level       slog.Level
			shouldDebug bool
			shouldInfo  bool
		}{
			{"DEBUG", slog.LevelDebug, true, true},
			{"INFO", slog.LevelInfo, false, true},
			{"ERROR", slog.LevelError, false, false},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				buf := bytes.NewBuffer(nil)
				l := NewLogger(tc.level, buf)
				l.Debug("debug message")
				l.Info("info message")
				l.Error("error message")

				if tc.shouldDebug != bytes.Contains(buf.Bytes(), []byte("debug message")) {
					t.Errorf("debug logging mismatch for level %s", tc.name)
				}
				if tc.shouldInfo != bytes.Contains(buf.Bytes(), []byte("info message")) {
					t.Errorf("info logging mismatch for level %s", tc.name)
				}
				if !bytes.Contains(buf.Bytes(), []byte("error message")) {
					t.Error("expected error message to be logged")
				}
			})
		}
	})
}

func TestErr(t *testing.T) {
	t.Run("error attribute should carry the error text", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		l := NewLogger(slog.LevelDebug, buf)
		l.Error("provider fetch failed", Err(errors.New("intentional failure")))
		if !strings.Contains(buf.String(), "intentional failure") {
			t.Errorf("expected error attribute in output, got %q", buf.String())
		}
	})
}

func TestWith(t *testing.T) {
	t.Run("with should attach attributes to every record", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		l := NewLogger(slog.LevelDebug, buf).With(slog.String("provider", "open-meteo"))
		l.Info("fetch complete")
		if !strings.Contains(buf.String(), "provider=open-meteo") {
			t.Errorf("expected provider attribute in output, got %q", buf.String())
		}
	})
}
