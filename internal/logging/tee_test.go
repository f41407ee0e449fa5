package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Moushudyx/game-sl/internal/errors"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errWrite }

var errWrite = errors.New("disk full")

func TestTee(t *testing.T) {
	var warn, debug bytes.Buffer
	h := Tee(
		NewHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
		NewHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("game", "Celeste").WithGroup("restore")

	if !logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("Tee should be enabled when any handler is")
	}
	logger.Debug("trashing", "stage", "remove")
	logger.Warn("rolled back", "stage", "extract")

	if got := strings.Count(warn.String(), "\n"); got != 1 {
		t.Errorf("warn handler got %d lines, want 1: %q", got, warn.String())
	}
	if got := strings.Count(debug.String(), "\n"); got != 2 {
		t.Errorf("debug handler got %d lines, want 2: %q", got, debug.String())
	}
	if !strings.Contains(warn.String(), "game=Celeste restore.stage=extract") {
		t.Errorf("attrs and groups not forwarded: %q", warn.String())
	}
}

func TestTee_SingleHandler(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, nil)
	if Tee(h) != slog.Handler(h) {
		t.Error("Tee with one handler should return it unchanged")
	}
}

func TestTee_KeepsWritingAfterError(t *testing.T) {
	var buf bytes.Buffer
	h := Tee(
		failingHandler{NewHandler(&bytes.Buffer{}, nil)},
		NewHandler(&buf, nil),
	)

	err := h.Handle(t.Context(), slog.NewRecord(time.Time{}, slog.LevelInfo, "backup created", 0))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Handle() error = %v, want disk full", err)
	}
	if !strings.Contains(buf.String(), "backup created") {
		t.Errorf("second handler was skipped: %q", buf.String())
	}
}
