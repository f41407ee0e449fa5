package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// record builds a record at a fixed time so lines are predictable.
func record(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Date(2024, 1, 2, 20, 15, 3, 0, time.Local), level, msg, 0)
	r.AddAttrs(attrs...)
	return r
}

func TestTextHandler_Line(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		msg   string
		attrs []slog.Attr
		want  string
	}{
		{
			name:  "plain attrs",
			level: slog.LevelInfo,
			msg:   "backup created",
			attrs: []slog.Attr{slog.String("game", "Celeste"), slog.Int("files", 3)},
			want:  "20:15:03 INF backup created game=Celeste files=3\n",
		},
		{
			name:  "path with spaces is quoted",
			level: slog.LevelWarn,
			msg:   "no protective backup to roll back to",
			attrs: []slog.Attr{slog.String("target", "/Users/me/Library/Application Support/Celeste")},
			want:  "20:15:03 WRN no protective backup to roll back to target=\"/Users/me/Library/Application Support/Celeste\"\n",
		},
		{
			name:  "empty value is quoted",
			level: slog.LevelDebug,
			msg:   "resolved",
			attrs: []slog.Attr{slog.String("uid", "")},
			want:  "20:15:03 DBG resolved uid=\"\"\n",
		},
		{
			name:  "trace label",
			level: LevelTrace,
			msg:   "archived entry",
			attrs: []slog.Attr{slog.String("entry", "log/latest.txt")},
			want:  "20:15:03 TRC archived entry entry=log/latest.txt\n",
		},
		{
			name:  "error with duration",
			level: slog.LevelError,
			msg:   "rollback failed",
			attrs: []slog.Attr{slog.Duration("after", 1500*time.Millisecond)},
			want:  "20:15:03 ERR rollback failed after=1.5s\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace})
			if err := h.Handle(t.Context(), record(tt.level, tt.msg, tt.attrs...)); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).
		With("game", "Celeste").
		WithGroup("restore").
		With("stage", "extract")

	logger.Info("stage done", "ms", 12, slog.Group("archive", "entries", 4))

	got := buf.String()
	for _, want := range []string{"game=Celeste", "restore.stage=extract", "restore.ms=12", "restore.archive.entries=4"} {
		if !strings.Contains(got, want) {
			t.Errorf("line %q lacks %q", got, want)
		}
	}
}

func TestTextHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("Info should be disabled at Warn")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("Error should be enabled at Warn")
	}

	def := NewHandler(&bytes.Buffer{}, nil)
	if def.Enabled(t.Context(), slog.LevelDebug) || !def.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("default level should be Info")
	}
}

func TestTextHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)
	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "INF no time\n" {
		t.Errorf("line = %q", got)
	}
}

func TestTextHandler_ReplaceAttrThenRedact(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "drop" {
				return slog.Attr{}
			}
			if a.Key == "uid" {
				return slog.String("steam_uid", a.Value.String())
			}
			return a
		},
	})

	err := h.Handle(t.Context(), record(slog.LevelInfo, "x",
		slog.String("drop", "gone"),
		slog.String("uid", "76561198000000042"),
	))
	if err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if strings.Contains(got, "drop") {
		t.Errorf("dropped attr printed: %q", got)
	}
	if !strings.Contains(got, "steam_uid=****0042") {
		t.Errorf("renamed attr not masked: %q", got)
	}
}

func TestLevelLabel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{LevelTrace - 1, "TRC"},
		{LevelTrace, "TRC"},
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelInfo + 2, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
		{slog.LevelError + 4, "ERR"},
	}
	for _, tt := range tests {
		if got := LevelLabel(tt.level); got != tt.want {
			t.Errorf("LevelLabel(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
