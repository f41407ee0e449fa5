package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces one human-readable line per record.
	FormatText Format = "text"
	// FormatJSON produces one JSON object per record.
	FormatJSON Format = "json"
)

// LevelTrace is more verbose than slog.LevelDebug. It is used for per-entry
// archive logging.
const LevelTrace = slog.LevelDebug - 4

// DebugEnv raises the default verbosity when no -v flag is given.
const DebugEnv = "GAMESL_DEBUG"

// LevelFromVerbosity maps the count of -v flags to a log level.
// 0 → Warn, 1 → Info, 2 → Debug, 3+ → Trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// VerbosityFromEnv reads GAMESL_DEBUG through lookup: "1" or "true" is
// debug (2), "2" is trace (3). Anything else, or an unset variable, is 0.
func VerbosityFromEnv(lookup func(string) (string, bool)) int {
	val, ok := lookup(DebugEnv)
	if !ok {
		return 0
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true":
		return 2
	case "2":
		return 3
	default:
		return 0
	}
}

// Config holds the configuration for creating a new logger.
type Config struct {
	// Level sets the minimum log level. Messages below this level are discarded.
	Level slog.Level
	// Format selects the handler for Output. Unknown formats fall back to text.
	Format Format
	// Output receives the formatted records. Defaults to os.Stderr.
	Output io.Writer
	// File, when set, additionally receives every record as JSON at the
	// same level. It backs the --log-file flag.
	File io.Writer
}

// New creates a logger with the given configuration. Every handler it
// builds masks sensitive attributes through [RedactAttr].
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:       cfg.Level,
		ReplaceAttr: RedactAttr,
	}

	var primary slog.Handler
	switch cfg.Format {
	case FormatJSON:
		primary = slog.NewJSONHandler(output, opts)
	default:
		primary = NewHandler(output, opts)
	}
	if cfg.File == nil {
		return slog.New(primary)
	}
	return slog.New(Tee(primary, slog.NewJSONHandler(cfg.File, opts)))
}

// NewDiscard creates a logger that discards all output.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testWriter adapts testing.T to io.Writer for use with slog handlers.
type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest creates a trace-level logger that writes to the test's log.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
