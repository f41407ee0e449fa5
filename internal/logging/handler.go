package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// TextHandler writes one line per record for a terminal:
//
//	20:15:03 WRN no protective backup to roll back to target="/home/me/Saves/Celeste"
//
// Levels are three-letter labels, string values containing spaces or quotes
// are quoted, and attribute values pass through HandlerOptions.ReplaceAttr
// followed by [RedactAttr].
type TextHandler struct {
	level   slog.Leveler
	replace func([]string, slog.Attr) slog.Attr
	out     io.Writer
	mu      *sync.Mutex
	palette *palette

	prefix string // group path for attributes added later, e.g. "restore."
	groups []string
	pre    []byte // attributes from WithAttrs, already formatted
}

type palette struct {
	time, key *color.Color
	levels    map[slog.Level]*color.Color
}

// NewHandler creates a TextHandler writing to out. Colours are used only
// when out supports them, see [SupportsColor].
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *TextHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	h := &TextHandler{
		level:   opts.Level,
		replace: chainReplace(opts.ReplaceAttr),
		out:     out,
		mu:      &sync.Mutex{},
	}
	if h.level == nil {
		h.level = slog.LevelInfo
	}
	if SupportsColor(out) {
		h.palette = &palette{
			time: color.New(color.FgHiBlack),
			key:  color.New(color.FgCyan),
			levels: map[slog.Level]*color.Color{
				LevelTrace:      color.New(color.FgHiBlack),
				slog.LevelDebug: color.New(color.FgMagenta),
				slog.LevelInfo:  color.New(color.FgGreen),
				slog.LevelWarn:  color.New(color.FgYellow),
				slog.LevelError: color.New(color.FgRed, color.Bold),
			},
		}
	}
	return h
}

// LevelLabel returns the three-letter label printed for l.
func LevelLabel(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERR"
	case l >= slog.LevelWarn:
		return "WRN"
	case l >= slog.LevelInfo:
		return "INF"
	case l >= slog.LevelDebug:
		return "DBG"
	default:
		return "TRC"
	}
}

// labelLevel snaps l to the level whose colour is used for it.
func labelLevel(l slog.Level) slog.Level {
	switch {
	case l >= slog.LevelError:
		return slog.LevelError
	case l >= slog.LevelWarn:
		return slog.LevelWarn
	case l >= slog.LevelInfo:
		return slog.LevelInfo
	case l >= slog.LevelDebug:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *TextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats r as a single line.
func (h *TextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		buf.WriteString(h.paint(h.timeColor(), r.Time.Format(time.TimeOnly)))
		buf.WriteByte(' ')
	}
	buf.WriteString(h.paint(h.levelColor(r.Level), LevelLabel(r.Level)))
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.Write(h.pre)
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.prefix, h.groups, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *TextHandler) appendAttr(buf *bytes.Buffer, prefix string, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() != slog.KindGroup {
		a = h.replace(groups, a)
		a.Value = a.Value.Resolve()
	}
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		innerGroups := groups
		if a.Key != "" {
			inner = prefix + a.Key + "."
			innerGroups = append(groups[:len(groups):len(groups)], a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, inner, innerGroups, ga)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.paint(h.keyColor(), prefix+a.Key))
	buf.WriteByte('=')
	buf.WriteString(formatValue(a.Value))
}

// formatValue renders v, quoting strings that would be ambiguous on one line.
func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	default:
		s = fmt.Sprint(v.Any())
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// WithAttrs returns a handler that prints attrs on every record.
func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var buf bytes.Buffer
	buf.Write(h.pre)
	for _, a := range attrs {
		h.appendAttr(&buf, h.prefix, h.groups, a)
	}
	h2 := *h
	h2.pre = buf.Bytes()
	return &h2
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *TextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	h2.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &h2
}

func (h *TextHandler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func (h *TextHandler) timeColor() *color.Color {
	if h.palette == nil {
		return nil
	}
	return h.palette.time
}

func (h *TextHandler) keyColor() *color.Color {
	if h.palette == nil {
		return nil
	}
	return h.palette.key
}

func (h *TextHandler) levelColor(l slog.Level) *color.Color {
	if h.palette == nil {
		return nil
	}
	return h.palette.levels[labelLevel(l)]
}
