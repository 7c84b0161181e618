package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// palette holds the colors for one handler; a nil palette means plain text.
type palette struct {
	time, key                *color.Color
	trace, debug, info, warn *color.Color
	err                      *color.Color
}

// newPalette forces each color on, since SupportsColor has already decided
// and color.NoColor only looks at stdout.
func newPalette() *palette {
	c := func(attrs ...color.Attribute) *color.Color {
		col := color.New(attrs...)
		col.EnableColor()
		return col
	}
	return &palette{
		time:  c(color.FgHiBlack),
		key:   c(color.FgCyan),
		trace: c(color.FgHiBlack),
		debug: c(color.FgMagenta),
		info:  c(color.FgGreen),
		warn:  c(color.FgYellow),
		err:   c(color.FgRed, color.Bold),
	}
}

func (p *palette) level(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l > LevelTrace:
		return p.debug
	default:
		return p.trace
	}
}

// Handler is a slog.Handler for console output: kitchen time, level, message,
// then key=value pairs. Group names become dotted key prefixes.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	colors *palette

	attrs  []boundAttr
	groups []string
}

// boundAttr remembers the groups that were open when an attr was added.
type boundAttr struct {
	prefix string
	attr   slog.Attr
}

// NewHandler creates a console handler, colorized when out supports it.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}
	if SupportsColor(out) {
		h.colors = newPalette()
	}
	return h
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes r as one line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		t := r.Time.Format(time.Kitchen)
		if h.colors != nil {
			t = h.colors.time.Sprint(t)
		}
		b.WriteString(t)
		b.WriteByte(' ')
	}

	level := fmt.Sprintf("%-5s", levelName(r.Level))
	if h.colors != nil {
		level = h.colors.level(r.Level).Sprint(level)
	}
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, ba := range h.attrs {
		h.appendAttr(&b, ba.prefix, ba.attr)
	}
	prefix := h.groupPrefix()
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}


func (h *Handler) appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(b, prefix, ga)
		}
		return
	}

	key := prefix + a.Key
	if h.colors != nil {
		key = h.colors.key.Sprint(key)
	}

	var value string
	switch v := a.Value.Any().(type) {
	case error:
		value = strconv.Quote(v.Error())
	case string:
		value = v
		if v == "" || strings.ContainsAny(v, " \t\n\"=") {
			value = strconv.Quote(v)
		}
	default:
		value = fmt.Sprint(v)
	}

	fmt.Fprintf(b, " %s=%s", key, value)
}

// WithAttrs returns a Handler that adds attrs, qualified by the groups open
// now, to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	prefix := h.groupPrefix()
	newH := *h
	newH.attrs = slices.Clip(h.attrs)
	for _, a := range attrs {
		newH.attrs = append(newH.attrs, boundAttr{prefix: prefix, attr: a})
	}
	return &newH
}

// WithGroup returns a Handler that prefixes later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = append(slices.Clip(h.groups), name)
	return &newH
}
