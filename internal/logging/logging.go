package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/thoreinstein/mcplat/internal/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat for anything but text or json.
var ErrUnknownFormat = errors.New("unknown log format")

// ParseFormat converts a --log-format value. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// Options configures New.
type Options struct {
	// Level sets the minimum log level for every destination.
	Level slog.Level

	// Format selects the console format. Anything but FormatJSON is text.
	Format Format

	// Output is the console destination. Defaults to os.Stderr.
	Output io.Writer

	// File, if set, also receives every record as JSON regardless of Format.
	File io.Writer
}

// New builds a logger from opts.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: opts.Level}

	var console slog.Handler
	if opts.Format == FormatJSON {
		console = slog.NewJSONHandler(out, ho)
	} else {
		console = NewHandler(out, ho)
	}

	if opts.File == nil {
		return slog.New(console)
	}
	return slog.New(NewMultiHandler(console, slog.NewJSONHandler(opts.File, ho)))
}

// NewDiscard creates a logger that discards all output.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testWriter routes log lines to t.Log.
type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest creates a logger that writes to the test's log output, shown only
// on failure or with -v. It logs at LevelTrace so host lookups are visible.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return New(Options{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
