package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/host"
	"github.com/thoreinstein/mcplat/internal/platform"
)

func candidates(t *testing.T) []platform.Descriptor {
	t.Helper()
	return platform.NewBuiltins(platform.WithLoader(host.NewTable("empty")))
}

func TestSelectPlatform_EmptyList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	_, err := s.SelectPlatform(nil)
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got: %v", err)
	}
}

func TestSelectPlatform_SingleItem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	only := candidates(t)[:1]
	result, err := s.SelectPlatform(only)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name() != platform.NameMojang {
		t.Errorf("expected %q, got %q", platform.NameMojang, result.Name())
	}
	// Should not prompt for single item
	if buf.Len() > 0 {
		t.Errorf("expected no output for single item, got: %s", buf.String())
	}
}

func TestSelectPlatform_ValidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantName string
	}{
		{name: "explicit first", input: "1\n", wantName: platform.NameMojang},
		{name: "explicit last", input: "4\n", wantName: platform.NameForge},
		{name: "default on empty", input: "\n", wantName: platform.NameMojang},
		{name: "whitespace trimmed", input: "  2  \n", wantName: platform.NameBukkit},
		{name: "by name", input: "neoforge\n", wantName: platform.NameNeoForge},
		{name: "no trailing newline", input: "4", wantName: platform.NameForge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &buf)

			result, err := s.SelectPlatform(candidates(t))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Name() != tt.wantName {
				t.Errorf("expected %q, got %q", tt.wantName, result.Name())
			}
		})
	}
}

func TestSelectPlatform_InvalidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "too low", input: "0\n", wantErr: "out of range"},
		{name: "too high", input: "5\n", wantErr: "out of range"},
		{name: "negative", input: "-1\n", wantErr: "out of range"},
		{name: "unknown name", input: "velocity\n", wantErr: "not a number or platform name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &buf)

			_, err := s.SelectPlatform(candidates(t))
			if !errors.Is(err, ErrInvalidSelection) {
				t.Fatalf("expected ErrInvalidSelection, got: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestSelectPlatform_Cancelled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(&eofReader{}, &buf)

	_, err := s.SelectPlatform(candidates(t))
	if !errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected ErrSelectionCancelled, got: %v", err)
	}
}

func TestSelectPlatform_OutputFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader("1\n"), &buf)

	if _, err := s.SelectPlatform(candidates(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"No platform was detected",
		"[1] mojang (mojang)",
		"[2] bukkit (spigot)",
		"[3] neoforge (mojang) [deprecated: use mojang]",
		"[4] forge (searge)",
		"Select [1]:",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("missing %q in output: %s", want, output)
		}
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	cs := candidates(t)
	got := Preview(cs[2])
	for _, want := range []string{"Name:       neoforge", "Loader:     empty", "Probe:      unprobed", "forwards to mojang"} {
		if !strings.Contains(got, want) {
			t.Errorf("Preview() missing %q:\n%s", want, got)
		}
	}
	if platform.StateOf(cs[2]) != platform.Unprobed {
		t.Error("Preview() must not probe")
	}
}

func TestFuzzySelectPlatform_Empty(t *testing.T) {
	t.Parallel()

	if _, err := FuzzySelectPlatform(nil); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got: %v", err)
	}
}

// eofReader simulates immediate EOF (like Ctrl+D).
type eofReader struct{}

func (r *eofReader) Read(_ []byte) (int, error) {
	return 0, io.EOF
}
