// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/platform"
)

// Sentinel errors for platform selection.
var (
	ErrNoCandidates       = errors.New("no platforms to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive platform selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectPlatform prompts the user to choose a platform to force.
//
// Returns:
//   - ErrNoCandidates if the list is empty
//   - The descriptor if only one exists (auto-selects without prompting)
//   - The selected descriptor based on user input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectPlatform(candidates []platform.Descriptor) (platform.Descriptor, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	// Auto-select if only one candidate
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	fmt.Fprintln(s.writer, "No platform was detected. Choose one to use:")
	for i, d := range candidates {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, label(d))
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "reading selection")
		}
		// Input without a trailing newline is still an answer.
		if input == "" {
			return nil, ErrSelectionCancelled
		}
	}

	input = strings.TrimSpace(input)

	// Default to first option if empty
	if input == "" {
		return candidates[0], nil
	}

	// A name is accepted as well as a number.
	for _, d := range candidates {
		if d.Name() == input {
			return d, nil
		}
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number or platform name", input)
	}

	// Validate range (1-indexed)
	if selection < 1 || selection > len(candidates) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(candidates))
	}

	return candidates[selection-1], nil
}

// FuzzySelectPlatform shows a full-screen fuzzy finder over candidates.
// Aborting the finder returns ErrSelectionCancelled.
func FuzzySelectPlatform(candidates []platform.Descriptor) (platform.Descriptor, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return label(candidates[i])
		},
		fuzzyfinder.WithPromptString("platform> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return Preview(candidates[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return candidates[idx], nil
}

func label(d platform.Descriptor) string {
	l := fmt.Sprintf("%s (%s)", d.Name(), strings.Join(d.MappingNamespaces(), ", "))
	if dep, ok := d.(platform.Deprecated); ok {
		l += " [deprecated: use " + dep.Replacement() + "]"
	}
	return l
}

// Preview describes a candidate for the fuzzy finder's preview pane.
// It does not probe the descriptor.
func Preview(d platform.Descriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:       %s\n", d.Name())
	fmt.Fprintf(&b, "Namespaces: %s\n", strings.Join(d.MappingNamespaces(), ", "))
	if l := d.Loader(); l != nil {
		fmt.Fprintf(&b, "Loader:     %s\n", l.Name())
	}
	fmt.Fprintf(&b, "Probe:      %s\n", platform.StateOf(d))
	if dep, ok := d.(platform.Deprecated); ok {
		fmt.Fprintf(&b, "\nDeprecated; forwards to %s.\n", dep.Replacement())
	}
	return b.String()
}
