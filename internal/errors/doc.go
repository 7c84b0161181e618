// Package errors provides error handling conventions for the mcplat CLI
// and library packages.
//
// It re-exports the parts of github.com/cockroachdb/errors that the rest of
// the module uses (New, Wrap, WithHint, Is, As, ...), defines sentinel errors
// for common failure conditions, and provides an ExitError type for CLI exit
// code handling.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, mcerrors.ErrNotFound) {
//	    // handle not found case
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (broken host, I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion.
// [Suggest] picks the suggestion to print for an arbitrary error, falling back
// to hints attached with [WithHint]:
//
//	err := mcerrors.NewUserError(mcerrors.ErrInvalidConfig, "Check your config file")
//	if s := mcerrors.Suggest(err); s != "" {
//	    fmt.Println("Suggestion:", s)
//	}
package errors
