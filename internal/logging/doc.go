// Package logging provides structured logging for the mcplat CLI using slog.
//
// Text output goes through [Handler], which colorizes levels and keys when
// writing to a terminal; JSON output uses the standard [slog.JSONHandler].
// [MultiHandler] fans records out to several handlers, which the CLI uses to
// mirror console logs into a --log-file.
//
//	logger := logging.New(logging.Options{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//	})
//	ctx := logging.NewContext(ctx, logger)
//
// [LevelTrace] sits below Debug and is used for individual host lookups.
//
// For tests, use [ForTest] to route log output through the testing framework.
package logging
