// Package commands implements the CLI commands for mcplat.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcplat/cmd"
	"github.com/thoreinstein/mcplat/internal/config"
	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/logging"
)

// debugEnv raises verbosity when no -v flag is given: "1"/"true" for debug,
// "2" for trace.
const debugEnv = config.EnvPrefix + "_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// loadedConfig is the configuration read during initialization.
var loadedConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// logCloser closes the --log-file handle, if one was opened.
var logCloser io.Closer

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (-v info, -vv debug, -vvv trace host lookups)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml or ~/.config/mcplat/config.yaml)")

	rootCmd.Version = cmd.BuildInfo().Version
	rootCmd.SetVersionTemplate("mcplat version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	loadedConfig, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "mcplat",
	Short: "Detect the Minecraft platform a host runs",
	Long: `mcplat determines which Minecraft platform (Mojang, Bukkit, Forge, or a
configured plugin) a host runs, which game version it reports, and which
mapping namespaces its classes use.

Hosts are described by manifests listing the classes, methods, and fields
visible at runtime. Built-in platforms are checked in a fixed priority
order, followed by plugin platforms declared in the config file.`,
	Example: `  # Detect the platform of a host manifest
  mcplat detect --host paper.yaml

  # Show every candidate and its probe result
  mcplat list --host paper.yaml

  # Skip detection
  mcplat detect --host paper.yaml --platform bukkit`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(
			errors.Wrap(errors.ErrInvalidFlags, "--quiet and --verbose"),
			"cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrInvalidFlags, "--log-format %q", logFormat),
			"valid formats: text, json")
	}

	opts := logging.Options{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "check the --log-file path")
		}
		closeLogFile()
		logCloser = f
		opts.File = f
	}

	logger := logging.New(opts)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig reports a config load failure for commands that use it.
func checkConfig(cmd *cobra.Command) error {
	// Skip validation for help, version and doc generation; doctor reports
	// config problems itself.
	switch cmd.Name() {
	case "help", "version", "gen-doc", "doctor":
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	if f := config.FileUsed(); f != "" {
		logging.FromContext(cmd.Context()).Debug("loaded config", "file", f)
	}
	return nil
}

func closeLogFile() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// Execute runs the root command.
func Execute() error {
	defer closeLogFile()
	return rootCmd.Execute()
}
