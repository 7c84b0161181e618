package commands

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcplat/internal/cli"
	"github.com/thoreinstein/mcplat/internal/config"
	"github.com/thoreinstein/mcplat/internal/doctor"
	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/logging"
)

var (
	doctorHosts   []string
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().StringSliceVar(&doctorHosts, "host", nil,
		"host manifest file(s) to check (default: config hosts)")
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and detection issues",
	Long: `Run diagnostic checks on the mcplat configuration, the host manifests,
and platform detection.

Unlike the other commands, doctor runs even when the configuration is
invalid, and reports every problem it finds instead of the first.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctorWithWriter(cmd.Context(), cmd.OutOrStdout(), newDoctorRunner(cmd))
	},
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}

	if count > 1 {
		return errors.NewUserError(
			errors.Wrap(errors.ErrInvalidFlags, "--json, --quiet, and --verbose"),
			"flags --json, --quiet, and --verbose are mutually exclusive")
	}

	return nil
}

// newDoctorRunner registers the checks in the order they are reported.
func newDoctorRunner(cmd *cobra.Command) *doctor.Runner {
	runner := doctor.NewRunner()
	runner.AddCheck(&doctor.ConfigCheck{Path: configPath})

	cfg := loadedConfig
	if cfg == nil {
		// The config check reports why; inspect the host with defaults.
		cfg = &config.Config{Version: config.CurrentVersion}
	}

	files := doctorHosts
	if len(files) == 0 {
		files, _ = cfg.HostFiles()
	}
	runner.AddCheck(&doctor.ManifestCheck{Files: files})

	env, err := cli.NewEnv(cli.Options{
		Config:    cfg,
		HostFiles: doctorHosts,
		Logger:    logging.FromContext(cmd.Context()),
	})
	detection := &doctor.DetectionCheck{Err: err}
	if err == nil {
		detection.Resolver = env.Resolver
	}
	runner.AddCheck(detection)

	return runner
}

// runDoctorWithWriter allows injecting a writer for testing.
func runDoctorWithWriter(ctx context.Context, w io.Writer, runner *doctor.Runner) error {
	report := runner.Run(ctx)

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return writeJSON(w, report)
	}

	outputDoctorText(w, report)
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	// Normal mode shows only errors and warnings.
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		for _, line := range detailLines(result.Details) {
			fmt.Fprintf(w, "    %s\n", line)
		}
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

// detailLines flattens the problem lists checks put in Details.
func detailLines(details map[string]any) []string {
	var lines []string
	for _, key := range []string{"problems", "failures", "files"} {
		switch v := details[key].(type) {
		case []string:
			lines = append(lines, v...)
		case map[string]string:
			for _, name := range slices.Sorted(maps.Keys(v)) {
				lines = append(lines, name+": "+v[name])
			}
		}
	}
	return lines
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

var (
	// errDoctorWarnings maps to exit code 1.
	errDoctorWarnings = errors.New("doctor found warnings")

	// errDoctorErrors maps to exit code 2.
	errDoctorErrors = errors.New("doctor found errors")
)
