package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcplat/internal/cli"
	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/host"
	"github.com/thoreinstein/mcplat/internal/paths"
	"github.com/thoreinstein/mcplat/pkg/fileutil"
)

var (
	hostShowHost   hostFlags
	hostShowFormat string
	hostShowOutput string
)

func init() {
	hostShowHost.register(hostShowCmd)
	hostShowCmd.Flags().StringVarP(&hostShowFormat, "format", "f", "yaml", "output format: yaml, toml, json")
	hostShowCmd.Flags().StringVarP(&hostShowOutput, "output", "o", "", "write to this file instead of stdout")
	hostCmd.AddCommand(hostShowCmd)
	rootCmd.AddCommand(hostCmd)
}

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Inspect host manifests",
	Long: `Inspect the host manifests mcplat detects against.

A manifest lists the classes visible on a host with their methods and
fields. Manifests are YAML, TOML, or JSON, chosen by file extension.`,
}

var hostShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged host manifest",
	Long: `Print the host manifest that detection would use, after merging every
--host file (or the configured hosts). Earlier files win when two define
the same class.

The output can be converted between formats and written atomically to a
file.

Examples:
  # Merge two manifests and print them as YAML
  mcplat host show --host paper.yaml --host extra.toml

  # Convert to JSON
  mcplat host show --host paper.yaml --format json -o paper.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := hostShowHost.env(cmd)
		if err != nil {
			return err
		}
		return runHostShowWithWriter(cmd.OutOrStdout(), env)
	},
}

// runHostShowWithWriter allows injecting a writer for testing.
func runHostShowWithWriter(w io.Writer, env *cli.Env) error {
	format, err := host.ParseFormat(hostShowFormat)
	if err != nil {
		return errors.NewUserError(err, "valid formats: yaml, toml, json")
	}

	if env.Manifest == nil {
		return errors.NewUserError(
			errors.Wrap(errors.ErrNotFound, "no host manifests"),
			fmt.Sprintf("Pass --host or add manifests to %s", paths.HostsDir()))
	}

	data, err := env.Manifest.Encode(format)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	if hostShowOutput == "" {
		_, err = w.Write(data)
		return errors.Wrap(err, "writing manifest")
	}

	if err := paths.EnsureDir(filepath.Dir(hostShowOutput), 0); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating output directory"), "")
	}
	if err := fileutil.AtomicWriteFile(hostShowOutput, data, 0o644); err != nil {
		return errors.NewSystemError(err, "")
	}
	fmt.Fprintf(w, "Wrote %s (%d classes)\n", hostShowOutput, len(env.Manifest.Classes))
	return nil
}
