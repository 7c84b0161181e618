package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcplat/internal/cli"
	"github.com/thoreinstein/mcplat/internal/platform"
)

var (
	listHost hostFlags
	listJSON bool
)

func init() {
	listHost.register(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Probe every candidate platform",
	Long: `Probe every built-in and plugin platform against a host and report the
result of each, in the order detection considers them.

Unlike detect, a platform whose probe fails is reported and the survey
continues.

Examples:
  # Survey a host
  mcplat list --host paper.yaml

  # Output as JSON
  mcplat list --host paper.yaml --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := listHost.env(cmd)
		if err != nil {
			return err
		}
		return runListWithWriter(cmd.OutOrStdout(), env)
	},
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(w io.Writer, env *cli.Env) error {
	// Resolve first so the active platform is marked; a failure here is
	// already visible per candidate in the report.
	_, _ = env.Resolver.Current()
	reports := env.Resolver.Survey()

	if listJSON {
		return writeJSON(w, reports)
	}
	return outputListTabular(w, reports)
}

func outputListTabular(w io.Writer, reports []platform.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLATFORM\tSTATE\tVERSION\tNAMESPACES\tNOTES")

	for _, r := range reports {
		name := r.Name
		if r.Active {
			name = "* " + name
		} else {
			name = "  " + name
		}

		var notes []string
		if r.Replacement != "" {
			notes = append(notes, "deprecated, use "+r.Replacement)
		}
		if r.Error != "" {
			notes = append(notes, color.RedString(r.Error))
		}

		version := r.Version
		if version == "" {
			version = "-"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			name, stateLabel(r), version, strings.Join(r.Namespaces, ","), strings.Join(notes, "; "))
	}
	return tw.Flush()
}

func stateLabel(r platform.Report) string {
	switch {
	case r.Err != nil:
		return color.RedString("error")
	case r.State == platform.Supported:
		return color.GreenString(r.State.String())
	default:
		return r.State.String()
	}
}
