package commands

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcplat/cmd"
	"github.com/thoreinstein/mcplat/internal/platform"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of mcplat, and the built-in platforms it knows.`,
	Run: func(c *cobra.Command, _ []string) {
		writeVersion(c.OutOrStdout())
	},
}

func writeVersion(w io.Writer) {
	info := cmd.BuildInfo()
	fmt.Fprintf(w, "mcplat version %s\n", info.Version)
	fmt.Fprintf(w, "  commit: %s\n", info.Commit)
	fmt.Fprintf(w, "  built:  %s\n", info.Date)
	fmt.Fprintf(w, "  go:     %s\n", runtime.Version())
	fmt.Fprintln(w, "  platforms:")
	for _, d := range platform.Builtins() {
		line := fmt.Sprintf("    %s: %s", d.Name(), strings.Join(d.MappingNamespaces(), ", "))
		if dep, ok := d.(platform.Deprecated); ok {
			line += " (deprecated, use " + dep.Replacement() + ")"
		}
		fmt.Fprintln(w, line)
	}
}
