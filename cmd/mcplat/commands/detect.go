package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcplat/internal/cli"
	"github.com/thoreinstein/mcplat/internal/cli/prompt"
	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/logging"
	"github.com/thoreinstein/mcplat/internal/platform"
)

var (
	detectHost        hostFlags
	detectJSON        bool
	detectInteractive bool
)

func init() {
	detectHost.register(detectCmd)
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "Output in JSON format")
	detectCmd.Flags().BoolVarP(&detectInteractive, "interactive", "i", false,
		"choose a platform interactively when none is detected")
	detectCmd.MarkFlagsMutuallyExclusive("json", "interactive")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the active platform of a host",
	Long: `Detect the platform a host runs and print its name, game version, and
mapping namespaces.

Built-in platforms are checked in priority order (mojang, bukkit, neoforge,
forge), then plugin platforms from the config file. The first supported one
wins. A platform whose API is present but unusable stops detection with an
error rather than falling through to the next candidate.

Examples:
  # Detect from a manifest
  mcplat detect --host paper.yaml

  # Force a platform
  mcplat detect --host paper.yaml --platform bukkit

  # Output as JSON
  mcplat detect --host paper.yaml --json`,
	RunE: runDetect,
}

// detectOutput represents the JSON output format for detect.
type detectOutput struct {
	Platform    string   `json:"platform"`
	Version     string   `json:"version,omitempty"`
	Namespaces  []string `json:"namespaces"`
	Forced      bool     `json:"forced"`
	Replacement string   `json:"replacement,omitempty"`
	Host        string   `json:"host"`
}

func runDetect(cmd *cobra.Command, _ []string) error {
	env, err := detectHost.env(cmd)
	if err != nil {
		return err
	}

	var pick func([]platform.Descriptor) (platform.Descriptor, error)
	if detectInteractive {
		pick = choosePlatform
	}
	return runDetectWithWriter(cmd.OutOrStdout(), env, pick)
}

// choosePlatform uses the fuzzy finder on a terminal and a numbered prompt otherwise.
func choosePlatform(candidates []platform.Descriptor) (platform.Descriptor, error) {
	if logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout) {
		return prompt.FuzzySelectPlatform(candidates)
	}
	return prompt.NewSelector().SelectPlatform(candidates)
}

// runDetectWithWriter allows injecting a writer and picker for testing.
// A nil pick disables the interactive fallback.
func runDetectWithWriter(w io.Writer, env *cli.Env, pick func([]platform.Descriptor) (platform.Descriptor, error)) error {
	d, err := env.Resolver.Current()
	if err != nil && pick != nil && errors.Is(err, platform.ErrNoSupportedPlatform) {
		d, err = pick(env.Resolver.Candidates())
		if err != nil {
			if errors.Is(err, prompt.ErrSelectionCancelled) {
				return errors.NewUserError(err, "Use --platform to choose one")
			}
			return err
		}
		env.Resolver.SetCurrent(d)
		env.Forced = d
	}
	if err != nil {
		return cli.ResolveError(err)
	}

	out := detectOutput{
		Platform:   d.Name(),
		Namespaces: d.MappingNamespaces(),
		Forced:     env.Forced != nil,
		Host:       env.Loader.Name(),
	}
	if dep, ok := d.(platform.Deprecated); ok {
		out.Replacement = dep.Replacement()
	}
	// A forced platform may not be supported by the host; report no version
	// then. A broken platform API is still an error.
	ok, err := d.IsSupported()
	if err != nil {
		return cli.ResolveError(err)
	}
	if ok {
		v, err := d.Version()
		if err != nil {
			return cli.ResolveError(err)
		}
		out.Version = v
	}

	if detectJSON {
		return writeJSON(w, out)
	}
	return outputDetectText(w, out)
}

func outputDetectText(w io.Writer, out detectOutput) error {
	bold := color.New(color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", bold("Platform:  "), out.Platform)
	if out.Version != "" {
		fmt.Fprintf(w, "%s %s\n", bold("Version:   "), out.Version)
	} else {
		fmt.Fprintf(w, "%s %s\n", bold("Version:   "), gray("(not reported by host)"))
	}
	fmt.Fprintf(w, "%s %s\n", bold("Namespaces:"), strings.Join(out.Namespaces, ", "))
	fmt.Fprintf(w, "%s %s\n", bold("Host:      "), out.Host)
	if out.Forced {
		fmt.Fprintln(w, gray("(platform set manually; detection skipped)"))
	}
	if out.Replacement != "" {
		fmt.Fprintln(w, color.YellowString("%s is deprecated; use %s", out.Platform, out.Replacement))
	}
	return nil
}
