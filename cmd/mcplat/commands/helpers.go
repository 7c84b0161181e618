package commands

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcplat/internal/cli"
	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/logging"
)

// hostFlags is shared by every command that inspects a host.
type hostFlags struct {
	hosts    []string
	platform string
}

func (f *hostFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.hosts, "host", nil,
		"host manifest file(s); earlier files win on conflicting classes (default: config hosts)")
	cmd.Flags().StringVarP(&f.platform, "platform", "p", "",
		"force this platform instead of detecting one")
}

// env builds the inspection environment for cmd from flags and config.
func (f *hostFlags) env(cmd *cobra.Command) (*cli.Env, error) {
	return cli.NewEnv(cli.Options{
		Config:    loadedConfig,
		HostFiles: f.hosts,
		Platform:  f.platform,
		Logger:    logging.FromContext(cmd.Context()),
	})
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}
