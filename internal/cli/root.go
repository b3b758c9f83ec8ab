package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
}

// NewRootCommand creates the kubertodo command. Without a subcommand it
// serves the API.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "kubertodo",
		Short:         "Todo CRUD API backed by MongoDB",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "optional config file (yaml, json or toml)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewPingCommand(opts))

	return cmd
}
