package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xyz-asif/kubertodo/internal/config"
)

// NewPingCommand creates the ping command, a one-shot connectivity check
// against the configured store.
func NewPingCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured store answers a ping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := config.Load(rootOpts.ConfigFile)
			if err != nil {
				return err
			}
			initLogger(cfg)

			b, err := openBackend(ctx, cfg)
			if err != nil {
				return err
			}
			defer b.Close(context.Background())

			pingCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
			defer cancel()
			if err := b.Pinger.Ping(pingCtx); err != nil {
				return fmt.Errorf("ping %s store: %w", cfg.Store.Driver, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s store is reachable\n", cfg.Store.Driver)
			return nil
		},
	}
}
