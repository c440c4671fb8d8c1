package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matchaproject/matcha/internal/common"
	"github.com/matchaproject/matcha/internal/common/matchacontext"
	"github.com/matchaproject/matcha/internal/matcha"
	"github.com/matchaproject/matcha/internal/matcha/configuration"
)

func tracksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "Compute the evolutionary track of every stellar-mass threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			var config configuration.MatchaConfig
			common.LoadConfig(&config, "./config/matcha", configOverride)

			ctx := matchacontext.Background()
			stopCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return matcha.Run(matchacontext.New(stopCtx, ctx.Log), &config)
		},
	}
	return cmd
}
