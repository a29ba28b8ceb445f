package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/season-dashboard-service/internal/server"
)

func newServeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service with its poller and scheduled jobs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := context.WithCancel(cmd.Context())
			defer stop()

			srv := server.New(g.cfg, g.logger)
			srv.Run(ctx, stop)
			return nil
		},
	}
}
