package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/season-dashboard-service/internal/config"
	"github.com/preston-bernstein/season-dashboard-service/internal/logging"
)

const serviceName = "season-dashboard-service"

type globals struct {
	envFiles []string
	cfg      config.Config
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Season-aware sports dashboard service and tooling.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(g.envFiles...); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			g.cfg = cfg
			g.logger = logging.NewLogger(logging.Config{
				Level:   cfg.LogLevel,
				Format:  cfg.LogFormat,
				Service: serviceName,
				Version: appVersion,
				Output:  cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	root.PersistentFlags().StringSliceVar(&g.envFiles, "env-file", nil, "dotenv files to load before reading the environment")

	root.AddCommand(
		newServeCmd(g),
		newSeasonCmd(g),
		newFetchCmd(g),
		newScrapeCmd(g),
	)
	return root
}

func newTable(out io.Writer) table.Writer {
	if out == nil {
		out = os.Stdout
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}
