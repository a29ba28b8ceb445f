package main

import (
	"context"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/season-dashboard-service/internal/season"
	"github.com/preston-bernstein/season-dashboard-service/internal/timeutil"
)

func newSeasonCmd(g *globals) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Print the season status of every activity.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := timeutil.ResolveLocation(g.cfg.Season.Timezone)
			now := time.Now().In(loc)
			if at != "" {
				parsed, err := timeutil.ParseDateIn(at, loc)
				if err != nil {
					return err
				}
				now = parsed
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			store := season.NewStore(g.logger, loc)
			resolver := season.NewResolver(store.Load(ctx, g.cfg.Season.Resource))

			renderOverview(newTable(cmd.OutOrStdout()), resolver.Overview(now))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "evaluate at this date (YYYY-MM-DD) instead of now")
	return cmd
}

func renderOverview(t table.Writer, ov season.Overview) {
	t.SetTitle("Primary: %s", ov.Primary.DisplayName())
	t.AppendHeader(table.Row{"Activity", "Status", "Start", "End", "Days to start"})
	for _, row := range ov.Activities {
		days := "-"
		if row.DaysUntilStart != nil {
			days = strconv.Itoa(*row.DaysUntilStart)
		}
		t.AppendRow(table.Row{row.Activity.DisplayName(), row.Status, row.Start, row.End, days})
	}
	t.Render()
}
