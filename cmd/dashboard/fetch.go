package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/season-dashboard-service/internal/app/activities"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/server"
)

func newFetchCmd(g *globals) *cobra.Command {
	var live bool
	cmd := &cobra.Command{
		Use:   "fetch [activity]",
		Short: "Fetch activity records through the live, snapshot and default chain.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			cfg.Metrics.Enabled = false
			cfg.Notify.Enabled = false
			cfg.Scraper.Enabled = false
			if !cmd.Flags().Changed("live") {
				live = cfg.Live.PreferLive
			}
			svc := server.New(cfg, g.logger).Service()

			results, err := fetchResults(cmd.Context(), svc, args, live)
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout())
			renderResults(t, results)
			return nil
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "try the live provider first")
	return cmd
}

func fetchResults(ctx context.Context, svc *activities.Service, args []string, live bool) ([]activities.Result, error) {
	if len(args) == 0 {
		return svc.FetchAll(ctx, live), nil
	}
	a, err := activity.Parse(args[0])
	if err != nil {
		return nil, err
	}
	res, err := svc.Fetch(ctx, a, live)
	if err != nil {
		return nil, err
	}
	return []activities.Result{res}, nil
}

func renderResults(t table.Writer, results []activities.Result) {
	t.AppendHeader(table.Row{"Activity", "Name", "Status", "Source", "Standings", "Recent", "Upcoming", "Latest"})
	for _, res := range results {
		rec := res.Record
		latest := "-"
		if m, ok := rec.LatestResult(); ok {
			latest = fmt.Sprintf("%s %s %s", m.Opponent, m.Result, m.Score)
		}
		t.AppendRow(table.Row{
			rec.Activity.DisplayName(),
			rec.Name,
			rec.SeasonStatus,
			res.Source,
			len(rec.Standings),
			len(rec.RecentMatches),
			len(rec.UpcomingMatches),
			latest,
		})
	}
	t.Render()
}
