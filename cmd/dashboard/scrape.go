package main

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/server"
)

func newScrapeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "scrape [activity...]",
		Short: "Scrape the configured pages once and write summary snapshots.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := server.NewScraper(g.cfg, g.logger)
			if sc == nil {
				return errors.New("no scraper pages configured")
			}

			targets := sc.Activities()
			if len(args) > 0 {
				targets = targets[:0:0]
				for _, arg := range args {
					a, err := activity.Parse(arg)
					if err != nil {
						return err
					}
					targets = append(targets, a)
				}
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Activity", "Standings", "Recent", "Upcoming", "Error"})
			var errs []error
			for _, a := range targets {
				rec, err := sc.Scrape(cmd.Context(), a)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", a, err))
					t.AppendRow(table.Row{a.DisplayName(), "-", "-", "-", err.Error()})
					continue
				}
				t.AppendRow(table.Row{a.DisplayName(), len(rec.Standings), len(rec.RecentMatches), len(rec.UpcomingMatches), ""})
			}
			t.Render()
			return errors.Join(errs...)
		},
	}
}
