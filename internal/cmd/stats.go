package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show platform-wide counters",
	}
	cmd.AddCommand(newStatsTotalCmd())
	cmd.AddCommand(newStatsMonthCmd())
	return cmd
}

func formatCount(v int64) string {
	return strconv.FormatInt(v, 10)
}

func newStatsTotalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "All-time totals",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}
			s, err := client.Stats().Total(cmd.Context())
			if err != nil {
				return err
			}
			f := newFormatter(cmd)
			if f.Structured() {
				return f.Output(s)
			}
			return f.KeyValue(
				[2]string{"Photos", formatCount(s.TotalPhotos)},
				[2]string{"Downloads", formatCount(s.Downloads)},
				[2]string{"Views", formatCount(s.Views)},
				[2]string{"Photographers", formatCount(s.Photographers)},
				[2]string{"Pixels", formatCount(s.Pixels)},
				[2]string{"Downloads/s", formatCount(s.DownloadsPerSecond)},
				[2]string{"Views/s", formatCount(s.ViewsPerSecond)},
				[2]string{"Developers", formatCount(s.Developers)},
				[2]string{"Applications", formatCount(s.Applications)},
				[2]string{"Requests", formatCount(s.Requests)},
			)
		}),
	}
}

func newStatsMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Counters for the past 30 days",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}
			s, err := client.Stats().Month(cmd.Context())
			if err != nil {
				return err
			}
			f := newFormatter(cmd)
			if f.Structured() {
				return f.Output(s)
			}
			return f.KeyValue(
				[2]string{"Downloads", formatCount(s.Downloads)},
				[2]string{"Views", formatCount(s.Views)},
				[2]string{"New photos", formatCount(s.NewPhotos)},
				[2]string{"New photographers", formatCount(s.NewPhotographers)},
				[2]string{"New pixels", formatCount(s.NewPixels)},
				[2]string{"New developers", formatCount(s.NewDevelopers)},
				[2]string{"New applications", formatCount(s.NewApplications)},
				[2]string{"New requests", formatCount(s.NewRequests)},
			)
		}),
	}
}
