package cmd

import (
	"github.com/spf13/cobra"
)

func newRateLimitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ratelimit",
		Aliases: []string{"rate-limit", "quota"},
		Short:   "Show the remaining hourly request quota",
		Long:    "Make a lightweight API call and print the quota counters it reported.",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}
			if _, err := client.Stats().Total(cmd.Context()); err != nil {
				return err
			}

			rl := client.RateLimit()
			f := newFormatter(cmd)
			if f.Structured() {
				meta := rl.Meta()
				if meta == nil {
					meta = map[string]any{}
				}
				return f.Output(meta)
			}
			if rl == nil || (rl.Limit == nil && rl.Remaining == nil) {
				printHint(cmd, "The API did not report rate limit headers")
				return nil
			}
			return f.KeyValue(
				[2]string{"Limit", intStr(rl.Limit)},
				[2]string{"Remaining", intStr(rl.Remaining)},
			)
		}),
	}
}
