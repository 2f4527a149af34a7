package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splashkit/unsplash-cli/internal/update"
)

// version is set at build time via ldflags
var version = "dev"

// checkForUpdate is replaced in tests.
var checkForUpdate = update.CheckForUpdate

func newVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version information",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			var result *update.CheckResult
			if check {
				// Fails silently: no result means no known update.
				result = checkForUpdate(cmd.Context(), version)
			}

			if isStructured(cmd) {
				payload := map[string]any{"version": version}
				if result != nil {
					payload["update"] = result
				}
				return printJSON(cmd, payload)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unsplash-cli version %s\n", version)
			switch {
			case !check:
			case result != nil && result.UpdateAvailable:
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "\n%s\n", result.Message())
			case result != nil:
				printHint(cmd, "You are running the latest version.")
			default:
				printHint(cmd, "Could not check for updates.")
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")
	return cmd
}
