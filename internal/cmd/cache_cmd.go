package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/cache"
	"github.com/splashkit/unsplash-cli/internal/config"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cached topic listing",
	}
	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())
	return cmd
}

// cacheBaseURL is the API host the cache entries are scoped to.
func cacheBaseURL() (string, error) {
	env, err := config.ReadEnv()
	if err != nil {
		return "", err
	}
	if env.APIURL != "" {
		return env.APIURL, nil
	}
	return api.DefaultBaseURL, nil
}

func openCacheForCmd() (*cache.Store, error) {
	baseURL, err := cacheBaseURL()
	if err != nil {
		return nil, err
	}
	store, err := openTopicCache(baseURL)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("cache is disabled (%s is set)", cache.EnvNoCache)
	}
	return store, nil
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the cached topic titles",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			store, err := openCacheForCmd()
			if err != nil {
				return err
			}
			store.Clear(cmd.Context())
			if isStructured(cmd) {
				return printJSON(cmd, map[string]any{"cleared": store.Path()})
			}
			printAction(cmd, "Cleared", "cache", "", store.Path())
			return nil
		}),
	}
}

func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where the topic cache lives",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			store, err := openCacheForCmd()
			if err != nil {
				return err
			}
			size := int64(-1)
			if info, err := os.Stat(store.Path()); err == nil {
				size = info.Size()
			}

			if isStructured(cmd) {
				payload := map[string]any{"location": store.Path()}
				if size >= 0 {
					payload["bytes"] = size
				}
				return printJSON(cmd, payload)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			if size >= 0 {
				printHint(cmd, "# %d bytes", size)
			}
			return nil
		}),
	}
}
