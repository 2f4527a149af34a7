package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/outfmt"
	"github.com/splashkit/unsplash-cli/internal/validation"
)

// ListResult represents one fetched page.
type ListResult[T any] struct {
	Items []T
	// Total is the result count reported by search endpoints, or 0.
	Total   int
	HasMore bool
}

// pageResult builds a ListResult for endpoints that return a bare array.
// A full page means there may be another one.
func pageResult[T any](items []T, perPage int) ListResult[T] {
	return ListResult[T]{Items: items, HasMore: len(items) >= perPage}
}

// searchResult builds a ListResult from a search page.
func searchResult[T any](result *api.SearchResult[T], page int) ListResult[T] {
	return ListResult[T]{
		Items:   result.Results,
		Total:   result.Total,
		HasMore: page < result.TotalPages,
	}
}

// ListConfig defines how a list command behaves
type ListConfig[T any] struct {
	Use     string
	Aliases []string
	Short   string
	Long    string
	Example string
	Args    cobra.PositionalArgs
	// Validate runs once before the first fetch.
	Validate     func(cmd *cobra.Command, args []string) error
	Fetch        func(ctx context.Context, client *api.Client, args []string, page, perPage int) (ListResult[T], error)
	Headers      []string
	RowFunc      func(T) []string
	EmptyMessage string
	// DefaultMaxPages overrides the default --max-pages value (defaults to 10).
	DefaultMaxPages int
}

// NewListCommand creates a paginated cobra command from cfg.
func NewListCommand[T any](cfg ListConfig[T]) *cobra.Command {
	var page, perPage, maxPages int
	var all bool

	defaultMaxPages := cfg.DefaultMaxPages
	if defaultMaxPages == 0 {
		defaultMaxPages = 10
	}

	cmd := &cobra.Command{
		Use:     cfg.Use,
		Aliases: cfg.Aliases,
		Short:   cfg.Short,
		Long:    cfg.Long,
		Example: cfg.Example,
		Args:    cfg.Args,
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidatePage(page); err != nil {
				return err
			}
			if page == 0 {
				page = 1
			}
			if err := validation.ValidatePerPage(perPage); err != nil {
				return err
			}
			if all && maxPages < 1 {
				return fmt.Errorf("--max-pages must be >= 1")
			}
			if cfg.Validate != nil {
				if err := cfg.Validate(cmd, args); err != nil {
					return err
				}
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var items []T
			var last ListResult[T]
			pagesFetched := 0
			for current := page; ; current++ {
				result, err := cfg.Fetch(ctx, client, args, current, perPage)
				if err != nil {
					return err
				}
				pagesFetched++
				items = append(items, result.Items...)
				last = result
				if !all || !result.HasMore || len(result.Items) == 0 {
					break
				}
				if pagesFetched >= maxPages {
					printHint(cmd, "# Stopped after %d pages; use --max-pages to fetch more", maxPages)
					break
				}
				if outfmt.ModeFromContext(ctx) == outfmt.Text {
					printHint(cmd, "Fetching page %d...", current+1)
				}
			}
			if items == nil {
				items = make([]T, 0)
			}

			f := newFormatter(cmd)
			if outfmt.IsJSONL(ctx) && outfmt.GetTemplate(ctx) == "" {
				return f.Output(items)
			}
			if f.Structured() {
				meta := map[string]any{
					"page":          page,
					"per_page":      perPage,
					"pages_fetched": pagesFetched,
					"count":         len(items),
					"has_more":      last.HasMore,
				}
				if last.Total > 0 {
					meta["total"] = last.Total
				}
				addRateLimitMeta(meta, client)
				return f.Output(map[string]any{"items": items, "meta": meta})
			}

			if len(items) == 0 {
				if cfg.EmptyMessage != "" && !flags.Quiet {
					f.Empty(cfg.EmptyMessage)
				}
				return nil
			}
			f.StartTable(cfg.Headers)
			for _, item := range items {
				f.Row(cfg.RowFunc(item)...)
			}
			if err := f.EndTable(); err != nil {
				return err
			}
			if last.HasMore && !all {
				printHint(cmd, "# More results available (--page %d)", page+1)
			}
			return nil
		}),
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", api.DefaultPerPage, fmt.Sprintf("Items per page (max %d)", api.MaxPerPage))
	cmd.Flags().BoolVar(&all, "all", false, "Fetch every page")
	cmd.Flags().IntVar(&maxPages, "max-pages", defaultMaxPages, "Maximum pages to fetch with --all")
	flagAlias(cmd.Flags(), "per-page", "limit")

	return cmd
}

// addRateLimitMeta copies the last recorded quota counters into meta.
func addRateLimitMeta(meta map[string]any, client *api.Client) {
	if client == nil {
		return
	}
	if rl := client.RateLimit().Meta(); rl != nil {
		meta["rate_limit"] = rl
	}
}
