package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/cache"
	"github.com/splashkit/unsplash-cli/internal/config"
	"github.com/splashkit/unsplash-cli/internal/resolve"
	"github.com/splashkit/unsplash-cli/internal/urlparse"
	"github.com/splashkit/unsplash-cli/internal/validation"
)

func newTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "topics",
		Aliases: []string{"topic", "t"},
		Short:   "Browse editorial topics",
	}
	cmd.AddCommand(newTopicsListCmd())
	cmd.AddCommand(newTopicsGetCmd())
	cmd.AddCommand(newTopicsPhotosCmd())
	return cmd
}

const topicCacheKey = "topics"

var topicHeaders = []string{"ID", "SLUG", "TITLE", "PHOTOS", "STATUS"}

func topicRow(t api.Topic) []string {
	return []string{t.ID, t.Slug, t.Title, intStr(t.TotalPhotos), str(t.Status)}
}

func newTopicsListCmd() *cobra.Command {
	var orderBy string
	var ids []string

	cmd := NewListCommand(ListConfig[api.Topic]{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List topics",
		Example: strings.TrimSpace(`
  unsplash topics list
  unsplash topics list --order-by latest --per-page 30
  unsplash topics list --ids nature,travel
`),
		Args: cobra.NoArgs,
		Validate: func(_ *cobra.Command, _ []string) error {
			canonical, err := validation.ValidateEnum("order-by", orderBy, validation.TopicOrders)
			orderBy = canonical
			return err
		},
		Fetch: func(ctx context.Context, client *api.Client, _ []string, page, perPage int) (ListResult[api.Topic], error) {
			items, err := client.Topics().List(ctx, api.TopicListParameters{
				IDs:     ids,
				Page:    api.Int(page),
				PerPage: api.Int(perPage),
				OrderBy: api.Order(orderBy),
			})
			if err != nil {
				return ListResult[api.Topic]{}, err
			}
			return pageResult(items, perPage), nil
		},
		Headers:      topicHeaders,
		RowFunc:      topicRow,
		EmptyMessage: "No topics found",
	})

	cmd.Flags().StringVar(&orderBy, "order-by", "", "Sort order: featured|latest|oldest|position")
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "Only these topic ids or slugs (comma-separated)")
	flagAlias(cmd.Flags(), "order-by", "order")
	_ = cmd.RegisterFlagCompletionFunc("order-by", cobra.FixedCompletions(validation.TopicOrders, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

// resolveTopic looks a topic up by id or slug and falls back to matching
// the argument against the titles of the first page of topics.
func resolveTopic(ctx context.Context, client *api.Client, arg string) (*api.Topic, error) {
	ref, err := resolveIDArg(arg, urlparse.TypeTopic)
	if err != nil {
		return nil, err
	}

	if !strings.ContainsAny(ref, " \t") {
		topic, err := client.Topics().Get(ctx, ref)
		if err == nil {
			return topic, nil
		}
		if !api.IsNotFoundError(err) {
			return nil, err
		}
		slog.Debug("topic lookup missed, trying title match", "topic", ref)
	}

	store := topicStore(client)
	if topic, ok := resolveCachedTopic(ctx, client, store, ref); ok {
		return topic, nil
	}

	topics, err := client.Topics().List(ctx, api.TopicListParameters{PerPage: api.Int(api.MaxPerPage)})
	if err != nil {
		return nil, err
	}
	candidates := make([]resolve.Named, len(topics))
	for i, t := range topics {
		candidates[i] = resolve.Named{ID: t.ID, Slug: t.Slug, Name: t.Title}
	}
	if store != nil {
		store.Put(ctx, candidates)
	}

	match, err := resolve.FuzzyMatch(ref, candidates)
	if err != nil {
		return nil, topicMatchError(ref, err)
	}
	for i := range topics {
		if topics[i].ID == match.ID {
			return &topics[i], nil
		}
	}
	return nil, fmt.Errorf("topic %q disappeared from the listing", match.Slug)
}

// openTopicCache returns the cache of topic titles for baseURL: Redis when
// UNSPLASH_CACHE_REDIS_URL is set, the per-user cache directory otherwise.
// It returns nil without error when caching is disabled.
func openTopicCache(baseURL string) (*cache.Store, error) {
	if cache.Disabled() {
		return nil, nil
	}
	env, err := config.ReadEnv()
	if err != nil {
		return nil, err
	}
	if env.CacheRedisURL != "" {
		rdb, err := cache.OpenRedis(env.CacheRedisURL)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisStore(rdb, topicCacheKey, baseURL), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine cache directory: %w", err)
	}
	return cache.NewStore(dir, topicCacheKey, baseURL), nil
}

func topicStore(client *api.Client) *cache.Store {
	store, err := openTopicCache(client.BaseURL)
	if err != nil {
		slog.Warn("topic cache unavailable", "error", err)
		return nil
	}
	return store
}

// resolveCachedTopic matches ref against a cached topic listing. A miss of
// any kind reports false so the caller refreshes from the API; a cached
// topic that no longer exists drops the cache.
func resolveCachedTopic(ctx context.Context, client *api.Client, store *cache.Store, ref string) (*api.Topic, bool) {
	if store == nil {
		return nil, false
	}
	var cached []resolve.Named
	if !store.Get(ctx, &cached) {
		return nil, false
	}
	match, err := resolve.FuzzyMatch(ref, cached)
	if err != nil {
		slog.Debug("cached topics gave no unique match, refreshing", "topic", ref, "error", err)
		return nil, false
	}
	topic, err := client.Topics().Get(ctx, match.ID)
	if err != nil {
		if api.IsNotFoundError(err) {
			store.Clear(ctx)
		}
		slog.Debug("cached topic lookup failed", "topic", match.Slug, "error", err)
		return nil, false
	}
	return topic, true
}

func topicMatchError(query string, err error) error {
	var ambiguous *resolve.AmbiguousError
	if errors.As(err, &ambiguous) {
		slugs := make([]string, len(ambiguous.Matches))
		for i, m := range ambiguous.Matches {
			slugs[i] = m.Slug
		}
		structured := api.NewStructuredErrorWithContext(api.ErrValidation, err.Error(),
			map[string]any{"topic": query})
		structured.AllowedValues = slugs
		structured.Suggestion = "Pass one of the listed slugs"
		return structured
	}
	var noMatch *resolve.NoMatchError
	if errors.As(err, &noMatch) {
		return api.NewStructuredErrorWithContext(api.ErrNotFound,
			fmt.Sprintf("topic %q not found", query), map[string]any{"topic": query})
	}
	return err
}

func newTopicsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <topic>",
		Short: "Show a topic",
		Long:  "Show a topic. The argument may be an id, a slug, a topic URL or part of the title.",
		Example: strings.TrimSpace(`
  unsplash topics get nature
  unsplash topics get "street photo"
  unsplash topics get https://unsplash.com/t/wallpapers
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}
			topic, err := resolveTopic(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			f := newFormatter(cmd)
			if f.Structured() {
				return f.Output(topic)
			}
			pairs := [][2]string{
				{"ID", topic.ID},
				{"Slug", topic.Slug},
				{"Title", topic.Title},
				{"Description", truncate(str(topic.Description), 80)},
				{"Photos", intStr(topic.TotalPhotos)},
				{"Status", str(topic.Status)},
				{"Featured", boolStr(topic.Featured)},
			}
			if topic.PublishedAt != nil {
				pairs = append(pairs, [2]string{"Published", formatTime(topic.PublishedAt.Time)})
			}
			if topic.Links != nil {
				pairs = append(pairs, [2]string{"Page", topic.Links.HTML})
			}
			return f.KeyValue(pairs...)
		}),
	}
}

func newTopicsPhotosCmd() *cobra.Command {
	var orderBy, orientation string
	var slug string

	cmd := NewListCommand(ListConfig[api.Photo]{
		Use:   "photos <topic>",
		Short: "List the photos of a topic",
		Example: strings.TrimSpace(`
  unsplash topics photos nature --orientation portrait
  unsplash topics photos "architecture" --order-by popular --all --max-pages 2
`),
		Args: cobra.ExactArgs(1),
		Validate: func(cmd *cobra.Command, _ []string) error {
			var err error
			if orderBy, err = validation.ValidateEnum("order-by", orderBy, validation.TopicPhotoOrders); err != nil {
				return err
			}
			orientation, err = validation.ValidateEnum("orientation", orientation, validation.Orientations)
			return err
		},
		Fetch: func(ctx context.Context, client *api.Client, args []string, page, perPage int) (ListResult[api.Photo], error) {
			if slug == "" {
				topic, err := resolveTopic(ctx, client, args[0])
				if err != nil {
					return ListResult[api.Photo]{}, err
				}
				slug = topic.Slug
			}
			items, err := client.Topics().Photos(ctx, slug, api.TopicPhotosParameters{
				Page:        api.Int(page),
				PerPage:     api.Int(perPage),
				Orientation: api.Orientation(orientation),
				OrderBy:     api.Order(orderBy),
			})
			if err != nil {
				return ListResult[api.Photo]{}, err
			}
			return pageResult(items, perPage), nil
		},
		Headers:      photoHeaders,
		RowFunc:      photoRow,
		EmptyMessage: "No photos found",
	})

	cmd.Flags().StringVar(&orderBy, "order-by", "", "Sort order: latest|oldest|popular")
	cmd.Flags().StringVar(&orientation, "orientation", "", "landscape|portrait|squarish")
	flagAlias(cmd.Flags(), "order-by", "order")
	return cmd
}
