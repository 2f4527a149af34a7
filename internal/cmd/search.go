package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/urlparse"
	"github.com/splashkit/unsplash-cli/internal/validation"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search",
		Aliases: []string{"s"},
		Short:   "Search photos, collections and users",
	}
	cmd.AddCommand(newSearchPhotosCmd())
	cmd.AddCommand(newSearchCollectionsCmd())
	cmd.AddCommand(newSearchUsersCmd())
	return cmd
}

func searchQuery(args []string) (string, error) {
	query := strings.TrimSpace(strings.Join(args, " "))
	if err := validation.ValidateRequired("query", query); err != nil {
		return "", err
	}
	return query, nil
}

func newSearchPhotosCmd() *cobra.Command {
	var query, orderBy, contentFilter, color, orientation, lang string
	var collections []string
	var collectionIDs []string

	cmd := NewListCommand(ListConfig[api.Photo]{
		Use:   "photos <query>",
		Short: "Search photos",
		Example: strings.TrimSpace(`
  unsplash search photos forest
  unsplash search photos "misty forest" --orientation landscape --color green
  unsplash search photos cat --order-by latest -o json --jq '.items[].urls.small'
`),
		Args: cobra.MinimumNArgs(1),
		Validate: func(cmd *cobra.Command, args []string) error {
			var err error
			if query, err = searchQuery(args); err != nil {
				return err
			}
			if orderBy, err = validation.ValidateEnum("order-by", orderBy, validation.SearchOrders); err != nil {
				return err
			}
			if contentFilter, err = validation.ValidateEnum("content-filter", contentFilter, validation.ContentFilters); err != nil {
				return err
			}
			if color, err = validation.ValidateEnum("color", color, validation.Colors); err != nil {
				return err
			}
			if orientation, err = validation.ValidateEnum("orientation", orientation, validation.Orientations); err != nil {
				return err
			}
			collectionIDs, err = resolveIDArgs(collections, urlparse.TypeCollection)
			return err
		},
		Fetch: func(ctx context.Context, client *api.Client, _ []string, page, perPage int) (ListResult[api.Photo], error) {
			params := api.PhotoSearchParameters{
				Query:         query,
				Page:          api.Int(page),
				PerPage:       api.Int(perPage),
				OrderBy:       api.Order(orderBy),
				Collections:   collectionIDs,
				ContentFilter: api.ContentFilter(contentFilter),
				Color:         api.Color(color),
				Orientation:   api.Orientation(orientation),
			}
			if lang != "" {
				params.Lang = api.String(lang)
			}
			result, err := client.Search().Photos(ctx, params)
			if err != nil {
				return ListResult[api.Photo]{}, err
			}
			return searchResult(result, page), nil
		},
		Headers:      photoHeaders,
		RowFunc:      photoRow,
		EmptyMessage: "No photos match",
	})

	fs := cmd.Flags()
	fs.StringVar(&orderBy, "order-by", "", "Sort order: relevant|latest")
	fs.StringVar(&contentFilter, "content-filter", "", "low|high")
	fs.StringVar(&color, "color", "", "Dominant colour: "+strings.Join(validation.Colors, "|"))
	fs.StringVar(&orientation, "orientation", "", "landscape|portrait|squarish")
	fs.StringVar(&lang, "lang", "", "ISO 639-1 language of the query (beta)")
	fs.StringSliceVar(&collections, "collections", nil, "Restrict to collection ids (comma-separated)")
	flagAlias(fs, "order-by", "order")
	flagAlias(fs, "color", "colour")
	_ = cmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(validation.Colors, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("orientation", cobra.FixedCompletions(validation.Orientations, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func newSearchCollectionsCmd() *cobra.Command {
	var query string
	return NewListCommand(ListConfig[api.Collection]{
		Use:   "collections <query>",
		Short: "Search collections",
		Args:  cobra.MinimumNArgs(1),
		Validate: func(_ *cobra.Command, args []string) error {
			var err error
			query, err = searchQuery(args)
			return err
		},
		Fetch: func(ctx context.Context, client *api.Client, _ []string, page, perPage int) (ListResult[api.Collection], error) {
			result, err := client.Search().Collections(ctx, query, page, perPage)
			if err != nil {
				return ListResult[api.Collection]{}, err
			}
			return searchResult(result, page), nil
		},
		Headers:      collectionHeaders,
		RowFunc:      collectionRow,
		EmptyMessage: "No collections match",
	})
}

func newSearchUsersCmd() *cobra.Command {
	var query string
	return NewListCommand(ListConfig[api.User]{
		Use:   "users <query>",
		Short: "Search users",
		Args:  cobra.MinimumNArgs(1),
		Validate: func(_ *cobra.Command, args []string) error {
			var err error
			query, err = searchQuery(args)
			return err
		},
		Fetch: func(ctx context.Context, client *api.Client, _ []string, page, perPage int) (ListResult[api.User], error) {
			result, err := client.Search().Users(ctx, query, page, perPage)
			if err != nil {
				return ListResult[api.User]{}, err
			}
			return searchResult(result, page), nil
		},
		Headers:      userHeaders,
		RowFunc:      userRow,
		EmptyMessage: "No users match",
	})
}
