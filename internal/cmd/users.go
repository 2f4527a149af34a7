package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/urlparse"
	"github.com/splashkit/unsplash-cli/internal/validation"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user", "u"},
		Short:   "Look up photographers",
	}

	cmd.AddCommand(newUsersGetCmd())
	cmd.AddCommand(newUsersPortfolioCmd())
	cmd.AddCommand(newUsersPhotosCmd())
	cmd.AddCommand(newUsersLikesCmd())
	cmd.AddCommand(newUsersCollectionsCmd())
	cmd.AddCommand(newUsersStatsCmd())

	return cmd
}

// resolveUsername accepts a username, "@username" or a profile URL.
func resolveUsername(arg string) (string, error) {
	return resolveIDArg(strings.TrimPrefix(strings.TrimSpace(arg), "@"), urlparse.TypeUser)
}

var userHeaders = []string{"USERNAME", "NAME", "PHOTOS", "LOCATION"}

func userRow(u api.User) []string {
	return []string{u.Username, str(u.Name), intStr(u.TotalPhotos), str(u.Location)}
}

func userDetail(u *api.FullUser) [][2]string {
	pairs := [][2]string{
		{"ID", u.ID},
		{"Username", u.Username},
		{"Name", str(u.Name)},
		{"Email", str(u.Email)},
		{"Bio", truncate(str(u.Bio), 80)},
		{"Location", str(u.Location)},
		{"Portfolio", str(u.PortfolioURL)},
		{"Instagram", str(u.InstagramUsername)},
		{"Photos", intStr(u.TotalPhotos)},
		{"Collections", intStr(u.TotalCollections)},
		{"Likes", intStr(u.TotalLikes)},
		{"Downloads", intStr(u.Downloads)},
		{"Followers", intStr(u.FollowersCount)},
		{"Following", intStr(u.FollowingCount)},
		{"Uploads left", intStr(u.UploadsRemaining)},
	}
	if u.Links != nil {
		pairs = append(pairs, [2]string{"Page", u.Links.HTML})
	}
	return pairs
}

func printUser(cmd *cobra.Command, u *api.FullUser) error {
	f := newFormatter(cmd)
	if f.Structured() {
		return f.Output(u)
	}
	return f.KeyValue(userDetail(u)...)
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <username|url>",
		Short: "Show a user's public profile",
		Example: strings.TrimSpace(`
  unsplash users get naoufal
  unsplash users get https://unsplash.com/@naoufal -o json
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			username, err := resolveUsername(args[0])
			if err != nil {
				return err
			}
			client, err := getClient()
			if err != nil {
				return err
			}
			user, err := client.Users().Get(cmd.Context(), username)
			if err != nil {
				return err
			}
			return printUser(cmd, user)
		}),
	}
}

func newUsersPortfolioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio <username|url>",
		Short: "Print a user's portfolio link",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			username, err := resolveUsername(args[0])
			if err != nil {
				return err
			}
			client, err := getClient()
			if err != nil {
				return err
			}
			portfolio, err := client.Users().Portfolio(cmd.Context(), username)
			if err != nil {
				return err
			}
			if isStructured(cmd) {
				return printJSON(cmd, portfolio)
			}
			if portfolio.URL == nil || *portfolio.URL == "" {
				printHint(cmd, "%s has no portfolio link", username)
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), *portfolio.URL)
			return nil
		}),
	}
}

func newUsersPhotosCmd() *cobra.Command {
	var username, orderBy, orientation string
	var withStats bool

	cmd := NewListCommand(ListConfig[api.Photo]{
		Use:   "photos <username|url>",
		Short: "List a user's photos",
		Example: strings.TrimSpace(`
  unsplash users photos naoufal
  unsplash users photos naoufal --order-by views --stats -o json
`),
		Args: cobra.ExactArgs(1),
		Validate: func(_ *cobra.Command, args []string) error {
			var err error
			if username, err = resolveUsername(args[0]); err != nil {
				return err
			}
			if orderBy, err = validation.ValidateEnum("order-by", orderBy, validation.UserPhotoOrders); err != nil {
				return err
			}
			orientation, err = validation.ValidateEnum("orientation", orientation, validation.Orientations)
			return err
		},
		Fetch: func(ctx context.Context, client *api.Client, _ []string, page, perPage int) (ListResult[api.Photo], error) {
			params := api.UserPhotosParameters{
				Page:        api.Int(page),
				PerPage:     api.Int(perPage),
				OrderBy:     api.Order(orderBy),
				Orientation: api.Orientation(orientation),
			}
			if withStats {
				params.Stats = api.Bool(true)
			}
			items, err := client.Users().Photos(ctx, username, params)
			if err != nil {
				return ListResult[api.Photo]{}, err
			}
			return pageResult(items, perPage), nil
		},
		Headers:      photoHeaders,
		RowFunc:      photoRow,
		EmptyMessage: "No photos found",
	})

	cmd.Flags().StringVar(&orderBy, "order-by", "", "Sort order: latest|oldest|popular|views|downloads")
	cmd.Flags().StringVar(&orientation, "orientation", "", "landscape|portrait|squarish")
	cmd.Flags().BoolVar(&withStats, "stats", false, "Include per-photo statistics")
	flagAlias(cmd.Flags(), "order-by", "order")
	_ = cmd.RegisterFlagCompletionFunc("order-by", cobra.FixedCompletions(validation.UserPhotoOrders, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func newUsersLikesCmd() *cobra.Command {
	var username, orderBy, orientation string

	cmd := NewListCommand(ListConfig[api.Photo]{
		Use:   "likes <username|url>",
		Short: "List photos a user liked",
		Args:  cobra.ExactArgs(1),
		Validate: func(_ *cobra.Command, args []string) error {
			var err error
			if username, err = resolveUsername(args[0]); err != nil {
				return err
			}
			if orderBy, err = validation.ValidateEnum("order-by", orderBy, validation.PhotoOrders); err != nil {
				return err
			}
			orientation, err = validation.ValidateEnum("orientation", orientation, validation.Orientations)
			return err
		},
		Fetch: func(ctx context.Context, client *api.Client, _ []string, page, perPage int) (ListResult[api.Photo], error) {
			items, err := client.Users().Likes(ctx, username, api.UserLikesParameters{
				Page:        api.Int(page),
				PerPage:     api.Int(perPage),
				OrderBy:     api.Order(orderBy),
				Orientation: api.Orientation(orientation),
			})
			if err != nil {
				return ListResult[api.Photo]{}, err
			}
			return pageResult(items, perPage), nil
		},
		Headers:      photoHeaders,
		RowFunc:      photoRow,
		EmptyMessage: "No liked photos",
	})

	cmd.Flags().StringVar(&orderBy, "order-by", "", "Sort order: latest|oldest|popular")
	cmd.Flags().StringVar(&orientation, "orientation", "", "landscape|portrait|squarish")
	flagAlias(cmd.Flags(), "order-by", "order")
	return cmd
}

func newUsersCollectionsCmd() *cobra.Command {
	var username string
	return NewListCommand(ListConfig[api.Collection]{
		Use:   "collections <username|url>",
		Short: "List a user's collections",
		Args:  cobra.ExactArgs(1),
		Validate: func(_ *cobra.Command, args []string) error {
			var err error
			username, err = resolveUsername(args[0])
			return err
		},
		Fetch: func(ctx context.Context, client *api.Client, _ []string, page, perPage int) (ListResult[api.Collection], error) {
			items, err := client.Users().Collections(ctx, username, page, perPage)
			if err != nil {
				return ListResult[api.Collection]{}, err
			}
			return pageResult(items, perPage), nil
		},
		Headers:      collectionHeaders,
		RowFunc:      collectionRow,
		EmptyMessage: "No collections found",
	})
}

func newUsersStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <username|url>",
		Short: "Show download, view and like history of a user",
		Args:  cobra.ExactArgs(1),
	}
	params := statisticsFlags(cmd)
	cmd.RunE = RunE(func(cmd *cobra.Command, args []string) error {
		username, err := resolveUsername(args[0])
		if err != nil {
			return err
		}
		p, err := params()
		if err != nil {
			return err
		}
		client, err := getClient()
		if err != nil {
			return err
		}
		stats, err := client.Users().Statistics(cmd.Context(), username, p)
		if err != nil {
			return err
		}
		return printStatistics(cmd, "@"+username, stats)
	})
	return cmd
}
