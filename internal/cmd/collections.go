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

func newCollectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection", "col"},
		Short:   "Browse and curate collections",
	}

	cmd.AddCommand(newCollectionsListCmd())
	cmd.AddCommand(newCollectionsGetCmd())
	cmd.AddCommand(newCollectionsPhotosCmd())
	cmd.AddCommand(newCollectionsRelatedCmd())
	cmd.AddCommand(newCollectionsCreateCmd())
	cmd.AddCommand(newCollectionsUpdateCmd())
	cmd.AddCommand(newCollectionsDeleteCmd())
	cmd.AddCommand(newCollectionsPhotoCmd(true))
	cmd.AddCommand(newCollectionsPhotoCmd(false))

	return cmd
}

var collectionHeaders = []string{"ID", "TITLE", "PHOTOS", "PRIVATE", "OWNER"}

func collectionRow(c api.Collection) []string {
	owner := ""
	if c.User != nil {
		owner = c.User.Username
	}
	return []string{c.ID, truncate(c.Title, 40), intStr(c.TotalPhotos), boolStr(c.Private), owner}
}

func newCollectionsListCmd() *cobra.Command {
	return NewListCommand(ListConfig[api.Collection]{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List featured collections",
		Args:    cobra.NoArgs,
		Fetch: func(ctx context.Context, client *api.Client, _ []string, page, perPage int) (ListResult[api.Collection], error) {
			items, err := client.Collections().List(ctx, page, perPage)
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

func collectionDetail(c *api.Collection) [][2]string {
	pairs := [][2]string{
		{"ID", c.ID},
		{"Title", c.Title},
		{"Description", str(c.Description)},
		{"Photos", intStr(c.TotalPhotos)},
		{"Private", boolStr(c.Private)},
	}
	if c.User != nil {
		pairs = append(pairs, [2]string{"Owner", c.User.Username})
	}
	if c.PublishedAt != nil {
		pairs = append(pairs, [2]string{"Published", formatTime(c.PublishedAt.Time)})
	}
	if c.Links != nil {
		pairs = append(pairs, [2]string{"Page", c.Links.HTML})
	}
	return pairs
}

func printCollection(cmd *cobra.Command, c *api.Collection) error {
	f := newFormatter(cmd)
	if f.Structured() {
		return f.Output(c)
	}
	return f.KeyValue(collectionDetail(c)...)
}

func newCollectionsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|url>",
		Short: "Show a collection",
		Example: strings.TrimSpace(`
  unsplash collections get 1538150
  unsplash collections get https://unsplash.com/collections/1538150/milky-way
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := resolveIDArg(args[0], urlparse.TypeCollection)
			if err != nil {
				return err
			}
			client, err := getClient()
			if err != nil {
				return err
			}
			collection, err := client.Collections().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printCollection(cmd, collection)
		}),
	}
}

func newCollectionsPhotosCmd() *cobra.Command {
	var id string
	return NewListCommand(ListConfig[api.Photo]{
		Use:   "photos <id|url>",
		Short: "List the photos of a collection",
		Args:  cobra.ExactArgs(1),
		Validate: func(_ *cobra.Command, args []string) error {
			var err error
			id, err = resolveIDArg(args[0], urlparse.TypeCollection)
			return err
		},
		Fetch: func(ctx context.Context, client *api.Client, _ []string, page, perPage int) (ListResult[api.Photo], error) {
			items, err := client.Collections().Photos(ctx, id, page, perPage)
			if err != nil {
				return ListResult[api.Photo]{}, err
			}
			return pageResult(items, perPage), nil
		},
		Headers:      photoHeaders,
		RowFunc:      photoRow,
		EmptyMessage: "Collection is empty",
	})
}

func newCollectionsRelatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "related <id|url>",
		Short: "List collections similar to a collection",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := resolveIDArg(args[0], urlparse.TypeCollection)
			if err != nil {
				return err
			}
			client, err := getClient()
			if err != nil {
				return err
			}
			related, err := client.Collections().Related(cmd.Context(), id)
			if err != nil {
				return err
			}

			f := newFormatter(cmd)
			if f.Structured() {
				return f.Output(related)
			}
			if len(related) == 0 {
				if !flags.Quiet {
					f.Empty("No related collections")
				}
				return nil
			}
			f.StartTable(collectionHeaders)
			for _, c := range related {
				f.Row(collectionRow(c)...)
			}
			return f.EndTable()
		}),
	}
}

// collectionFields registers --title, --description and --private and
// returns a builder for the request parameters.
func collectionFields(cmd *cobra.Command) func() (api.CollectionParameters, error) {
	var title, description string
	var private bool
	cmd.Flags().StringVar(&title, "title", "", fmt.Sprintf("Collection title (max %d characters)", validation.MaxCollectionTitle))
	cmd.Flags().StringVar(&description, "description", "", fmt.Sprintf("Collection description (max %d characters)", validation.MaxCollectionDesc))
	cmd.Flags().BoolVar(&private, "private", false, "Make the collection private")
	flagAlias(cmd.Flags(), "description", "desc")

	return func() (api.CollectionParameters, error) {
		params := api.CollectionParameters{
			Title:       stringPtrIfChanged(cmd, "title", strings.TrimSpace(title)),
			Description: stringPtrIfChanged(cmd, "description", description),
			Private:     boolPtrIfChanged(cmd, "private", private),
		}
		if params.Title != nil {
			if err := validation.ValidateRequired("title", *params.Title); err != nil {
				return params, err
			}
			if err := validation.ValidateLength("title", *params.Title, validation.MaxCollectionTitle); err != nil {
				return params, err
			}
		}
		if params.Description != nil {
			if err := validation.ValidateLength("description", description, validation.MaxCollectionDesc); err != nil {
				return params, err
			}
		}
		return params, nil
	}
}

func newCollectionsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a collection",
		Long:  "Create a collection owned by the current user. Requires the write_collections scope.",
		Example: strings.TrimSpace(`
  unsplash collections create --title "Fog" --private
  unsplash collections create --title "Fog" --description "Misty mornings" --dry-run
`),
		Args: cobra.NoArgs,
	}
	fields := collectionFields(cmd)
	_ = cmd.MarkFlagRequired("title")

	cmd.RunE = RunE(func(cmd *cobra.Command, _ []string) error {
		params, err := fields()
		if err != nil {
			return err
		}
		client, err := getClient()
		if err != nil {
			return err
		}
		preview := previewCall(client, "create", "collection", api.NewEndpoint(api.EndpointCreateCollection, ""), params)
		if ok, err := maybeDryRun(cmd, preview); ok {
			return err
		}

		collection, err := client.Collections().Create(cmd.Context(), params)
		if err != nil {
			return err
		}
		if isStructured(cmd) {
			return printJSON(cmd, collection)
		}
		printAction(cmd, "Created", "collection", collection.ID, collection.Title)
		return nil
	})
	return cmd
}

func newCollectionsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id|url>",
		Short: "Edit a collection",
		Long:  "Edit the title, description or visibility of a collection. Requires the write_collections scope.",
		Args:  cobra.ExactArgs(1),
	}
	fields := collectionFields(cmd)

	cmd.RunE = RunE(func(cmd *cobra.Command, args []string) error {
		id, err := resolveIDArg(args[0], urlparse.TypeCollection)
		if err != nil {
			return err
		}
		if !anyFlagChanged(cmd, "title", "description", "private") {
			return fmt.Errorf("at least one of --title, --description or --private is required")
		}
		params, err := fields()
		if err != nil {
			return err
		}
		client, err := getClient()
		if err != nil {
			return err
		}
		preview := previewCall(client, "update", "collection", api.NewEndpoint(api.EndpointUpdateCollection, id), params)
		if ok, err := maybeDryRun(cmd, preview); ok {
			return err
		}

		collection, err := client.Collections().Update(cmd.Context(), id, params)
		if err != nil {
			return err
		}
		if isStructured(cmd) {
			return printJSON(cmd, collection)
		}
		printAction(cmd, "Updated", "collection", collection.ID, collection.Title)
		return nil
	})
	return cmd
}

func newCollectionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id|url>",
		Aliases: []string{"rm"},
		Short:   "Delete a collection",
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := resolveIDArg(args[0], urlparse.TypeCollection)
			if err != nil {
				return err
			}
			client, err := getClient()
			if err != nil {
				return err
			}
			preview := previewCall(client, "delete", "collection", api.NewEndpoint(api.EndpointDeleteCollection, id), nil)
			if ok, err := maybeDryRun(cmd, preview); ok {
				return err
			}

			if err := client.Collections().Delete(cmd.Context(), id); err != nil {
				return err
			}
			if isStructured(cmd) {
				return printJSON(cmd, map[string]any{"id": id, "deleted": true})
			}
			printAction(cmd, "Deleted", "collection", id, "")
			return nil
		}),
	}
}

// newCollectionsPhotoCmd builds "add" or "remove", which move one photo in
// or out of a collection.
func newCollectionsPhotoCmd(add bool) *cobra.Command {
	use, short, kind, action := "add", "Add a photo to a collection", api.EndpointAddToCollection, "Added"
	if !add {
		use, short, kind, action = "remove", "Remove a photo from a collection", api.EndpointRemoveFromCollection, "Removed"
	}

	return &cobra.Command{
		Use:   use + " <collection-id|url> <photo-id|url>",
		Short: short,
		Example: strings.TrimSpace(fmt.Sprintf(`
  unsplash collections %s 1538150 Dwu85P9SOIk
  unsplash collections %s 1538150 https://unsplash.com/photos/Dwu85P9SOIk --dry-run
`, use, use)),
		Args: cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			collectionID, err := resolveIDArg(args[0], urlparse.TypeCollection)
			if err != nil {
				return err
			}
			photoID, err := resolveIDArg(args[1], urlparse.TypePhoto)
			if err != nil {
				return err
			}
			client, err := getClient()
			if err != nil {
				return err
			}
			params := api.CollectionPhotoParameters{PhotoID: photoID}
			preview := previewCall(client, use, "collection photo", api.NewEndpoint(kind, collectionID), params)
			if ok, err := maybeDryRun(cmd, preview); ok {
				return err
			}

			var result *api.CollectionPhotoResult
			if add {
				result, err = client.Collections().AddPhoto(cmd.Context(), collectionID, photoID)
			} else {
				result, err = client.Collections().RemovePhoto(cmd.Context(), collectionID, photoID)
			}
			if err != nil {
				return err
			}
			if isStructured(cmd) {
				return printJSON(cmd, result)
			}
			printAction(cmd, action, "photo", photoID, "collection "+collectionID)
			return nil
		}),
	}
}
