package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/urlparse"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Fetch whatever an unsplash.com URL points at",
		Long: strings.TrimSpace(`
Parse an unsplash.com web URL and show the photo, collection, user or topic
it refers to. Useful when a link was copied from the browser.
`),
		Example: strings.TrimSpace(`
  unsplash open https://unsplash.com/photos/a-mountain-Dwu85P9SOIk
  unsplash open https://unsplash.com/collections/1538150/milky-way
  unsplash open https://unsplash.com/@naoufal -o json
  unsplash open https://unsplash.com/t/wallpapers
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			parsed, err := urlparse.Parse(args[0])
			if err != nil {
				return api.NewStructuredErrorWithContext(api.ErrValidation, err.Error(),
					map[string]any{"argument": args[0]})
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			switch parsed.ResourceType {
			case urlparse.TypePhoto:
				photos, err := fetchPhotos(ctx, client, []string{parsed.ID})
				if err != nil {
					return err
				}
				if isStructured(cmd) {
					return printJSON(cmd, photos[0])
				}
				return newFormatter(cmd).KeyValue(photoDetail(photos[0])...)
			case urlparse.TypeCollection:
				collection, err := client.Collections().Get(ctx, parsed.ID)
				if err != nil {
					return err
				}
				return printCollection(cmd, collection)
			case urlparse.TypeUser:
				user, err := client.Users().Get(ctx, parsed.ID)
				if err != nil {
					return err
				}
				return printUser(cmd, user)
			case urlparse.TypeTopic:
				topic, err := client.Topics().Get(ctx, parsed.ID)
				if err != nil {
					return err
				}
				if isStructured(cmd) {
					return printJSON(cmd, topic)
				}
				return newFormatter(cmd).KeyValue(
					[2]string{"ID", topic.ID},
					[2]string{"Slug", topic.Slug},
					[2]string{"Title", topic.Title},
					[2]string{"Photos", intStr(topic.TotalPhotos)},
				)
			default:
				return fmt.Errorf("unsupported resource type %q", parsed.ResourceType)
			}
		}),
	}
}
