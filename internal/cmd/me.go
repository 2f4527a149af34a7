package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/validation"
)

func newMeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show or edit the authorized user's profile",
		Long:  "Commands acting on the user who authorized this profile. Requires a user token from 'unsplash auth login --browser'.",
	}
	cmd.AddCommand(newMeGetCmd())
	cmd.AddCommand(newMeUpdateCmd())
	return cmd
}

func newMeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}
			me, err := client.CurrentUser().Get(cmd.Context())
			if err != nil {
				return err
			}
			return printUser(cmd, me)
		}),
	}
}

func newMeUpdateCmd() *cobra.Command {
	var username, firstName, lastName, email, url, location, bio, instagram string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit your profile",
		Long:  "Edit profile fields. Only the flags passed are sent. Requires the write_user scope.",
		Example: strings.TrimSpace(`
  unsplash me update --bio "Landscapes and fog" --location Bern
  unsplash me update --url https://example.com --dry-run
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if !anyFlagChanged(cmd, "username", "first-name", "last-name", "email", "url", "location", "bio", "instagram") {
				return fmt.Errorf("at least one profile field flag is required")
			}
			params := api.ProfileParameters{
				Username:          stringPtrIfChanged(cmd, "username", username),
				FirstName:         stringPtrIfChanged(cmd, "first-name", firstName),
				LastName:          stringPtrIfChanged(cmd, "last-name", lastName),
				Email:             stringPtrIfChanged(cmd, "email", email),
				URL:               stringPtrIfChanged(cmd, "url", url),
				Location:          stringPtrIfChanged(cmd, "location", location),
				Bio:               stringPtrIfChanged(cmd, "bio", bio),
				InstagramUsername: stringPtrIfChanged(cmd, "instagram", instagram),
			}
			if params.Username != nil {
				if err := validation.ValidateRequired("username", username); err != nil {
					return err
				}
			}
			if params.Bio != nil {
				if err := validation.ValidateLength("bio", bio, validation.MaxBioLength); err != nil {
					return err
				}
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			preview := previewCall(client, "update", "profile", api.NewEndpoint(api.EndpointUpdateCurrentUser, ""), params)
			if ok, err := maybeDryRun(cmd, preview); ok {
				return err
			}

			me, err := client.CurrentUser().Update(cmd.Context(), params)
			if err != nil {
				return err
			}
			if isStructured(cmd) {
				return printJSON(cmd, me)
			}
			printAction(cmd, "Updated", "profile", me.Username, "")
			return nil
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&username, "username", "", "Username")
	fs.StringVar(&firstName, "first-name", "", "First name")
	fs.StringVar(&lastName, "last-name", "", "Last name")
	fs.StringVar(&email, "email", "", "Email address")
	fs.StringVar(&url, "url", "", "Portfolio URL")
	fs.StringVar(&location, "location", "", "Location")
	fs.StringVar(&bio, "bio", "", fmt.Sprintf("Bio (max %d characters)", validation.MaxBioLength))
	fs.StringVar(&instagram, "instagram", "", "Instagram username")
	return cmd
}
