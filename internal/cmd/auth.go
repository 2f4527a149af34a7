package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/auth"
	"github.com/splashkit/unsplash-cli/internal/config"
	"github.com/splashkit/unsplash-cli/internal/validation"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage credential profiles",
		Long:  "Store application keys, authorize a user account and switch between profiles",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthProfilesCmd())
	cmd.AddCommand(newAuthUseCmd())

	return cmd
}

// activeProfileName resolves --profile, UNSPLASH_PROFILE and the stored
// current profile, in that order.
func activeProfileName() (string, error) {
	env, err := config.ReadEnv()
	if err != nil {
		return "", err
	}
	return config.ResolveProfileName(flags.Profile, env)
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func newAuthLoginCmd() *cobra.Command {
	var accessKey, secretKey, redirectURI string
	var scopes []string
	var browser bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store application keys and optionally authorize a user",
		Long: strings.TrimSpace(`
Store the access key (and optionally the secret key and redirect URI) of an
Unsplash application in the OS keychain.

With --browser, or when no keys are passed, a local server is started on the
redirect URI and the browser is sent to the authorization page. The user
token returned by the OAuth exchange is stored in the same profile.
`),
		Example: strings.TrimSpace(`
  # Public access with an application key
  unsplash auth login --access-key <key>

  # Authorize a user account
  unsplash auth login --access-key <key> --secret-key <secret> \
    --redirect-uri http://127.0.0.1:8765/callback --scopes public,write_likes --browser

  # Re-authorize an existing profile
  unsplash auth login --profile work
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			env, err := config.ReadEnv()
			if err != nil {
				return err
			}
			name, err := config.ResolveProfileName(flags.Profile, env)
			if err != nil {
				return err
			}

			profile, err := config.LoadProfile(name)
			if err != nil && !errors.Is(err, config.ErrProfileNotFound) {
				return err
			}

			keysGiven := anyFlagChanged(cmd, "access-key", "secret-key", "redirect-uri")
			profile.AccessKey = firstNonEmpty(accessKey, profile.AccessKey, env.AccessKey)
			profile.SecretKey = firstNonEmpty(secretKey, profile.SecretKey, env.SecretKey)
			profile.RedirectURI = firstNonEmpty(redirectURI, profile.RedirectURI, env.RedirectURI)
			if err := validation.ValidateRequired("--access-key", profile.AccessKey); err != nil {
				return err
			}

			requested := api.ParseScopes(strings.Join(scopes, " "))
			if err := validation.ValidateScopes(requested); err != nil {
				return err
			}

			useBrowser := browser || !keysGiven
			if useBrowser {
				if err := validation.ValidateRequired("--secret-key", profile.SecretKey); err != nil {
					return err
				}
				if profile.RedirectURI == "" {
					profile.RedirectURI = auth.DefaultRedirectURI
				}
			}
			if profile.RedirectURI != "" {
				if err := validation.ValidateRedirectURI(profile.RedirectURI); err != nil {
					return err
				}
			}

			profile.UpdatedAt = time.Now().UTC()
			if err := config.SaveProfile(name, profile); err != nil {
				return fmt.Errorf("failed to save profile %q: %w", name, err)
			}

			if !useBrowser {
				if isStructured(cmd) {
					return printJSON(cmd, map[string]any{
						"profile":    name,
						"access_key": maskKey(profile.AccessKey),
						"user_token": profile.HasUserToken(),
					})
				}
				printAction(cmd, "Saved", "profile", name, maskKey(profile.AccessKey))
				return nil
			}

			client, err := newClientFactory().newClient(config.ClientConfig{
				Profile: name,
				Credentials: api.Credentials{
					AccessKey:   profile.AccessKey,
					SecretKey:   profile.SecretKey,
					RedirectURI: profile.RedirectURI,
				},
				BaseURL:  env.APIURL,
				OAuthURL: env.OAuthURL,
			})
			if err != nil {
				return err
			}

			server, err := auth.NewLoginServer(client, name, requested)
			if err != nil {
				return err
			}
			server.Out = cmd.ErrOrStderr()
			if timeout > 0 {
				server.Timeout = timeout
			}

			result, err := server.Run(cmd.Context())
			if err != nil {
				return err
			}

			if isStructured(cmd) {
				return printJSON(cmd, result)
			}
			printAction(cmd, "Authorized", "profile", result.Profile, strings.Join(result.Scopes, " "))
			return nil
		}),
	}

	cmd.Flags().StringVar(&accessKey, "access-key", "", "Application access key")
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "Application secret key (needed for --browser)")
	cmd.Flags().StringVar(&redirectURI, "redirect-uri", "", "Redirect URI registered for the application")
	cmd.Flags().StringSliceVar(&scopes, "scopes", nil, "Scopes to request (comma-separated)")
	cmd.Flags().BoolVar(&browser, "browser", false, "Authorize a user account through the browser")
	cmd.Flags().DurationVar(&timeout, "wait", auth.DefaultTimeout, "How long to wait for the browser callback")
	flagAlias(cmd.Flags(), "access-key", "key")
	flagAlias(cmd.Flags(), "secret-key", "secret")
	flagAlias(cmd.Flags(), "scopes", "scope")

	_ = cmd.RegisterFlagCompletionFunc("scopes", cobra.FixedCompletions(scopeNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func scopeNames() []string {
	names := make([]string, len(api.AllScopes))
	for i, s := range api.AllScopes {
		names[i] = string(s)
	}
	return names
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

type authStatus struct {
	Profile     string   `json:"profile"`
	Source      string   `json:"source"`
	AccessKey   string   `json:"access_key"`
	SecretKey   bool     `json:"secret_key"`
	RedirectURI string   `json:"redirect_uri,omitempty"`
	UserToken   bool     `json:"user_token"`
	Scopes      []string `json:"scopes,omitempty"`
	APIURL      string   `json:"api_url,omitempty"`
	Verified    *bool    `json:"verified,omitempty"`
	Username    string   `json:"username,omitempty"`
}

func newAuthStatusCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active credentials",
		Example: strings.TrimSpace(`
  unsplash auth status
  unsplash auth status --verify -o json
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Resolve(flags.Profile)
			if err != nil {
				return err
			}

			status := authStatus{
				Profile:     cfg.Profile,
				Source:      "keychain",
				AccessKey:   maskKey(cfg.Credentials.AccessKey),
				SecretKey:   cfg.Credentials.SecretKey != "",
				RedirectURI: cfg.Credentials.RedirectURI,
				UserToken:   cfg.Credentials.BearerToken != "",
				APIURL:      cfg.BaseURL,
			}
			if cfg.FromEnv {
				status.Source = "environment"
			}
			for _, s := range cfg.Scopes {
				status.Scopes = append(status.Scopes, string(s))
			}

			if verify {
				client, err := newClientFactory().newClient(cfg)
				if err != nil {
					return err
				}
				ok := true
				if status.UserToken {
					me, err := client.CurrentUser().Get(cmd.Context())
					if err != nil {
						return fmt.Errorf("verification failed: %w", err)
					}
					status.Username = me.Username
				} else if _, err := client.Stats().Total(cmd.Context()); err != nil {
					return fmt.Errorf("verification failed: %w", err)
				}
				status.Verified = &ok
			}

			if isStructured(cmd) {
				return printJSON(cmd, status)
			}

			scopes := strings.Join(status.Scopes, " ")
			if !status.UserToken {
				scopes = ""
			}
			verified := ""
			if status.Verified != nil {
				verified = "yes"
			}
			return newFormatter(cmd).KeyValue(
				[2]string{"Profile", status.Profile},
				[2]string{"Source", status.Source},
				[2]string{"Access key", status.AccessKey},
				[2]string{"Secret key", yesNo(status.SecretKey)},
				[2]string{"Redirect URI", status.RedirectURI},
				[2]string{"User token", yesNo(status.UserToken)},
				[2]string{"Scopes", scopes},
				[2]string{"Username", status.Username},
				[2]string{"API URL", status.APIURL},
				[2]string{"Verified", verified},
			)
		}),
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Make an API call to check the credentials")
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func newAuthLogoutCmd() *cobra.Command {
	var tokenOnly bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the active profile from the keychain",
		Example: strings.TrimSpace(`
  # Forget the user token but keep the application keys
  unsplash auth logout --token-only

  # Remove a profile entirely
  unsplash auth logout --profile work
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			name, err := activeProfileName()
			if err != nil {
				return err
			}

			if tokenOnly {
				err := config.UpdateProfile(name, func(p *config.Profile) {
					p.AccessToken = ""
					p.Scopes = nil
					p.UpdatedAt = time.Now().UTC()
				})
				if err != nil {
					return err
				}
				if isStructured(cmd) {
					return printJSON(cmd, map[string]any{"profile": name, "token_removed": true})
				}
				printAction(cmd, "Removed user token from", "profile", name, "")
				return nil
			}

			if err := config.DeleteProfile(name); err != nil {
				return err
			}
			if isStructured(cmd) {
				return printJSON(cmd, map[string]any{"profile": name, "deleted": true})
			}
			printAction(cmd, "Deleted", "profile", name, "")
			return nil
		}),
	}

	cmd.Flags().BoolVar(&tokenOnly, "token-only", false, "Only forget the user token")
	return cmd
}

func newAuthProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"ls"},
		Short:   "List stored profiles",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			names, err := config.ListProfiles()
			if err != nil {
				return err
			}
			current, err := config.CurrentProfile()
			if err != nil {
				return err
			}

			type profileRow struct {
				Name    string `json:"name"`
				Current bool   `json:"current"`
			}
			rows := make([]profileRow, 0, len(names))
			for _, n := range names {
				rows = append(rows, profileRow{Name: n, Current: n == current})
			}

			f := newFormatter(cmd)
			if f.Structured() {
				return f.Output(map[string]any{"items": rows, "current": current})
			}
			if len(rows) == 0 {
				if !flags.Quiet {
					f.Empty("No profiles stored. Run 'unsplash auth login' to create one.")
				}
				return nil
			}
			f.StartTable([]string{"NAME", "CURRENT"})
			for _, r := range rows {
				marker := ""
				if r.Current {
					marker = "*"
				}
				f.Row(r.Name, marker)
			}
			return f.EndTable()
		}),
	}
}

func newAuthUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Switch the current profile",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if _, err := config.LoadProfile(name); err != nil {
				return err
			}
			if err := config.SetCurrentProfile(name); err != nil {
				return err
			}
			if isStructured(cmd) {
				return printJSON(cmd, map[string]any{"current": name})
			}
			printAction(cmd, "Switched to", "profile", name, "")
			return nil
		}),
	}
}
