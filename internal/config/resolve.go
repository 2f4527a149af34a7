package config

import (
	"errors"
	"strings"

	"github.com/splashkit/unsplash-cli/internal/api"
)

// ClientConfig contains resolved API client settings.
type ClientConfig struct {
	Profile     string
	Credentials api.Credentials
	Scopes      []api.Scope
	BaseURL     string
	OAuthURL    string
	// FromEnv is true when the access key came from the environment.
	FromEnv bool
}

// Options turns the resolved settings into api.Client options.
func (c ClientConfig) Options() []api.Option {
	var opts []api.Option
	if c.BaseURL != "" {
		opts = append(opts, api.WithBaseURL(c.BaseURL))
	}
	if c.OAuthURL != "" {
		opts = append(opts, api.WithOAuthURL(c.OAuthURL))
	}
	return opts
}

// ResolveProfileName picks the profile to use: the explicit name, then
// UNSPLASH_PROFILE, then the stored current profile.
func ResolveProfileName(explicit string, e Env) (string, error) {
	if name := strings.TrimSpace(explicit); name != "" {
		return name, nil
	}
	if e.Profile != "" {
		return e.Profile, nil
	}
	return CurrentProfile()
}

// Resolve merges the stored profile with the environment overlay. A missing
// profile is fine as long as UNSPLASH_ACCESS_KEY is set.
func Resolve(profile string) (ClientConfig, error) {
	e, err := ReadEnv()
	if err != nil {
		return ClientConfig{}, err
	}
	return resolveWith(profile, e)
}

func resolveWith(profile string, e Env) (ClientConfig, error) {
	name, err := ResolveProfileName(profile, e)
	if err != nil {
		// An unreadable keyring is only fatal without env credentials.
		if e.AccessKey == "" {
			return ClientConfig{}, err
		}
		name = defaultProfile
	}

	cfg := ClientConfig{Profile: name}

	stored, err := LoadProfile(name)
	switch {
	case err == nil:
		cfg.Credentials = api.Credentials{
			AccessKey:   stored.AccessKey,
			SecretKey:   stored.SecretKey,
			RedirectURI: stored.RedirectURI,
			BearerToken: stored.AccessToken,
		}
		cfg.Scopes = api.ParseScopes(strings.Join(stored.Scopes, " "))
	case errors.Is(err, ErrProfileNotFound):
	default:
		if e.AccessKey == "" {
			return ClientConfig{}, err
		}
	}

	if e.AccessKey != "" {
		cfg.Credentials.AccessKey = e.AccessKey
		cfg.FromEnv = true
	}
	if e.SecretKey != "" {
		cfg.Credentials.SecretKey = e.SecretKey
	}
	if e.RedirectURI != "" {
		cfg.Credentials.RedirectURI = e.RedirectURI
	}
	if e.AccessToken != "" {
		cfg.Credentials.BearerToken = e.AccessToken
	}
	cfg.BaseURL = e.APIURL
	cfg.OAuthURL = e.OAuthURL

	if cfg.Credentials.AccessKey == "" {
		return ClientConfig{}, ErrNotConfigured
	}
	return cfg, nil
}
