package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/config"
	"github.com/splashkit/unsplash-cli/internal/validation"
)

type clientFactory struct {
	profile   string
	timeout   time.Duration
	userAgent string
}

func newClientFactory() *clientFactory {
	return &clientFactory{
		profile:   flags.Profile,
		timeout:   flags.Timeout,
		userAgent: fmt.Sprintf("unsplash-cli/%s", version),
	}
}

// client resolves the active profile and builds a client for it.
func (f *clientFactory) client() (*api.Client, error) {
	cfg, err := config.Resolve(f.profile)
	if err != nil {
		return nil, err
	}
	return f.newClient(cfg)
}

func (f *clientFactory) newClient(cfg config.ClientConfig) (*api.Client, error) {
	if cfg.BaseURL != "" {
		if err := validation.ValidateBaseURL(cfg.BaseURL); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", config.EnvAPIURL, err)
		}
	}
	if cfg.OAuthURL != "" {
		if err := validation.ValidateBaseURL(cfg.OAuthURL); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", config.EnvOAuthURL, err)
		}
	}

	opts := cfg.Options()
	if f.userAgent != "" {
		opts = append(opts, api.WithUserAgent(f.userAgent))
	}
	if f.timeout > 0 {
		opts = append(opts, api.WithHTTPClient(&http.Client{Timeout: f.timeout}))
	}
	return api.New(cfg.Credentials, opts...), nil
}
