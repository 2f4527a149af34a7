package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAccessKey      = "UNSPLASH_ACCESS_KEY"
	EnvSecretKey      = "UNSPLASH_SECRET_KEY"
	EnvRedirectURI    = "UNSPLASH_REDIRECT_URI"
	EnvAccessToken    = "UNSPLASH_ACCESS_TOKEN"
	EnvProfile        = "UNSPLASH_PROFILE"
	EnvAPIURL         = "UNSPLASH_API_URL"
	EnvOAuthURL       = "UNSPLASH_OAUTH_URL"
	EnvKeyringBackend = "UNSPLASH_KEYRING_BACKEND"
	EnvNoBrowser      = "UNSPLASH_NO_BROWSER"
	EnvDebug          = "UNSPLASH_DEBUG"
	EnvCacheRedisURL  = "UNSPLASH_CACHE_REDIS_URL"
)

// Env is the UNSPLASH_* environment overlay. Non-empty values win over the
// stored profile.
type Env struct {
	AccessKey      string `env:"UNSPLASH_ACCESS_KEY"`
	SecretKey      string `env:"UNSPLASH_SECRET_KEY"`
	RedirectURI    string `env:"UNSPLASH_REDIRECT_URI"`
	AccessToken    string `env:"UNSPLASH_ACCESS_TOKEN"`
	Profile        string `env:"UNSPLASH_PROFILE"`
	APIURL         string `env:"UNSPLASH_API_URL"`
	OAuthURL       string `env:"UNSPLASH_OAUTH_URL"`
	KeyringBackend string `env:"UNSPLASH_KEYRING_BACKEND" envDefault:"auto"`
	NoBrowser      bool   `env:"UNSPLASH_NO_BROWSER"`
	Debug          bool   `env:"UNSPLASH_DEBUG"`
	CacheRedisURL  string `env:"UNSPLASH_CACHE_REDIS_URL"`
}

// ReadEnv parses the UNSPLASH_* variables.
func ReadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("invalid environment: %w", err)
	}
	e.AccessKey = strings.TrimSpace(e.AccessKey)
	e.SecretKey = strings.TrimSpace(e.SecretKey)
	e.RedirectURI = strings.TrimSpace(e.RedirectURI)
	e.AccessToken = strings.TrimSpace(e.AccessToken)
	e.Profile = strings.TrimSpace(e.Profile)
	e.CacheRedisURL = strings.TrimSpace(e.CacheRedisURL)
	e.APIURL = strings.TrimSuffix(strings.TrimSpace(e.APIURL), "/")
	e.OAuthURL = strings.TrimSuffix(strings.TrimSpace(e.OAuthURL), "/")
	e.KeyringBackend = keyringBackendMode(e.KeyringBackend)
	return e, nil
}

// LoadEnv loads variables from .env style files into the process
// environment. Variables already set are kept. With no arguments it reads
// ./.env; missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
