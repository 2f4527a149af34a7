package cmd

import (
	"os"
	"testing"

	"github.com/99designs/keyring"

	"github.com/splashkit/unsplash-cli/internal/cache"
	"github.com/splashkit/unsplash-cli/internal/config"
)

func TestMain(m *testing.M) {
	// Credentials exported in the developer's shell must not leak into tests.
	for _, name := range []string{
		config.EnvAccessKey, config.EnvSecretKey, config.EnvRedirectURI, config.EnvAccessToken,
		config.EnvProfile, config.EnvAPIURL, config.EnvOAuthURL, config.EnvDebug, config.EnvCacheRedisURL,
	} {
		_ = os.Unsetenv(name)
	}
	_ = os.Setenv(config.EnvNoBrowser, "1")
	// Tests that exercise the topic cache point it at a temp dir.
	_ = os.Setenv(cache.EnvNoCache, "1")

	// Every open sees an empty keyring unless a test installs its own with
	// withTestKeyring.
	cleanup := config.SetOpenKeyring(func(cfg keyring.Config) (keyring.Keyring, error) {
		return keyring.NewArrayKeyring(nil), nil
	})
	code := m.Run()
	cleanup()
	os.Exit(code)
}

// withTestKeyring installs one in-memory keyring shared by every open for
// the duration of the test, so saved profiles persist across commands.
func withTestKeyring(t *testing.T) keyring.Keyring {
	t.Helper()
	ring := keyring.NewArrayKeyring(nil)
	restore := config.SetOpenKeyring(func(keyring.Config) (keyring.Keyring, error) {
		return ring, nil
	})
	t.Cleanup(restore)
	return ring
}
