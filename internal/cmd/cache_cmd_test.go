package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splashkit/unsplash-cli/internal/cache"
	"github.com/splashkit/unsplash-cli/internal/config"
)

func enableFileCache(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv(cache.EnvNoCache, "")
	return home
}

func TestCachePathAndClear(t *testing.T) {
	home := enableFileCache(t)
	handler := newRouteHandler().On("GET", "/topics", jsonResponse(200, testTopicsJSON))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCLI(t, "topics", "get", "street photo")
	require.NoError(t, err)

	stdout, stderr, err := runCLI(t, "cache", "path")
	require.NoError(t, err)
	path := strings.TrimSpace(stdout)
	assert.True(t, strings.HasPrefix(path, home), "cache lives under the user cache dir: %s", path)
	assert.Equal(t, "unsplash-cli", filepath.Base(filepath.Dir(path)))
	assert.Contains(t, stderr, "bytes")

	stdout, _, err = runCLI(t, "cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Cleared cache: "+path+"\n", stdout)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCachePathJSONWithoutEntry(t *testing.T) {
	enableFileCache(t)
	setupTestEnvWithHandler(t, newRouteHandler())

	stdout, _, err := runCLI(t, "cache", "path", "-o", "json")
	require.NoError(t, err)
	payload := decodeObject(t, stdout)
	assert.NotEmpty(t, payload["location"])
	assert.NotContains(t, payload, "bytes")
}

func TestCacheClearRedis(t *testing.T) {
	srv := miniredis.RunT(t)
	t.Setenv(config.EnvCacheRedisURL, "redis://"+srv.Addr())
	t.Setenv(cache.EnvNoCache, "")
	handler := newRouteHandler().On("GET", "/topics", jsonResponse(200, testTopicsJSON))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCLI(t, "topics", "get", "street photo")
	require.NoError(t, err)
	require.Len(t, srv.Keys(), 1)

	stdout, _, err := runCLI(t, "cache", "clear", "-o", "json")
	require.NoError(t, err)
	assert.Empty(t, srv.Keys())
	assert.Contains(t, decodeObject(t, stdout)["cleared"], "unsplash-cli:topics:")
}

func TestCacheDisabled(t *testing.T) {
	_, stderr, err := runCLI(t, "cache", "path")
	require.Error(t, err)
	assert.Contains(t, stderr, "cache is disabled")
}

func TestCacheRejectsBadRedisURL(t *testing.T) {
	t.Setenv(cache.EnvNoCache, "")
	t.Setenv(config.EnvCacheRedisURL, "memcached://localhost")

	_, stderr, err := runCLI(t, "cache", "clear")
	require.Error(t, err)
	assert.Contains(t, stderr, "invalid redis URL")
}
