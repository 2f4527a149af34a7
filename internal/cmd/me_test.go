package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeGetUsesBearerToken(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/me", jsonResponse(200, `{"id": "QPxL2MGqfrw", "username": "exampleuser", "email": "joe@example.com", "uploads_remaining": 4}`))
	setupTestEnvWithHandler(t, handler)
	t.Setenv("UNSPLASH_ACCESS_TOKEN", "user-token")

	stdout, _, err := runCLI(t, "me", "get")
	require.NoError(t, err)
	assert.Contains(t, stdout, "joe@example.com")
	assert.Contains(t, stdout, "Uploads left:")

	req := handler.lastRequest("GET", "/me")
	require.NotNil(t, req)
	assert.Equal(t, "Bearer user-token", req.Header.Get("Authorization"))
}

func TestMeGetUnauthorized(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/me", jsonResponse(401, `{"errors": ["OAuth error: The access token is invalid"]}`))
	setupTestEnvWithHandler(t, handler)

	_, stderr, err := runCLI(t, "me", "get")
	require.Error(t, err)
	assert.Equal(t, exitAuth, ExitCode(err))
	assert.Contains(t, stderr, "The access token is invalid")
	assert.Contains(t, stderr, "unsplash auth login")
}

func TestMeUpdateRequiresAField(t *testing.T) {
	handler := newRouteHandler()
	setupTestEnvWithHandler(t, handler)

	_, stderr, err := runCLI(t, "me", "update")
	require.Error(t, err)
	assert.Equal(t, exitUsage, ExitCode(err))
	assert.Contains(t, stderr, "at least one profile field flag is required")
}

func TestMeUpdateBioTooLong(t *testing.T) {
	handler := newRouteHandler()
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCLI(t, "me", "update", "--bio", strings.Repeat("b", 251))
	require.Error(t, err)
	assert.Equal(t, exitUsage, ExitCode(err))
	assert.Empty(t, handler.Requests())
}

func TestMeUpdateSendsOnlyChangedFields(t *testing.T) {
	handler := newRouteHandler().
		On("PUT", "/me", jsonResponse(200, `{"id": "QPxL2MGqfrw", "username": "exampleuser"}`))
	setupTestEnvWithHandler(t, handler)

	stdout, _, err := runCLI(t, "me", "update", "--location", "Bern", "--instagram", "joe")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Updated profile exampleuser")

	req := handler.lastRequest("PUT", "/me")
	require.NotNil(t, req)
	q := req.URL.Query()
	assert.Equal(t, "Bern", q.Get("location"))
	assert.Equal(t, "joe", q.Get("instagram_username"))
	assert.False(t, q.Has("bio"))
	assert.False(t, q.Has("username"))
}

func TestMeUpdateDryRun(t *testing.T) {
	handler := newRouteHandler()
	setupTestEnvWithHandler(t, handler)

	stdout, _, err := runCLI(t, "me", "update", "--bio", "", "--dry-run", "-o", "json")
	require.NoError(t, err)
	assert.Empty(t, handler.Requests())

	payload := decodeObject(t, stdout)
	assert.Equal(t, "profile", payload["resource"])
	assert.Equal(t, "PUT", payload["method"])
}
