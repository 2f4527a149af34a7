package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/splashkit/unsplash-cli/internal/config"
)

// captureStdout runs fn and returns what it wrote to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, r)
		close(done)
	}()

	fn()

	_ = w.Close()
	os.Stdout = old
	<-done
	return buf.String()
}

// captureStderr runs fn and returns what it wrote to os.Stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, r)
		close(done)
	}()

	fn()

	_ = w.Close()
	os.Stderr = old
	<-done
	return buf.String()
}

// captureOutput runs fn and returns both streams.
func captureOutput(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()
	stderr = captureStderr(t, func() {
		stdout = captureStdout(t, fn)
	})
	return stdout, stderr
}

// runCLI executes the CLI with args and returns its stdout, stderr and error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var err error
	stdout, stderr := captureOutput(t, func() {
		err = Execute(context.Background(), args)
	})
	return stdout, stderr, err
}

// setupTestEnvWithHandler starts a mock API server and points the CLI at it
// with an application key from the environment.
func setupTestEnvWithHandler(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv(config.EnvAPIURL, server.URL)
	t.Setenv(config.EnvOAuthURL, server.URL)
	t.Setenv(config.EnvAccessKey, "test-key")
	return server
}

// jsonResponse returns a handler writing body with status.
func jsonResponse(statusCode int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}
}

// withHeaders wraps h so it also sets the given response headers.
func withHeaders(h http.HandlerFunc, headers map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		h(w, r)
	}
}

// routeHandler routes requests by exact "METHOD PATH" and records every
// request it receives. Unknown routes answer 404.
type routeHandler struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []*http.Request
}

func newRouteHandler() *routeHandler {
	return &routeHandler{routes: make(map[string]http.HandlerFunc)}
}

// On registers handler for method and path and returns h for chaining.
func (h *routeHandler) On(method, path string, handler http.HandlerFunc) *routeHandler {
	h.routes[method+" "+path] = handler
	return h
}

func (h *routeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.requests = append(h.requests, r.Clone(context.Background()))
	handler, ok := h.routes[r.Method+" "+r.URL.Path]
	h.mu.Unlock()

	if !ok {
		jsonResponse(http.StatusNotFound, `{"errors":["Couldn't find that"]}`)(w, r)
		return
	}
	handler(w, r)
}

// Requests returns the requests received so far.
func (h *routeHandler) Requests() []*http.Request {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*http.Request(nil), h.requests...)
}

// lastRequest returns the most recent request for method and path, or nil.
func (h *routeHandler) lastRequest(method, path string) *http.Request {
	reqs := h.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].URL.Path == path {
			return reqs[i]
		}
	}
	return nil
}

// decodeItems parses {"items": [...]} list output.
func decodeItems(t *testing.T, output string) []map[string]any {
	t.Helper()
	var payload struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal([]byte(output), &payload); err != nil {
		t.Fatalf("failed to parse list output: %v\n%s", err, output)
	}
	return payload.Items
}

// decodeObject parses a single JSON object.
func decodeObject(t *testing.T, output string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(output), &payload); err != nil {
		t.Fatalf("failed to parse JSON output: %v\n%s", err, output)
	}
	return payload
}

const testUserJSON = `{"id": "QPxL2MGqfrw", "username": "exampleuser", "name": "Joe Example", "total_photos": 12, "location": "Montreal"}`

func photoJSON(id string) string {
	return `{
		"id": "` + id + `",
		"created_at": "2016-05-03T11:00:28-04:00",
		"width": 5245,
		"height": 3497,
		"color": "#60544D",
		"likes": 12,
		"description": "A man drinking a coffee.",
		"urls": {"raw": "https://images.unsplash.com/raw", "full": "https://images.unsplash.com/full", "regular": "https://images.unsplash.com/` + id + `", "small": "https://images.unsplash.com/small", "thumb": "https://images.unsplash.com/thumb"},
		"links": {"self": "https://api.unsplash.com/photos/` + id + `", "html": "https://unsplash.com/photos/` + id + `", "download": "https://unsplash.com/photos/` + id + `/download", "download_location": "https://api.unsplash.com/photos/` + id + `/download"},
		"user": ` + testUserJSON + `
	}`
}

func collectionJSON(id, title string) string {
	return `{"id": ` + id + `, "title": "` + title + `", "total_photos": 3, "private": false, "user": ` + testUserJSON + `}`
}

func topicJSON(id, slug, title string) string {
	return `{"id": "` + id + `", "slug": "` + slug + `", "title": "` + title + `", "total_photos": 100, "status": "open"}`
}
