package dryrun

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/splashkit/unsplash-cli/internal/api"
)

func TestWithDryRun(t *testing.T) {
	ctx := WithDryRun(context.Background(), true)
	if !IsEnabled(ctx) {
		t.Error("IsEnabled should return true when dry-run is enabled")
	}
}

func TestIsEnabled_DefaultFalse(t *testing.T) {
	if IsEnabled(context.Background()) {
		t.Error("IsEnabled should return false by default")
	}
}

func TestWithDryRun_Disabled(t *testing.T) {
	ctx := WithDryRun(context.Background(), false)
	if IsEnabled(ctx) {
		t.Error("IsEnabled should return false when dry-run is explicitly disabled")
	}
}

func TestFromRequest(t *testing.T) {
	client := api.New(api.Credentials{AccessKey: "key"})
	req := client.PreviewRequest(
		api.NewEndpoint(api.EndpointCreateCollection, ""),
		api.CollectionParameters{Title: api.String("Trips"), Private: api.Bool(true)},
	)

	p := FromRequest("create", "collection", req)
	if p.Method != "POST" || !strings.HasPrefix(p.URL, "https://api.unsplash.com/collections?") {
		t.Errorf("unexpected request line %s %s", p.Method, p.URL)
	}
	if p.Details["title"] != "Trips" || p.Details["private"] != "true" {
		t.Errorf("Details = %v", p.Details)
	}
}

func TestFromRequest_MasksSecrets(t *testing.T) {
	client := api.New(api.Credentials{AccessKey: "key", SecretKey: "very-secret"})
	req := client.PreviewRequest(
		api.NewEndpoint(api.EndpointOAuthToken, ""),
		api.TokenParameters{ClientID: "key", ClientSecret: "very-secret", RedirectURI: "urn:ietf:wg:oauth:2.0:oob", Code: "abc"},
	)

	p := FromRequest("exchange", "authorization code", req)
	if strings.Contains(p.URL, "very-secret") || strings.Contains(p.URL, "code=abc") {
		t.Errorf("secret leaked into URL %s", p.URL)
	}
	if p.Details["client_secret"] != "********" {
		t.Errorf("client_secret = %v", p.Details["client_secret"])
	}
}

func TestPreview_Write(t *testing.T) {
	p := &Preview{
		Operation:   "update",
		Resource:    "photo Dwu85P9SOIk",
		Description: "Would change the description",
		Method:      "PUT",
		URL:         "https://api.unsplash.com/photos/Dwu85P9SOIk?description=Sunrise",
		Details: map[string]any{
			"description": "Sunrise",
			"tags":        "sun,sea",
		},
	}

	var buf bytes.Buffer
	p.Write(&buf)

	output := buf.String()
	if !strings.Contains(output, "[DRY-RUN]") {
		t.Error("Preview output should contain [DRY-RUN] header")
	}
	if !strings.Contains(output, "PUT https://api.unsplash.com/photos/Dwu85P9SOIk") {
		t.Error("Preview output should contain the request line")
	}
	if strings.Index(output, "description: Sunrise") > strings.Index(output, "tags: sun,sea") {
		t.Error("details should be sorted by key")
	}
}

func TestPreview_WriteWithWarnings(t *testing.T) {
	p := &Preview{
		Operation: "delete",
		Resource:  "collection 206",
		Warnings:  []string{"This action is irreversible"},
	}

	var buf bytes.Buffer
	p.Write(&buf)

	output := buf.String()
	if !strings.Contains(output, "Warnings:") {
		t.Error("Preview output should contain Warnings section")
	}
	if !strings.Contains(output, "This action is irreversible") {
		t.Error("Preview output should contain the warning message")
	}
	if !strings.Contains(output, "No changes made") {
		t.Error("Preview output should contain 'No changes made' footer")
	}
}

func TestPreview_Map(t *testing.T) {
	p := &Preview{Operation: "like", Resource: "photo", Method: "POST", URL: "u"}
	m := p.Map()
	if m["dry_run"] != true || m["method"] != "POST" {
		t.Errorf("Map() = %v", m)
	}
	if _, ok := m["params"]; ok {
		t.Error("params should be omitted when empty")
	}
}
