// Package dryrun provides dry-run mode functionality for previewing mutations.
package dryrun

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/splashkit/unsplash-cli/internal/api"
)

type contextKey string

const dryRunKey contextKey = "dry_run_enabled"

// WithDryRun returns a context with dry-run mode enabled/disabled.
func WithDryRun(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, dryRunKey, enabled)
}

// IsEnabled returns true if dry-run mode is enabled.
func IsEnabled(ctx context.Context) bool {
	if v, ok := ctx.Value(dryRunKey).(bool); ok {
		return v
	}
	return false
}

// Preview describes a call that was not sent.
type Preview struct {
	Operation   string
	Resource    string
	Description string
	Method      string
	URL         string
	Details     map[string]any
	Warnings    []string
}

// secretParams never appear in previews.
var secretParams = map[string]bool{
	"client_secret": true,
	"code":          true,
}

// FromRequest fills a preview from the request a mutation would send.
// Query parameters become details and secrets are masked.
func FromRequest(operation, resource string, req *api.Request) *Preview {
	p := &Preview{Operation: operation, Resource: resource, Method: req.Method, URL: req.URL}
	u, err := url.Parse(req.URL)
	if err != nil {
		return p
	}
	q := u.Query()
	if len(q) == 0 {
		return p
	}
	p.Details = make(map[string]any, len(q))
	for key, values := range q {
		value := strings.Join(values, ",")
		if secretParams[key] {
			value = "********"
			q.Set(key, value)
		}
		p.Details[key] = value
	}
	u.RawQuery = q.Encode()
	p.URL = u.String()
	return p
}

// Write outputs the preview to the writer
func (p *Preview) Write(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\n[DRY-RUN] Would %s %s\n", p.Operation, p.Resource)
	_, _ = fmt.Fprintf(w, "───────────────────────────────────────\n")

	if p.Description != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", p.Description)
	}
	if p.Method != "" {
		_, _ = fmt.Fprintf(w, "  %s %s\n\n", p.Method, p.URL)
	}

	if len(p.Details) > 0 {
		keys := make([]string, 0, len(p.Details))
		for k := range p.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(w, "  %s: %v\n", k, p.Details[k])
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(p.Warnings) > 0 {
		_, _ = fmt.Fprintln(w, "Warnings:")
		for _, warning := range p.Warnings {
			_, _ = fmt.Fprintf(w, "  ! %s\n", warning)
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintf(w, "───────────────────────────────────────\n")
	_, _ = fmt.Fprintln(w, "No changes made (dry-run mode)")
}

// Map returns the preview as a JSON-ready map.
func (p *Preview) Map() map[string]any {
	m := map[string]any{
		"dry_run":   true,
		"operation": p.Operation,
		"resource":  p.Resource,
	}
	if p.Method != "" {
		m["method"] = p.Method
		m["url"] = p.URL
	}
	if len(p.Details) > 0 {
		m["params"] = p.Details
	}
	if len(p.Warnings) > 0 {
		m["warnings"] = p.Warnings
	}
	return m
}
