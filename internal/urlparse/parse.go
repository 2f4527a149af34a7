// Package urlparse extracts resource references from unsplash.com URLs.
package urlparse

import (
	"fmt"
	"net/url"
	"strings"
)

// Resource types a URL can point at.
const (
	TypePhoto      = "photo"
	TypeCollection = "collection"
	TypeUser       = "user"
	TypeTopic      = "topic"
)

// photoIDLength is the length of current photo ids. Newer photo URLs end
// in "<slug>-<id>".
const photoIDLength = 11

// ParsedURL is a resource reference extracted from a web URL.
type ParsedURL struct {
	ResourceType string
	ID           string // photo id, collection id, username or topic slug
}

// IsURL reports whether s looks like an http(s) URL rather than a bare id.
func IsURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Parse extracts the resource a web URL points at. Accepted shapes:
//
//	https://unsplash.com/photos/<id>
//	https://unsplash.com/photos/<slug>-<id>
//	https://unsplash.com/collections/<id>[/<slug>]
//	https://unsplash.com/@<username>[/likes|/collections]
//	https://unsplash.com/t/<slug>
func Parse(rawURL string) (*ParsedURL, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}

	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" {
		return nil, fmt.Errorf("invalid URL: missing scheme (expected https://...)")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme %q: expected http or https", parsed.Scheme)
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if host != "unsplash.com" {
		return nil, fmt.Errorf("unsupported host %q: expected unsplash.com", parsed.Hostname())
	}

	segments := splitPath(parsed.Path)
	if len(segments) == 0 {
		return nil, fmt.Errorf("URL does not point at a photo, collection, user or topic")
	}

	first := segments[0]
	switch {
	case strings.HasPrefix(first, "@") && len(first) > 1:
		return &ParsedURL{ResourceType: TypeUser, ID: first[1:]}, nil
	case first == "photos" && len(segments) > 1:
		return &ParsedURL{ResourceType: TypePhoto, ID: photoIDFromSlug(segments[1])}, nil
	case first == "collections" && len(segments) > 1:
		return &ParsedURL{ResourceType: TypeCollection, ID: segments[1]}, nil
	case first == "t" && len(segments) > 1:
		return &ParsedURL{ResourceType: TypeTopic, ID: segments[1]}, nil
	}
	return nil, fmt.Errorf("unsupported Unsplash URL path %q: expected /photos, /collections, /@user or /t", parsed.Path)
}

func splitPath(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			if unescaped, err := url.PathUnescape(s); err == nil {
				s = unescaped
			}
			out = append(out, s)
		}
	}
	return out
}

func photoIDFromSlug(segment string) string {
	if len(segment) <= photoIDLength {
		return segment
	}
	cut := len(segment) - photoIDLength
	if segment[cut-1] != '-' {
		return segment
	}
	return segment[cut:]
}

// ResolveID returns arg unchanged unless it is a URL, in which case the URL
// must point at a resource of wantType and its id is returned.
func ResolveID(arg, wantType string) (string, error) {
	arg = strings.TrimSpace(arg)
	if !IsURL(arg) {
		return arg, nil
	}
	parsed, err := Parse(arg)
	if err != nil {
		return "", err
	}
	if parsed.ResourceType != wantType {
		return "", fmt.Errorf("URL points at a %s, expected a %s", parsed.ResourceType, wantType)
	}
	return parsed.ID, nil
}
