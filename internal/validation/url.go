// Package validation checks user input before it reaches the API.
//
// Enum and bounds checks return *api.StructuredError values with the allowed
// values attached so scripted callers can correct themselves. URL checks
// guard the API host overrides and the OAuth redirect URI.
package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// OutOfBandRedirectURI asks the OAuth server to display the code instead of
// redirecting.
const OutOfBandRedirectURI = "urn:ietf:wg:oauth:2.0:oob"

// ValidateBaseURL validates an API or OAuth host override. Remote hosts
// must use https; plain http is accepted only for loopback hosts so tests
// and local mocks can be targeted.
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL cannot be empty")
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: only http and https are allowed, got %q", parsedURL.Scheme)
	}
	hostname := parsedURL.Hostname()
	if hostname == "" {
		return fmt.Errorf("URL must contain a hostname")
	}
	if parsedURL.User != nil {
		return fmt.Errorf("URL must not contain credentials")
	}
	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return fmt.Errorf("URL must not contain a query or fragment")
	}
	if parsedURL.Scheme == "http" && !IsLoopback(hostname) {
		return fmt.Errorf("http is only allowed for localhost; use https for %s", hostname)
	}
	return nil
}

// ValidateRedirectURI validates the redirect URI registered for the
// application. The out-of-band URN is accepted as is.
func ValidateRedirectURI(rawURI string) error {
	if rawURI == OutOfBandRedirectURI {
		return nil
	}
	parsed, err := url.Parse(rawURI)
	if err != nil {
		return fmt.Errorf("invalid redirect URI: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid redirect URI %q: expected %s or an http(s) URL", rawURI, OutOfBandRedirectURI)
	}
	if parsed.Hostname() == "" {
		return fmt.Errorf("invalid redirect URI %q: missing host", rawURI)
	}
	return nil
}

// IsLoopback reports whether hostname names the local machine.
func IsLoopback(hostname string) bool {
	h := strings.ToLower(strings.Trim(hostname, "[]"))
	if h == "localhost" || strings.HasSuffix(h, ".localhost") {
		return true
	}
	ip := net.ParseIP(h)
	return ip != nil && ip.IsLoopback()
}
