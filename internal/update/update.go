// Package update checks GitHub for a newer release of the CLI.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	// DefaultReleasesURL is the latest-release endpoint of the CLI repository.
	DefaultReleasesURL = "https://api.github.com/repos/splashkit/unsplash-cli/releases/latest"
	CheckTimeout       = 5 * time.Second
)

// Release is the subset of the GitHub release payload the check reads.
type Release struct {
	TagName    string `json:"tag_name"`
	HTMLURL    string `json:"html_url"`
	Prerelease bool   `json:"prerelease"`
	Draft      bool   `json:"draft"`
}

// CheckResult describes how the running version relates to the latest
// release.
type CheckResult struct {
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
	UpdateURL       string `json:"update_url,omitempty"`
	UpdateAvailable bool   `json:"update_available"`
}

// Message returns a one-line notice, or "" when no update is available.
func (r *CheckResult) Message() string {
	if r == nil || !r.UpdateAvailable {
		return ""
	}
	return fmt.Sprintf("A new version of unsplash is available: %s -> %s (%s)", r.CurrentVersion, r.LatestVersion, r.UpdateURL)
}

// Checker queries a releases endpoint.
type Checker struct {
	ReleasesURL string
	HTTP        *http.Client
}

// NewChecker returns a Checker for the CLI repository.
func NewChecker() *Checker {
	return &Checker{ReleasesURL: DefaultReleasesURL, HTTP: http.DefaultClient}
}

// CheckForUpdate checks if a newer version is available using the default
// checker.
func CheckForUpdate(ctx context.Context, currentVersion string) *CheckResult {
	return NewChecker().Check(ctx, currentVersion)
}

// Check returns nil whenever the answer cannot be determined: development
// builds, network failures, unexpected payloads, drafts and pre-releases.
// It never blocks the CLI for longer than CheckTimeout.
func (c *Checker) Check(ctx context.Context, currentVersion string) *CheckResult {
	if currentVersion == "dev" || currentVersion == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, CheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ReleasesURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil
	}
	if release.TagName == "" || release.Draft || release.Prerelease {
		return nil
	}

	current := normalizeVersion(currentVersion)
	latest := normalizeVersion(release.TagName)

	result := &CheckResult{
		CurrentVersion: strings.TrimPrefix(currentVersion, "v"),
		LatestVersion:  strings.TrimPrefix(release.TagName, "v"),
		UpdateURL:      release.HTMLURL,
	}
	if semver.IsValid(current) && semver.IsValid(latest) {
		result.UpdateAvailable = semver.Compare(latest, current) > 0
	}
	return result
}

func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}
