// Package cache keeps small API listings between invocations, either in a
// per-user directory or in a shared Redis.
//
// Each Store holds one listing for one API host. Entries older than the TTL
// are ignored. Setting UNSPLASH_NO_CACHE to any value disables reads and
// writes.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"
)

// DefaultTTL bounds how stale a cached listing may be.
const DefaultTTL = 10 * time.Minute

// EnvNoCache disables the cache when set.
const EnvNoCache = "UNSPLASH_NO_CACHE"

// errMiss is returned by a backend when the key holds nothing.
var errMiss = errors.New("cache miss")

type backend interface {
	load(ctx context.Context) ([]byte, error)
	save(ctx context.Context, data []byte, ttl time.Duration) error
	remove(ctx context.Context) error
	location() string
}

type entry struct {
	StoredAt time.Time       `json:"stored_at"`
	BaseURL  string          `json:"base_url"`
	Items    json.RawMessage `json:"items"`
}

// Store reads and writes one cached listing.
type Store struct {
	backend backend
	baseURL string
	ttl     time.Duration
}

// Path returns where the listing lives: a file path or a Redis key.
func (s *Store) Path() string { return s.backend.location() }

// Get decodes the cached listing into dst. It reports false on a miss,
// an expired entry, a host mismatch or when the cache is disabled.
func (s *Store) Get(ctx context.Context, dst any) bool {
	if Disabled() {
		return false
	}
	data, err := s.backend.load(ctx)
	if err != nil {
		if !errors.Is(err, errMiss) {
			slog.Debug("cache read failed", "location", s.Path(), "error", err)
		}
		return false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		slog.Debug("ignoring unreadable cache entry", "location", s.Path(), "error", err)
		return false
	}
	if e.BaseURL != s.baseURL || time.Since(e.StoredAt) > s.ttl {
		return false
	}
	return json.Unmarshal(e.Items, dst) == nil
}

// Put stores items. Failures are logged at debug level and otherwise
// ignored; the cache is an optimisation only.
func (s *Store) Put(ctx context.Context, items any) {
	if Disabled() {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		slog.Debug("cache encode failed", "location", s.Path(), "error", err)
		return
	}
	data, err := json.Marshal(entry{StoredAt: time.Now().UTC(), BaseURL: s.baseURL, Items: raw})
	if err != nil {
		return
	}
	if err := s.backend.save(ctx, data, s.ttl); err != nil {
		slog.Debug("cache write failed", "location", s.Path(), "error", err)
	}
}

// Clear removes the cached listing.
func (s *Store) Clear(ctx context.Context) {
	if err := s.backend.remove(ctx); err != nil {
		slog.Debug("cache clear failed", "location", s.Path(), "error", err)
	}
}

// Disabled reports whether caching is switched off through the environment.
func Disabled() bool {
	return os.Getenv(EnvNoCache) != ""
}

// hostTag is a short stable digest of the API host, so listings from a
// staging host never answer for production.
func hostTag(baseURL string) string {
	sum := sha256.Sum256([]byte(baseURL))
	return hex.EncodeToString(sum[:6])
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "listing"
	}
	return strings.NewReplacer("/", "-", "\\", "-", "_", "-", ":", "-").Replace(key)
}
