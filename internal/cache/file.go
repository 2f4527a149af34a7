package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

type fileBackend struct {
	path string
}

// NewStore returns a file-backed Store for the listing named key served
// by baseURL.
func NewStore(dir, key, baseURL string) *Store {
	return NewStoreWithTTL(dir, key, baseURL, DefaultTTL)
}

// NewStoreWithTTL is NewStore with a custom TTL.
func NewStoreWithTTL(dir, key, baseURL string, ttl time.Duration) *Store {
	name := fmt.Sprintf("%s_%s.json", sanitizeKey(key), hostTag(baseURL))
	return &Store{
		backend: &fileBackend{path: filepath.Join(dir, name)},
		baseURL: baseURL,
		ttl:     ttl,
	}
}

// DefaultDir returns the per-user cache directory for the CLI.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "unsplash-cli"), nil
}

func (b *fileBackend) load(context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errMiss
	}
	return data, err
}

func (b *fileBackend) save(_ context.Context, data []byte, _ time.Duration) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return err
	}
	// Write then rename so readers never see a partial file.
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, b.path)
}

func (b *fileBackend) remove(context.Context) error {
	err := os.Remove(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (b *fileBackend) location() string { return b.path }
