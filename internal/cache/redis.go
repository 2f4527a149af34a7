package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces every key the CLI writes.
const redisKeyPrefix = "unsplash-cli"

type redisBackend struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore returns a Store kept in Redis under a key derived from key
// and baseURL. Redis expires the entry after the TTL as well.
func NewRedisStore(client redis.UniversalClient, key, baseURL string) *Store {
	return NewRedisStoreWithTTL(client, key, baseURL, DefaultTTL)
}

// NewRedisStoreWithTTL is NewRedisStore with a custom TTL.
func NewRedisStoreWithTTL(client redis.UniversalClient, key, baseURL string, ttl time.Duration) *Store {
	return &Store{
		backend: &redisBackend{
			client: client,
			key:    fmt.Sprintf("%s:%s:%s", redisKeyPrefix, sanitizeKey(key), hostTag(baseURL)),
		},
		baseURL: baseURL,
		ttl:     ttl,
	}
}

// OpenRedis connects to the server named by a redis:// or rediss:// URL.
func OpenRedis(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (b *redisBackend) load(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errMiss
	}
	return data, err
}

func (b *redisBackend) save(ctx context.Context, data []byte, ttl time.Duration) error {
	return b.client.Set(ctx, b.key, data, ttl).Err()
}

func (b *redisBackend) remove(ctx context.Context) error {
	return b.client.Del(ctx, b.key).Err()
}

func (b *redisBackend) location() string { return b.key }
