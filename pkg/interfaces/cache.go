package interfaces

import (
	"context"
	"time"
)

// CacheProvider is the minimal cache contract used across sitekit.
type CacheProvider interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// TagStore extends CacheProvider with tag-partitioned invalidation. Every
// key may belong to any number of tags; invalidating a tag drops all keys
// that carry it. The revalidation endpoint drives invalidation exclusively
// through tags.
type TagStore interface {
	CacheProvider
	SetWithTags(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) error
	InvalidateTags(ctx context.Context, tags ...string) error
}
