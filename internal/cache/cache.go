package cache

import (
	"context"
	"time"
)

// Cache is the key/value contract the render pipeline needs: get, set with a
// TTL, and unconditional delete. The production implementation is Redis.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
