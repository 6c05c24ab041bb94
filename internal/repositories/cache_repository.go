package repositories

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// CacheRepositoryInterface stores opaque blobs with an expiry.
type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	// Get returns ErrCacheMiss when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, keys ...string) error
}
