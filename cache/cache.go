// Package cache holds the response cache and counter backends.
package cache

import (
	"context"
	"time"
)

// Backend stores opaque values with expiry. Both Memory and Redis implement it.
type Backend interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Name() string
}

var (
	_ Backend = (*Memory)(nil)
	_ Backend = (*Redis)(nil)
)
