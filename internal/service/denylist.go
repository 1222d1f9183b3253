package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "softdesk:revoked:"

// TokenStore is the subset of the redis client the denylist needs. Tests
// swap in an in-memory fake.
type TokenStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// TokenDenylist stores revoked bearer tokens until they expire on their own.
// A nil store makes every operation a no-op so the server can run without
// Redis.
type TokenDenylist struct {
	store TokenStore
}

func NewTokenDenylist(store TokenStore) *TokenDenylist {
	return &TokenDenylist{store: store}
}

func (d *TokenDenylist) Revoke(ctx context.Context, token string, until time.Time) error {
	if d == nil || d.store == nil {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return d.store.Set(ctx, denylistPrefix+token, "1", ttl).Err()
}

func (d *TokenDenylist) Revoked(ctx context.Context, token string) (bool, error) {
	if d == nil || d.store == nil {
		return false, nil
	}
	n, err := d.store.Exists(ctx, denylistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
