package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist stores revoked access tokens in Redis until they would have
// expired anyway. A nil *Blacklist (or one built from a nil client) is a
// no-op, so callers can wire it unconditionally.
type Blacklist struct {
	client *redis.Client
}

func NewBlacklist(client *redis.Client) *Blacklist {
	if client == nil {
		return nil
	}
	return &Blacklist{client: client}
}

func (b *Blacklist) key(token string) string {
	return "blacklist:access:" + token
}

// Revoke stores the token with the given TTL. No-op without Redis.
func (b *Blacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if b == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	return b.client.Set(ctx, b.key(token), "1", ttl).Err()
}

// IsRevoked reports whether the token has been revoked. Without Redis every
// token reads as live.
func (b *Blacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	if b == nil {
		return false, nil
	}
	n, err := b.client.Exists(ctx, b.key(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
