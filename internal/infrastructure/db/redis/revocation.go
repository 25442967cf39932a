package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList invalidates outstanding tokens for a username, backed by
// Redis. Entries live for the token TTL: once a revoked user's tokens have
// all expired on their own, the key is no longer needed.
// Key format: revoked:<username>
type RevocationList struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRevocationList creates a RevocationList whose entries expire after ttl.
func NewRevocationList(client *redis.Client, ttl time.Duration) *RevocationList {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RevocationList{client: client, ttl: ttl}
}

// Revoke marks every outstanding token for the username as invalid.
func (l *RevocationList) Revoke(ctx context.Context, username string) error {
	return l.client.Set(ctx, l.key(username), "1", l.ttl).Err()
}

// IsRevoked reports whether the username's tokens have been revoked.
func (l *RevocationList) IsRevoked(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(username)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (l *RevocationList) key(username string) string {
	return "revoked:" + username
}
