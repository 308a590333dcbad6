// Package revocation keeps a denylist of logged-out tokens in Redis.
package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "revoked:token:"

// Store records revoked tokens until their natural expiry.
// A Store with a nil client is disabled: Revoke is a no-op and nothing is revoked.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Enabled() bool { return s != nil && s.client != nil }

// tokens are hashed so raw credentials never land in Redis
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Revoke denylists token until the given time. Tokens already past until are ignored.
func (s *Store) Revoke(ctx context.Context, token string, until time.Time) error {
	if !s.Enabled() {
		return nil
	}
	ttl := time.Until(until)
	if until.IsZero() {
		ttl = time.Hour
	}
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, key(token), "1", ttl).Err()
}

// IsRevoked reports whether token was revoked.
func (s *Store) IsRevoked(ctx context.Context, token string) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	n, err := s.client.Exists(ctx, key(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Ping checks the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Ping(ctx).Err()
}
