// Package revocation implements the token revocation set.
//
// Bearer tokens are stateless, so logout cannot destroy them; instead the
// token's jti is recorded in Redis with a TTL equal to the token's remaining
// lifetime. A token is valid only while its signature checks out, it has not
// expired and its jti is not in the set.
package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "revoked:"

// RedisStore is a Redis-backed revocation set
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a revocation store on top of an existing Redis client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Revoke marks a token ID as revoked until the token would have expired
// anyway. A non-positive TTL means the token is already expired and there is
// nothing to record.
func (s *RedisStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, keyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsRevoked reports whether a token ID is in the revocation set
func (s *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return n > 0, nil
}
