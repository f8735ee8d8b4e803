// Package otp stores the short-lived codes used to reset passwords.
//
// A code is written under the account's email with a TTL and deleted on the
// first successful match, so every code works at most once.
package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "password_reset:"

// RedisStore holds password reset codes in Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates an OTP store on top of an existing Redis client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Set records a reset code for the email, replacing any earlier one
func (s *RedisStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+email, code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	return nil
}

// Consume reports whether code matches the stored one for the email and
// deletes it on a match. A missing or expired code is a mismatch, not an
// error.
func (s *RedisStore) Consume(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, keyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read reset code: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	if err := s.client.Del(ctx, keyPrefix+email).Err(); err != nil {
		return false, fmt.Errorf("failed to consume reset code: %w", err)
	}

	return true, nil
}
