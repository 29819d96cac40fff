// Package token issues and validates opaque bearer tokens. The Redis TTL
// on each token key is the single source of truth for session lifetime;
// clients may cache a token for the same period but the server decides
// when it stops working.
package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a token is unknown, expired, or revoked.
var ErrNotFound = errors.New("token not found")

const (
	keyPrefix      = "token:v1:"
	tokenByteCount = 32
)

// Token is an issued bearer credential.
type Token struct {
	Value    string
	OwnerID  string
	IssuedAt time.Time
}

// Store manages the lifecycle of opaque session tokens. A user may hold
// any number of concurrently valid tokens.
type Store interface {
	// Issue mints a new token bound to the given user.
	Issue(ctx context.Context, userID string) (Token, error)
	// Resolve returns the owning user id for a valid token value.
	Resolve(ctx context.Context, value string) (string, error)
	// Revoke invalidates a token. Revoking an unknown token is not an error.
	Revoke(ctx context.Context, value string) error
}

// RedisStore keeps one Redis key per issued token, expiring with the
// configured TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed token store. ttl must be positive.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Issue generates an opaque random value and stores ownership under it.
func (s *RedisStore) Issue(ctx context.Context, userID string) (Token, error) {
	if userID == "" {
		return Token{}, errors.New("user id is required")
	}

	buf := make([]byte, tokenByteCount)
	if _, err := rand.Read(buf); err != nil {
		return Token{}, fmt.Errorf("generate token: %w", err)
	}
	value := base64.RawURLEncoding.EncodeToString(buf)

	if err := s.client.Set(ctx, keyPrefix+value, userID, s.ttl).Err(); err != nil {
		return Token{}, fmt.Errorf("store token: %w", err)
	}

	return Token{Value: value, OwnerID: userID, IssuedAt: time.Now().UTC()}, nil
}

// Resolve looks up the owner of a token value.
func (s *RedisStore) Resolve(ctx context.Context, value string) (string, error) {
	if value == "" {
		return "", ErrNotFound
	}
	userID, err := s.client.Get(ctx, keyPrefix+value).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("resolve token: %w", err)
	}
	return userID, nil
}

// Revoke deletes the token key. Idempotent: a missing key is a no-op.
func (s *RedisStore) Revoke(ctx context.Context, value string) error {
	if value == "" {
		return nil
	}
	if err := s.client.Del(ctx, keyPrefix+value).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
