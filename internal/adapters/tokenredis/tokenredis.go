package tokenredis

// Package tokenredis stores the bearer token under a single fixed Redis key.
// This backs shared deployments (e.g. a server-side rendering fleet) where the
// session must be visible to more than one process.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/TheManchineel/ludika-go/internal/ports"
)

// Ensure compile-time conformance.
var _ ports.TokenStore = (*Store)(nil)

// Options groups dependencies for the Redis token store.
type Options struct {
	Client redis.UniversalClient
	// Key is the Redis key holding the token.
	Key string
}

// Store is a Redis-backed token store.
type Store struct {
	client redis.UniversalClient
	key    string
}

// New builds a Store. Client and Key are required.
func New(opts Options) (*Store, error) {
	if opts.Client == nil {
		return nil, errors.New("redis client is required")
	}
	key := strings.TrimSpace(opts.Key)
	if key == "" {
		return nil, errors.New("redis token key is required")
	}
	return &Store{client: opts.Client, key: key}, nil
}

// Load reads the persisted token, reporting ports.ErrNoToken when the key is absent.
func (s *Store) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read token key: %w", err)
	}
	if token == "" {
		return "", ports.ErrNoToken
	}
	return token, nil
}

// Save persists token without expiry; the token lives until logout or rejection.
func (s *Store) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("write token key: %w", err)
	}
	return nil
}

// Delete removes the token key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("delete token key: %w", err)
	}
	return nil
}
