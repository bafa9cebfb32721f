package ports

// Package ports defines interfaces (hexagonal ports) for the client's
// environment-dependent capabilities: durable token storage and navigation.
// Implementations live in internal/adapters; no-op implementations below
// cover the non-interactive (server rendering, scripted) execution context.

import (
	"context"
	"errors"
)

// ErrNoToken is returned by TokenStore.Load when no token is persisted.
var ErrNoToken = errors.New("no token stored")

// TokenStore persists the single bearer token across process restarts.
// Exactly one token is held at a time; Save replaces any previous value.
type TokenStore interface {
	// Load returns the persisted token, or ErrNoToken when absent.
	Load(ctx context.Context) (string, error)
	// Save persists token, replacing any previous one.
	Save(ctx context.Context, token string) error
	// Delete removes the persisted token. Deleting an absent token is not an error.
	Delete(ctx context.Context) error
}

// Navigator redirects the interactive client to the login screen after the
// session could not be recovered.
type Navigator interface {
	ToLogin(ctx context.Context) error
}

// Ensure compile-time conformance of the no-op implementations.
var (
	_ TokenStore = NoopTokenStore{}
	_ Navigator  = NoopNavigator{}
)

// NoopTokenStore is the TokenStore for non-interactive contexts: nothing is
// ever persisted and loads always report an absent token.
type NoopTokenStore struct{}

func (NoopTokenStore) Load(context.Context) (string, error) { return "", ErrNoToken }

func (NoopTokenStore) Save(context.Context, string) error { return nil }

func (NoopTokenStore) Delete(context.Context) error { return nil }

// NoopNavigator is the Navigator for contexts with nowhere to navigate to.
type NoopNavigator struct{}

func (NoopNavigator) ToLogin(context.Context) error { return nil }
