// Package session keeps the bearer token and cached user profile between
// API calls. Stores are plain string key/value maps.
package session

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	KeyAuthToken   = "authToken"
	KeyCurrentUser = "currentUser"
)

// Sentinel kinds for session errors.
var (
	ErrNotFound   = errors.New("session key not found")
	ErrInvalidKey = errors.New("session key must not be empty")
	ErrStore      = errors.New("session store failed")
)

// Store is a process-wide key/value store.
type Store interface {
	// Get returns ErrNotFound when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove is a no-op for absent keys.
	Remove(ctx context.Context, key string) error
}
