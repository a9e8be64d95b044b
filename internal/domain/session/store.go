package session

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrInvalidToken = errors.New("invalid access token")
)

// Store keeps sessions keyed by the hex SHA-256 of the session token.
// Get yields ErrNotFound for unknown and expired keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, userID string, expiresAt time.Time) error
	Clear(ctx context.Context, key string) error
}
