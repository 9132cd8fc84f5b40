package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("session value not found")

// SessionRepository persists small per-session values, such as the backend
// token, under fixed key names. Delete of a missing value is not an error.
type SessionRepository interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error
}
