// Package kv is local keyed storage records and sessions are persisted in.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when key is absent or expired
var ErrNotFound = errors.New("key not found")

// Store is keyed byte storage. Zero ttl means value never expires.
// Take reads and removes value in one step, only one of concurrent callers gets it.
type Store interface {
	Get(context.Context, string) ([]byte, error)
	Take(context.Context, string) ([]byte, error)
	Set(context.Context, string, []byte, time.Duration) error
	Delete(context.Context, string) error
	Close() error
}
