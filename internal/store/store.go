package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/taskflow/internal/model"
)

// ErrNotFound is returned by KV.Get when no value is stored under a key.
var ErrNotFound = errors.New("key not found")

// KV is the durable key-value substrate. Values are opaque bytes; the
// persistence adapter stores JSON documents in them. Each Set replaces the
// whole value under the key.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Open creates the backend selected by cfg.
func Open(cfg model.StorageConfig) (KV, error) {
	switch cfg.Backend {
	case model.BackendSQLite, "":
		return NewSQLiteStore(cfg.Path)
	case model.BackendKeyring:
		return OpenKeyringStore(cfg.KeyringDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
