// Package storage is the small persisted key-value slot used to hand the
// selected car from the showroom to the podium.
package storage

import (
	"errors"
	"fmt"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("storage: unknown backend")

// Store is a string key-value store. Get reports ok=false for missing keys.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(keys ...string) error
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Backend string // "file", "sqlite" or "memory"
	Path    string
}

// Open returns the configured backend.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return OpenFile(cfg.Path)
	case "sqlite":
		return OpenSQLite(cfg.Path)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
