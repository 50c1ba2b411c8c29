// Package storage persists JSON-encoded records under string keys. Each
// backend implements Provider; Repository layers typed access on top.
package storage

import "errors"

var (
	ErrNotFound       = errors.New("key not found")
	ErrNotLoaded      = errors.New("storage not loaded")
	ErrNotInitialized = errors.New("storage not initialized, run 'habitual init' first")
)

// Provider is a key/value store of JSON documents. Writes to one key replace
// the previous value; concurrent writers race with last write winning.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
