// Package storage provides the key-value slot backends the card database lives in.
package storage

import "errors"

// ErrNotInitialized is returned by Load when the backend has never been set up.
var ErrNotInitialized = errors.New("storage not initialized, run 'daycards init' first")

// ErrNotLoaded is returned by slot operations on a provider that was not opened.
var ErrNotLoaded = errors.New("storage not loaded")

// Provider is a persistent string-to-string slot store. Values are opaque;
// higher layers decide what they mean.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Slots
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
