// Package storage defines the key-value substrate all plantkeeper state is
// persisted to, plus the in-memory and SQLite implementations.
//
// Every value is serialized JSON text addressed by a string key. The
// substrate knows nothing about collections or schedules; those semantics
// live in the store and reminder packages.
package storage

import "context"

// KV is the storage substrate contract.
//
// Get reports absence via the boolean instead of an error, so callers can
// distinguish "no value yet" from "storage unavailable".
type KV interface {
	// Get returns the raw serialized value for key, or ok=false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the value under key. Removing an absent key is not an
	// error.
	Remove(ctx context.Context, key string) error

	// RemoveMany deletes all given keys. Implementations should apply the
	// batch as a unit where the backend allows it.
	RemoveMany(ctx context.Context, keys []string) error

	// ListKeys returns every stored key.
	ListKeys(ctx context.Context) ([]string, error)
}
