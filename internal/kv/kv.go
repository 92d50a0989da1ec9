// Package kv defines the string-keyed persistent store the favorites and
// theme stores are written against, plus the in-memory and Redis backends.
// The SQLite backend lives in internal/db.
package kv

import "context"

// Store is a persistent, string-keyed key/value store.
type Store interface {
	// Get returns the value under key. found is false when the key has
	// never been written; that is not an error.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set overwrites the value under key.
	Set(ctx context.Context, key, value string) error
}
