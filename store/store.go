// Package store provides the persistence of teabot plugins: a leveldb backed StringStorer here, a Google Cloud
// Datastore one in datastoredb and a write-through in-memory cache for either in inmemorydb
package store

import (
	"github.com/pkg/errors"
	"io"
)

// ErrNotFound is returned by every StringStorer when getting a key without value
var ErrNotFound = errors.New("not found")

// StringStorer is implemented by any value that can get, put, delete and scan string key/values.
// Implementations must be safe for concurrent use
type StringStorer interface {
	io.Closer

	// GetString returns the value of key or ErrNotFound when there is none
	GetString(key string) (value string, err error)

	// PutString adds or updates the value of key
	PutString(key string, value string) (err error)

	// DeleteString deletes the entry of key
	DeleteString(key string) (err error)

	// Scan returns all key/values
	Scan() (entries map[string]string, err error)
}
