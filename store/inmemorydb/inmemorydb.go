package inmemorydb

import (
	"github.com/pkg/errors"
	"github.com/teamaker/teabot/store"
	"sync"
)

// InMemoryDB implements store.StringStorer keeping a copy of everything in memory while writing
// puts and deletes through to the wrapped (persistent) StringStorer
type InMemoryDB struct {
	persistentStorer store.StringStorer

	mu   sync.RWMutex
	data map[string]string
}

// New returns a new InMemoryDB wrapping the persistent StringStorer. Its content is loaded in memory
// with an initial scan
func New(storer store.StringStorer) (imdb *InMemoryDB, err error) {
	imdb = new(InMemoryDB)
	imdb.persistentStorer = storer

	imdb.data, err = storer.Scan()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load persistent content")
	}

	if imdb.data == nil {
		imdb.data = make(map[string]string)
	}

	return imdb, nil
}

// GetString returns the value associated to a given key from memory or store.ErrNotFound
func (imdb *InMemoryDB) GetString(key string) (value string, err error) {
	imdb.mu.RLock()
	defer imdb.mu.RUnlock()

	v, ok := imdb.data[key]
	if !ok {
		return "", errors.Wrapf(store.ErrNotFound, "[%s]", key)
	}

	return v, nil
}

// PutString stores the key/value to the persistent storer first and then in memory
func (imdb *InMemoryDB) PutString(key string, value string) (err error) {
	imdb.mu.Lock()
	defer imdb.mu.Unlock()

	if err = imdb.persistentStorer.PutString(key, value); err != nil {
		return err
	}

	imdb.data[key] = value

	return nil
}

// DeleteString deletes the entry from the persistent storer first and then from memory
func (imdb *InMemoryDB) DeleteString(key string) (err error) {
	imdb.mu.Lock()
	defer imdb.mu.Unlock()

	if err = imdb.persistentStorer.DeleteString(key); err != nil {
		return err
	}

	delete(imdb.data, key)

	return nil
}

// Scan returns a copy of all key/values in memory without querying the persistent storer
func (imdb *InMemoryDB) Scan() (entries map[string]string, err error) {
	imdb.mu.RLock()
	defer imdb.mu.RUnlock()

	entries = make(map[string]string, len(imdb.data))
	for k, v := range imdb.data {
		entries[k] = v
	}

	return entries, nil
}

// Close closes the persistent storer
func (imdb *InMemoryDB) Close() (err error) {
	return imdb.persistentStorer.Close()
}
