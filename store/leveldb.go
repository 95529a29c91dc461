package store

import (
	"fmt"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"path/filepath"
)

// LevelDB holds a store name and its leveldb instance
type LevelDB struct {
	Name     string
	database *leveldb.DB
}

// NewLevelDB opens the leveldb database named name under storagePath, creating it if it doesn't exist.
// A leading "~" in storagePath is expanded to the home directory
func NewLevelDB(name string, storagePath string) (ldb *LevelDB, err error) {
	path, err := homedir.Expand(storagePath)
	if err != nil {
		return nil, err
	}

	fullPath := filepath.Join(path, name)
	db, err := leveldb.OpenFile(fullPath, nil)

	if _, ok := err.(*leveldberrors.ErrCorrupted); ok {
		return nil, errors.Wrap(err, fmt.Sprintf("leveldb corrupted. Consider deleting [%s] and restarting if you don't mind losing data", fullPath))
	} else if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to open file with path [%s]", fullPath))
	}

	return &LevelDB{Name: name, database: db}, nil
}

// Close closes the LevelDB
func (ldb *LevelDB) Close() (err error) {
	return ldb.database.Close()
}

// GetString retrieves the value associated to the key
func (ldb *LevelDB) GetString(key string) (value string, err error) {
	data, err := ldb.database.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return "", errors.Wrapf(ErrNotFound, "[%s] in [%s]", key, ldb.Name)
	} else if err != nil {
		return "", errors.Wrapf(err, "failed to get [%s] from [%s]", key, ldb.Name)
	}

	return string(data), nil
}

// PutString adds or updates the value associated to the key
func (ldb *LevelDB) PutString(key string, value string) (err error) {
	return errors.Wrapf(ldb.database.Put([]byte(key), []byte(value), nil), "failed to put [%s] in [%s]", key, ldb.Name)
}

// DeleteString deletes the entry for the key. Deleting a missing key isn't an error
func (ldb *LevelDB) DeleteString(key string) (err error) {
	return errors.Wrapf(ldb.database.Delete([]byte(key), nil), "failed to delete [%s] from [%s]", key, ldb.Name)
}

// Scan returns the complete set of key/values from the database
func (ldb *LevelDB) Scan() (entries map[string]string, err error) {
	entries = map[string]string{}
	iter := ldb.database.NewIterator(nil, nil)
	for iter.Next() {
		entries[string(iter.Key())] = string(iter.Value())
	}

	iter.Release()

	return entries, errors.Wrapf(iter.Error(), "failed to scan [%s]", ldb.Name)
}
