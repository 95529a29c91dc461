package datastoredb

import (
	"cloud.google.com/go/datastore"
	"context"
	"github.com/pkg/errors"
	"github.com/teamaker/teabot/store"
	"google.golang.org/api/option"
	"sync"
)

const testConnectivityKey = "testConnectivity"

// DatastoreDB implements store.StringStorer on the Google Cloud Datastore. The name (usually a plugin name)
// maps to the entity Kind to isolate data between plugins
type DatastoreDB struct {
	mu   sync.RWMutex
	ds   datastorer
	kind string
}

// EntryValue represents an entity value mapped to a datastore key
type EntryValue struct {
	Value string `datastore:",noindex"`
}

// New returns a new DatastoreDB for the given name in the datastore of gcloudProjectID. Client options must
// provide credentials, typically with option.WithCredentialsFile
func New(name string, gcloudProjectID string, gcloudClientOpts ...option.ClientOption) (dsdb *DatastoreDB, err error) {
	return newWithDatastorer(name, &gcdatastore{gcloudProjectID: gcloudProjectID, gcloudClientOpts: gcloudClientOpts})
}

// newWithDatastorer connects the datastorer and validates connectivity and credentials with a lightweight read
func newWithDatastorer(name string, ds datastorer) (dsdb *DatastoreDB, err error) {
	if err = ds.connect(); err != nil {
		return nil, err
	}

	dsdb = &DatastoreDB{ds: ds, kind: name}
	if err = dsdb.testDB(); err != nil {
		ds.Close()
		return nil, err
	}

	return dsdb, nil
}

func (dsdb *DatastoreDB) testDB() (err error) {
	_, err = dsdb.GetString(testConnectivityKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}

	return err
}

// withReconnect runs op and, if it fails for any other reason than a missing entity, reconnects and
// gives op one more try
func (dsdb *DatastoreDB) withReconnect(op func(ds datastorer) error) (err error) {
	dsdb.mu.RLock()
	err = op(dsdb.ds)
	dsdb.mu.RUnlock()

	if err == nil || err == datastore.ErrNoSuchEntity {
		return err
	}

	dsdb.mu.Lock()
	defer dsdb.mu.Unlock()

	if cerr := dsdb.ds.connect(); cerr != nil {
		return err
	}

	return op(dsdb.ds)
}

// GetString returns the value associated to a given key or store.ErrNotFound
func (dsdb *DatastoreDB) GetString(key string) (value string, err error) {
	var e EntryValue
	k := datastore.NameKey(dsdb.kind, key, nil)

	err = dsdb.withReconnect(func(ds datastorer) error {
		return ds.Get(context.Background(), k, &e)
	})
	if err == datastore.ErrNoSuchEntity {
		return "", errors.Wrapf(store.ErrNotFound, "[%s] of kind [%s]", key, dsdb.kind)
	} else if err != nil {
		return "", err
	}

	return e.Value, nil
}

// PutString stores the key/value to the datastore
func (dsdb *DatastoreDB) PutString(key string, value string) (err error) {
	k := datastore.NameKey(dsdb.kind, key, nil)

	return dsdb.withReconnect(func(ds datastorer) error {
		_, err := ds.Put(context.Background(), k, &EntryValue{Value: value})
		return err
	})
}

// DeleteString deletes the entry for the given key
func (dsdb *DatastoreDB) DeleteString(key string) (err error) {
	k := datastore.NameKey(dsdb.kind, key, nil)

	return dsdb.withReconnect(func(ds datastorer) error {
		return ds.Delete(context.Background(), k)
	})
}

// Scan returns all key/values of the kind
func (dsdb *DatastoreDB) Scan() (entries map[string]string, err error) {
	var keys []*datastore.Key
	var vals []*EntryValue

	err = dsdb.withReconnect(func(ds datastorer) (err error) {
		vals = nil
		keys, err = ds.GetAll(context.Background(), datastore.NewQuery(dsdb.kind), &vals)
		return err
	})
	if err != nil {
		return nil, err
	}

	entries = make(map[string]string, len(keys))
	for i, key := range keys {
		entries[key.Name] = vals[i].Value
	}

	return entries, nil
}

// Close closes the underlying datastore client
func (dsdb *DatastoreDB) Close() (err error) {
	dsdb.mu.Lock()
	defer dsdb.mu.Unlock()

	return dsdb.ds.Close()
}
