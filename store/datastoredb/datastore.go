package datastoredb

import (
	"cloud.google.com/go/datastore"
	"context"
	"google.golang.org/api/option"
	"io"
)

// gcdatastore wraps a google cloud datastore Client created (and recreated) from a project id and client options
type gcdatastore struct {
	*datastore.Client
	gcloudProjectID  string
	gcloudClientOpts []option.ClientOption
}

// connecter is implemented by any value that can (re)connect
type connecter interface {
	connect() (err error)
}

// datastorer is the subset of datastore.Client used by DatastoreDB along with connecting. It lets tests
// run without an actual datastore
type datastorer interface {
	connecter
	io.Closer
	Delete(c context.Context, k *datastore.Key) (err error)
	Get(c context.Context, k *datastore.Key, dest interface{}) (err error)
	GetAll(c context.Context, query *datastore.Query, dest interface{}) (keys []*datastore.Key, err error)
	Put(c context.Context, k *datastore.Key, v interface{}) (key *datastore.Key, err error)
}

// connect creates a new client from the project id and client options. Options like option.WithCredentialsFile
// are re-read so a reconnection picks up rotated credentials
func (ds *gcdatastore) connect() (err error) {
	client, err := datastore.NewClient(context.Background(), ds.gcloudProjectID, ds.gcloudClientOpts...)
	if err != nil {
		return err
	}

	if ds.Client != nil {
		ds.Client.Close()
	}
	ds.Client = client

	return nil
}

// Close closes the client, if connected
func (ds *gcdatastore) Close() (err error) {
	if ds.Client == nil {
		return nil
	}

	return ds.Client.Close()
}
