package engine

import (
	"context"
	"time"

	"go.etcd.io/bbolt"

	kvserrors "github.com/ignitekv/kvs/pkg/errors"
)

var bucketName = []byte("kvs")

// BoltEngine is the non-core alternate Engine implementation: a single
// go.etcd.io/bbolt database and bucket standing in for the Rust project's
// sled-backed engine, kept purely to exercise the Engine polymorphism
// boundary (spec §4.7's closing note) rather than to add a second
// production-grade backend.
type BoltEngine struct {
	db *bbolt.DB
}

// OpenBolt opens (creating if absent) a bbolt database file at path and
// ensures its single bucket exists.
func OpenBolt(path string) (*BoltEngine, error) {
	db, err := bbolt.Open(path, 0644, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, kvserrors.NewStorageError(err, kvserrors.ErrorCodeBackend, "Failed to open bbolt database").
			WithPath(path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, kvserrors.NewStorageError(err, kvserrors.ErrorCodeBackend, "Failed to create bbolt bucket")
	}

	return &BoltEngine{db: db}, nil
}

func (b *BoltEngine) Get(_ context.Context, key string) (string, bool, error) {
	var value string
	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			found = true
			value = string(v)
		}
		return nil
	})
	if err != nil {
		return "", false, kvserrors.NewStorageError(err, kvserrors.ErrorCodeBackend, "bbolt get failed").WithDetail("key", key)
	}
	return value, found, nil
}

func (b *BoltEngine) Set(_ context.Context, key, value string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return kvserrors.NewStorageError(err, kvserrors.ErrorCodeBackend, "bbolt set failed").WithDetail("key", key)
	}
	return nil
}

func (b *BoltEngine) Remove(_ context.Context, key string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket.Get([]byte(key)) == nil {
			return errKeyNotFound
		}
		return bucket.Delete([]byte(key))
	})
	if err == errKeyNotFound {
		return notFound(key)
	}
	if err != nil {
		return kvserrors.NewStorageError(err, kvserrors.ErrorCodeBackend, "bbolt remove failed").WithDetail("key", key)
	}
	return nil
}

// Close releases the underlying bbolt database file.
func (b *BoltEngine) Close() error {
	return b.db.Close()
}
