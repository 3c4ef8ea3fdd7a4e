package engine

import (
	"errors"

	kvserrors "github.com/ignitekv/kvs/pkg/errors"
)

// errKeyNotFound is an internal sentinel bbolt's Update callback returns to
// abort the transaction without committing a delete; it never escapes this
// package.
var errKeyNotFound = errors.New("key not found")

func notFound(key string) error {
	return kvserrors.NewKeyNotFoundError(key)
}

func unexpectedCommandType(key string) error {
	return kvserrors.NewUnexpectedCommandTypeError(key)
}
