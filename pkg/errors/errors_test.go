package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorClassification(t *testing.T) {
	ne := NewNetworkError(nil, ErrorCodeFrameTooLarge, "frame too large").WithRemoteAddr("127.0.0.1:1234")
	require.True(t, IsNetworkError(ne))
	require.False(t, IsStorageError(ne))
	require.Equal(t, ErrorCodeFrameTooLarge, GetErrorCode(ne))

	got, ok := AsNetworkError(ne)
	require.True(t, ok)
	require.Equal(t, "127.0.0.1:1234", got.RemoteAddr())
}

func TestPoolErrorHelpers(t *testing.T) {
	panicErr := NewPoolPanicError(3, "boom")
	require.True(t, IsPoolError(panicErr))
	require.Equal(t, 3, panicErr.WorkerID())
	require.Equal(t, ErrorCodePoolPanic, panicErr.Code())

	syncErr := NewSyncFailureError()
	require.Equal(t, ErrorCodeSyncFailure, syncErr.Code())
}

func TestIndexErrorHelpers(t *testing.T) {
	notFound := NewKeyNotFoundError("a")
	require.Equal(t, "a", notFound.Key())
	require.Equal(t, ErrorCodeKeyNotFound, notFound.Code())

	unexpected := NewUnexpectedCommandTypeError("a")
	require.Equal(t, ErrorCodeUnexpectedCommandType, unexpected.Code())
}

func TestWrappedErrorSurvivesErrorsAs(t *testing.T) {
	cause := errors.New("disk full")
	se := NewStorageError(cause, ErrorCodeDiskFull, "write failed").WithPath("/data/0.log")

	var target *StorageError
	require.True(t, errors.As(error(se), &target))
	require.Equal(t, "/data/0.log", target.Path())
	require.ErrorIs(t, se, cause)
}
