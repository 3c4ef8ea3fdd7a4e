package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary: segment file reads/writes, TCP connections, and the
	// directory bookkeeping the engine depends on.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Storage-specific error codes extend the base taxonomy to the unique
// failure modes of the log-structured segment store.
const (
	// ErrorCodeSegmentCorrupted indicates a segment file's data has been
	// damaged or is in an inconsistent state.
	ErrorCodeSegmentCorrupted ErrorCode = "SEGMENT_CORRUPTED"

	// ErrorCodeDecode indicates a JSON record or frame body could not be
	// decoded (malformed or truncated JSON) or encoded. A short read of a
	// segment is reported as ErrorCodeIO instead.
	ErrorCodeDecode ErrorCode = "DECODE_FAILURE"

	// ErrorCodePermissionDenied indicates insufficient permissions to access
	// a resource.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates that the storage device has run out of space.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates that the filesystem is mounted read-only.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"
)

// Index-specific error codes.
const (
	// ErrorCodeKeyNotFound indicates a remove was attempted on a key absent
	// from the index.
	ErrorCodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"

	// ErrorCodeUnexpectedCommandType indicates an indexed locator resolved
	// to a record that was not a Set — a corrupted index.
	ErrorCodeUnexpectedCommandType ErrorCode = "UNEXPECTED_COMMAND_TYPE"
)

// Pool-specific error codes.
const (
	// ErrorCodePoolPanic indicates a worker task panicked during execution.
	ErrorCodePoolPanic ErrorCode = "POOL_PANIC"

	// ErrorCodeSyncFailure indicates a completion channel was dropped before
	// it delivered a result.
	ErrorCodeSyncFailure ErrorCode = "SYNC_FAILURE"
)

// Network-specific error codes.
const (
	// ErrorCodeFrameTooLarge indicates a peer announced a frame length this
	// server refuses to buffer for.
	ErrorCodeFrameTooLarge ErrorCode = "FRAME_TOO_LARGE"

	// ErrorCodeConnectionClosed indicates the peer closed the connection
	// before a full frame was read or written.
	ErrorCodeConnectionClosed ErrorCode = "CONNECTION_CLOSED"
)

// ErrorCodeBackend indicates a failure surfaced by the non-core, third-party
// backed engine implementation.
const ErrorCodeBackend ErrorCode = "BACKEND_FAILURE"
