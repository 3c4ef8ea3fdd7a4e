package errors

// IndexError provides specialized error handling for index-related
// operations: key lookups, locator inserts/removes, and recovery replay.
type IndexError struct {
	*baseError

	// key identifies which key was being processed when the error occurred.
	key string

	// operation describes what index operation was being performed
	// (e.g. "Get", "Set", "Remove", "Rebuild").
	operation string
}

// NewIndexError creates a new index-specific error with the provided context.
func NewIndexError(err error, code ErrorCode, msg string) *IndexError {
	return &IndexError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while maintaining the IndexError type.
func (ie *IndexError) WithMessage(msg string) *IndexError {
	ie.baseError.WithMessage(msg)
	return ie
}

// WithCode sets the error code while preserving the IndexError type.
func (ie *IndexError) WithCode(code ErrorCode) *IndexError {
	ie.baseError.WithCode(code)
	return ie
}

// WithDetail adds contextual information while maintaining the IndexError type.
func (ie *IndexError) WithDetail(key string, value any) *IndexError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// WithKey records which key was being processed when the error occurred.
func (ie *IndexError) WithKey(key string) *IndexError {
	ie.key = key
	return ie
}

// WithOperation records what index operation was being performed.
func (ie *IndexError) WithOperation(operation string) *IndexError {
	ie.operation = operation
	return ie
}

// Key returns the key that was being processed when the error occurred.
func (ie *IndexError) Key() string {
	return ie.key
}

// Operation returns the name of the operation that was being performed.
func (ie *IndexError) Operation() string {
	return ie.operation
}

// NewKeyNotFoundError creates the error for a remove on a key absent from
// the index. Get on an absent key is not an error — only Remove fails
// this way.
func NewKeyNotFoundError(key string) *IndexError {
	return NewIndexError(nil, ErrorCodeKeyNotFound, "Key not found").
		WithKey(key).
		WithOperation("Remove")
}

// NewUnexpectedCommandTypeError creates the error for an indexed locator
// that resolved to a non-Set record. This always indicates a corrupted
// index, since only Set locators are ever inserted.
func NewUnexpectedCommandTypeError(key string) *IndexError {
	return NewIndexError(nil, ErrorCodeUnexpectedCommandType, "Unexpected command type for indexed key").
		WithKey(key).
		WithOperation("Get")
}
