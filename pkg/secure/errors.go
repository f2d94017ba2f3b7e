package secure

import "errors"

var (
	// ErrInvalidSize is returned when a buffer is requested with a non-positive size.
	ErrInvalidSize = errors.New("buffer size must be positive")
	// ErrSizeMismatch is returned when two buffers of different capacity are combined.
	ErrSizeMismatch = errors.New("buffer sizes differ")
	// ErrShortRead is returned when a fill source delivered fewer bytes than the buffer holds.
	ErrShortRead = errors.New("short read while filling buffer")
	// ErrUnknownOp is returned for a bitwise operation outside Xor, And and Or.
	ErrUnknownOp = errors.New("unknown bitwise operation")
)
