package random

import "errors"

var (
	// ErrSourceUnavailable is returned when the OS entropy source cannot be opened.
	ErrSourceUnavailable = errors.New("random source unavailable")
	// ErrShortRead is returned when the source delivered fewer bytes than requested.
	ErrShortRead = errors.New("short read from random source")
	// ErrClosed is returned when reading from a closed source.
	ErrClosed = errors.New("random source closed")
	// ErrInvalidRange is returned by Uniform for min > max or a range wider than 2^54.
	ErrInvalidRange = errors.New("invalid uniform range")
)
