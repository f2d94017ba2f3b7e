package minicrypt

import "errors"

var (
	// ErrFinalized is returned when a digest context is used after Final without Init.
	ErrFinalized = errors.New("digest context already finalized")
	// ErrShortBuffer is returned when an output buffer is smaller than the result.
	ErrShortBuffer = errors.New("output buffer too small")
	// ErrInvalidKeySize is returned for a missing AES key or an unsupported key size.
	ErrInvalidKeySize = errors.New("invalid AES key size")
	// ErrInvalidIVSize is returned when an IV or counter block is not 16 bytes.
	ErrInvalidIVSize = errors.New("invalid IV size")
	// ErrNotBlockAligned is returned when CBC input is not a multiple of the AES block size.
	ErrNotBlockAligned = errors.New("input is not a multiple of the block size")
	// ErrOutputTooLong is returned when PBKDF2 is asked for more than (2^32-1) blocks.
	ErrOutputTooLong = errors.New("derived key too long")
)
