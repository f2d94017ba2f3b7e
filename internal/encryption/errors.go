package encryption

import "errors"

var (
	// ErrInvalidPadding is returned when PKCS#7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when CBC ciphertext is not aligned with the AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
	// ErrProcessing indicates a malformed envelope or a failed authentication.
	ErrProcessing = errors.New("envelope processing error")
)
