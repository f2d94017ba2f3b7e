package crypto

import "errors"

var (
	// ErrShortRead is returned when the backend delivered fewer random bytes than requested.
	ErrShortRead = errors.New("short read from random source")
	// ErrUnsupportedAlgorithm is returned for a digest algorithm the backend does not offer.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrUnknownBackend is returned by Select and ParseKind for an unknown backend name.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrAlreadyConfigured is returned by Configure once the default backend is in use.
	ErrAlreadyConfigured = errors.New("default backend already configured")
	// ErrInvalidSize is returned when a requested output size is not positive.
	ErrInvalidSize = errors.New("invalid output size")
)
