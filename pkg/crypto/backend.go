package crypto

import (
	"fmt"
	"hash"
)

// Backend supplies the primitives the facade composes.
type Backend interface {
	// Name identifies the backend, e.g. in logs.
	Name() string
	// Random fills p with cryptographically secure bytes and returns how many
	// were written. Fewer than len(p) always comes with an error.
	Random(p []byte) (int, error)
	// NewHash returns a fresh streaming digest.
	NewHash(alg Algorithm) (hash.Hash, error)
	// HMAC returns HMAC-SHA256(key, data).
	HMAC(key, data []byte) ([]byte, error)
	// DeriveKey fills out with PBKDF2-HMAC-SHA256(password, salt, rounds).
	DeriveKey(password, salt []byte, rounds int, out []byte) error
}

// Kind selects a backend implementation.
type Kind string

const (
	Builtin Kind = "builtin"
	Stdlib  Kind = "stdlib"
	Tink    Kind = "tink"
)

// Kinds lists the available backends.
func Kinds() []Kind {
	return []Kind{Builtin, Stdlib, Tink}
}

// ParseKind maps a name to a Kind. An empty name selects the compiled-in default.
func ParseKind(name string) (Kind, error) {
	if name == "" {
		return defaultKind, nil
	}

	for _, k := range Kinds() {
		if string(k) == name {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Select returns the backend for kind.
func Select(kind Kind) (Backend, error) {
	switch kind {
	case Builtin:
		return builtinBackend{}, nil
	case Stdlib:
		return stdlibBackend{}, nil
	case Tink:
		return tinkBackend{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}
