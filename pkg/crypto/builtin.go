package crypto

import (
	"fmt"
	"hash"

	"github.com/idelchi/minicrypt/pkg/minicrypt"
	"github.com/idelchi/minicrypt/pkg/random"
)

// builtinBackend runs on pkg/minicrypt and pkg/random only.
type builtinBackend struct{}

func (builtinBackend) Name() string { return string(Builtin) }

func (builtinBackend) Random(p []byte) (int, error) {
	return random.Bytes(p)
}

func (builtinBackend) NewHash(alg Algorithm) (hash.Hash, error) {
	switch alg {
	case SHA256:
		return minicrypt.NewSHA256(), nil
	case SHA1:
		return minicrypt.NewSHA1(), nil
	case MD5:
		return minicrypt.NewMD5(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}

func (builtinBackend) HMAC(key, data []byte) ([]byte, error) {
	tag := minicrypt.HMACSHA256(key, data)

	return tag[:], nil
}

func (builtinBackend) DeriveKey(password, salt []byte, rounds int, out []byte) error {
	return minicrypt.PBKDF2(password, salt, rounds, out)
}
