package crypto

import (
	"crypto/hmac"
	"crypto/md5" //nolint:gosec // offered for checksums only
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // offered for checksums only
	"crypto/sha256"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/idelchi/minicrypt/pkg/secure"
)

// stdlibBackend delegates to the Go standard library.
type stdlibBackend struct{}

func (stdlibBackend) Name() string { return string(Stdlib) }

func (stdlibBackend) Random(p []byte) (int, error) {
	n, err := io.ReadFull(rand.Reader, p)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrShortRead, err)
	}

	return n, nil
}

func (stdlibBackend) NewHash(alg Algorithm) (hash.Hash, error) {
	switch alg {
	case SHA256:
		return sha256.New(), nil
	case SHA1:
		return sha1.New(), nil //nolint:gosec // offered for checksums only
	case MD5:
		return md5.New(), nil //nolint:gosec // offered for checksums only
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}

func (stdlibBackend) HMAC(key, data []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, key)
	mac.Write(data) //nolint:errcheck // hash.Hash writes never fail

	return mac.Sum(nil), nil
}

func (stdlibBackend) DeriveKey(password, salt []byte, rounds int, out []byte) error {
	return derivePBKDF2(password, salt, rounds, out)
}

// derivePBKDF2 runs golang.org/x/crypto/pbkdf2 with HMAC-SHA256 into out.
func derivePBKDF2(password, salt []byte, rounds int, out []byte) error {
	if len(out) == 0 {
		return nil
	}

	derived := pbkdf2.Key(password, salt, max(rounds, 1), len(out), sha256.New)
	copy(out, derived)
	secure.Zero(derived)

	return nil
}
