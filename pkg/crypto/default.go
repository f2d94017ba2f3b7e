package crypto

import (
	"fmt"
	"sync"

	"github.com/idelchi/minicrypt/pkg/secure"
)

var (
	defaultMu     sync.Mutex
	defaultFacade *Facade
)

// Configure fixes the process-wide default backend. It fails with
// ErrAlreadyConfigured once a default exists, whether from an earlier
// Configure or from first use.
func Configure(kind Kind, opts ...Option) error {
	backend, err := Select(kind)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultFacade != nil {
		return fmt.Errorf("%w: using %s", ErrAlreadyConfigured, defaultFacade.backend.Name())
	}

	defaultFacade = New(backend, opts...)

	return nil
}

// Default returns the process-wide facade, fixing it to the compiled-in
// backend if Configure was never called.
func Default() *Facade {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultFacade == nil {
		backend, err := Select(defaultKind)
		if err != nil {
			panic(err)
		}

		defaultFacade = New(backend)
	}

	return defaultFacade
}

// RandomKey calls RandomKey on the default facade.
func RandomKey(target Target) error { return Default().RandomKey(target) }

// MakeSalt calls MakeSalt on the default facade.
func MakeSalt() *secure.Buffer { return Default().MakeSalt() }

// HashDigest calls HashDigest on the default facade.
func HashDigest(input []byte, opts ...DigestOption) (*secure.Buffer, error) {
	return Default().HashDigest(input, opts...)
}

// HmacDigest calls HmacDigest on the default facade.
func HmacDigest(key, input []byte) (*secure.Buffer, error) {
	return Default().HmacDigest(key, input)
}

// DeriveKey calls DeriveKey on the default facade.
func DeriveKey(password, salt []byte, rounds, size int) (*secure.Buffer, error) {
	return Default().DeriveKey(password, salt, rounds, size)
}

// ToU64 calls ToU64 on the default facade.
func ToU64(input []byte, opts ...DigestOption) uint64 { return Default().ToU64(input, opts...) }

// Hex calls Hex on the default facade.
func Hex(b *secure.Buffer) string { return Default().Hex(b) }
