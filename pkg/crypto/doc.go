// Package crypto is the facade over the cryptographic backends.
//
// A Backend supplies randomness, digests, HMAC-SHA256 and PBKDF2. Three are
// available:
//
//   - builtin: the dependency-free primitives of pkg/minicrypt and pkg/random
//   - stdlib: the Go standard library plus golang.org/x/crypto/pbkdf2
//   - tink: Google's tink-go primitives
//
// The process-wide default backend is fixed once, either explicitly through
// Configure before first use or implicitly on first use. Builds tagged
// crypto_stdlib or crypto_tink change the implicit choice.
//
// Results that hold key material are returned as *secure.Buffer values owned
// by the caller, who should Close them when done:
//
//	key, err := crypto.DeriveKey(password, salt, 100_000, 32)
//	if err != nil {
//		return err
//	}
//	defer key.Close()
//
// Every call creates its own contexts and random source, so a Facade is safe
// for concurrent use.
package crypto
