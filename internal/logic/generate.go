package logic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/idelchi/minicrypt/internal/config"
	"github.com/idelchi/minicrypt/pkg/crypto"
	"github.com/idelchi/minicrypt/pkg/random"
	"github.com/idelchi/minicrypt/pkg/secure"
)

// ErrNoRandomness is returned when a salt could not be drawn.
var ErrNoRandomness = errors.New("randomness unavailable")

// RunKey prints cfg.Size random bytes as hex. The key only ever lives in
// guarded memory.
func RunKey(cfg *config.Config, w io.Writer) error {
	key, err := secure.NewGuarded(cfg.Size)
	if err != nil {
		return fmt.Errorf("allocating key: %w", err)
	}
	defer key.Close()

	if err := crypto.RandomKey(key); err != nil {
		return err //nolint:wrapcheck // already describes the short read
	}

	fmt.Fprintln(w, caseHex(key.Hex(), cfg.Upper))

	return nil
}

// RunSalt prints a fresh salt as hex.
func RunSalt(cfg *config.Config, w io.Writer) error {
	salt := crypto.MakeSalt()
	defer salt.Close()

	if salt.Empty() {
		return ErrNoRandomness
	}

	fmt.Fprintln(w, caseHex(crypto.Hex(salt), cfg.Upper))

	return nil
}

// RunDerive prints the salt and the PBKDF2 key derived from the password.
// Without --salt a fresh salt is generated.
func RunDerive(cfg *config.Config, w io.Writer) error {
	password, err := loadSecret(cfg.Password, cfg.PasswordFile)
	if err != nil {
		return err
	}
	defer password.Close()

	salt, err := decodeSalt(cfg.Salt)
	if err != nil {
		return err
	}

	if salt == nil {
		fresh := crypto.MakeSalt()
		defer fresh.Close()

		if fresh.Empty() {
			return ErrNoRandomness
		}

		salt = fresh.Bytes()
	}

	key, err := crypto.DeriveKey(password.Bytes(), salt, cfg.Rounds, cfg.Length)
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by the facade
	}
	defer key.Close()

	fmt.Fprintf(w, "salt  %s\n", caseHex(fmt.Sprintf("%x", salt), cfg.Upper))
	fmt.Fprintf(w, "key   %s\n", caseHex(crypto.Hex(key), cfg.Upper))

	return nil
}

// RunUniform prints cfg.Count unbiased integers from [cfg.Min, cfg.Max].
func RunUniform(cfg *config.Config, w io.Writer) error {
	source, err := random.Open()
	if err != nil {
		return err //nolint:wrapcheck // already names the source
	}
	defer source.Close()

	for range cfg.Count {
		value, err := source.Uniform(cfg.Min, cfg.Max)
		if err != nil {
			return err //nolint:wrapcheck // already names the range
		}

		fmt.Fprintln(w, value)
	}

	return nil
}

func caseHex(s string, upper bool) string {
	if upper {
		return strings.ToUpper(s)
	}

	return s
}
