package logic

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idelchi/gogen/pkg/key"
	"github.com/idelchi/minicrypt/pkg/secure"
)

// ErrEmptySecret is returned when a password or key resolves to nothing.
var ErrEmptySecret = errors.New("empty secret")

// loadSecret moves the password from the flag value or, if set, the file into
// a secure buffer. One trailing line break is stripped from file contents.
func loadSecret(value, file string) (*secure.Buffer, error) {
	var raw []byte

	if file != "" {
		data, err := os.ReadFile(filepath.Clean(file))
		if err != nil {
			return nil, fmt.Errorf("reading secret file: %w", err)
		}

		trimmed := bytes.TrimSuffix(bytes.TrimSuffix(data, []byte("\n")), []byte("\r"))
		secure.Zero(data[len(trimmed):])

		raw = trimmed
	} else {
		raw = []byte(value)
	}

	if len(raw) == 0 {
		return nil, ErrEmptySecret
	}

	buf, err := secure.NewFrom(len(raw), secure.Move(raw))
	if err != nil {
		return nil, fmt.Errorf("storing secret: %w", err)
	}

	return buf, nil
}

// loadKey decodes a hex key from the flag value or, if set, the file.
// Surrounding whitespace is ignored.
func loadKey(value, file string) (*secure.Buffer, error) {
	encoded := value

	if file != "" {
		data, err := os.ReadFile(filepath.Clean(file))
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		encoded = string(data)
		secure.Zero(data)
	}

	raw, err := key.FromHex(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}

	if len(raw) == 0 {
		return nil, ErrEmptySecret
	}

	buf, err := secure.NewFrom(len(raw), secure.Move(raw))
	if err != nil {
		return nil, fmt.Errorf("storing key: %w", err)
	}

	return buf, nil
}

// decodeSalt decodes an optional hex salt. An empty string yields nil.
func decodeSalt(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}

	salt, err := key.FromHex(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding salt: %w", err)
	}

	return salt, nil
}
