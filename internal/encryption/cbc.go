package encryption

import (
	"errors"
	"fmt"
	"io"

	"github.com/idelchi/minicrypt/pkg/minicrypt"
)

// encryptCBC streams r through AES-CBC into w, padding the final block.
func encryptCBC(r io.Reader, w io.Writer, block *minicrypt.AES) error {
	bufp := getBuffer()
	defer putBuffer(bufp)

	buf := *bufp
	pending := make([]byte, 0, len(buf)+2*minicrypt.AESBlockSize)

	defer clear(pending[:cap(pending)])

	for {
		n, err := r.Read(buf)
		pending = append(pending, buf[:n]...)

		isEOF := errors.Is(err, io.EOF)
		if err != nil && !isEOF {
			return fmt.Errorf("reading input: %w", err)
		}

		if isEOF {
			pending = pkcs7Pad(pending, minicrypt.AESBlockSize)
		}

		// Encrypt every complete block; a partial block waits for more input.
		if full := len(pending) - len(pending)%minicrypt.AESBlockSize; full > 0 {
			if err := block.EncryptCBC(pending[:full], pending[:full]); err != nil {
				return fmt.Errorf("encrypting: %w", err)
			}

			if _, err := w.Write(pending[:full]); err != nil {
				return fmt.Errorf("writing encrypted block: %w", err)
			}

			pending = append(pending[:0], pending[full:]...)
		}

		if isEOF {
			return nil
		}
	}
}

// decryptCBC streams r through AES-CBC into w and strips the padding.
// The last block is held back until end of input so it can be unpadded.
func decryptCBC(r io.Reader, w io.Writer, block *minicrypt.AES) error {
	bufp := getBuffer()
	defer putBuffer(bufp)

	buf := *bufp
	pending := make([]byte, 0, len(buf)+2*minicrypt.AESBlockSize)

	defer clear(pending[:cap(pending)])

	for {
		n, err := r.Read(buf)
		pending = append(pending, buf[:n]...)

		isEOF := errors.Is(err, io.EOF)
		if err != nil && !isEOF {
			return fmt.Errorf("reading input: %w", err)
		}

		if isEOF {
			return decryptFinal(pending, w, block)
		}

		if len(pending) == 0 {
			continue
		}

		// Keep between 1 and 16 bytes back.
		full := (len(pending) - 1) / minicrypt.AESBlockSize * minicrypt.AESBlockSize
		if full == 0 {
			continue
		}

		if err := block.DecryptCBC(pending[:full], pending[:full]); err != nil {
			return fmt.Errorf("decrypting: %w", err)
		}

		if _, err := w.Write(pending[:full]); err != nil {
			return fmt.Errorf("writing decrypted block: %w", err)
		}

		pending = append(pending[:0], pending[full:]...)
	}
}

func decryptFinal(pending []byte, w io.Writer, block *minicrypt.AES) error {
	if len(pending) == 0 || len(pending)%minicrypt.AESBlockSize != 0 {
		return ErrInvalidBlockSize
	}

	if err := block.DecryptCBC(pending, pending); err != nil {
		return fmt.Errorf("decrypting: %w", err)
	}

	last := len(pending) - minicrypt.AESBlockSize

	unpadded, err := pkcs7Unpad(pending[last:])
	if err != nil {
		return fmt.Errorf("removing padding: %w", err)
	}

	if _, err := w.Write(pending[:last]); err != nil {
		return fmt.Errorf("writing decrypted block: %w", err)
	}

	if _, err := w.Write(unpadded); err != nil {
		return fmt.Errorf("writing final decrypted block: %w", err)
	}

	return nil
}
