package encryption

import (
	"errors"
	"fmt"
	"io"

	"github.com/idelchi/minicrypt/pkg/minicrypt"
)

// cipherCTR streams r through AES-CTR into w. It both encrypts and decrypts.
func cipherCTR(r io.Reader, w io.Writer, block *minicrypt.AES) error {
	bufp := getBuffer()
	defer putBuffer(bufp)

	buf := *bufp

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			if err := block.CipherCTR(buf[:n], buf[:n]); err != nil {
				return fmt.Errorf("applying keystream: %w", err)
			}

			if _, err := w.Write(buf[:n]); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}

		if errors.Is(readErr, io.EOF) {
			return nil
		}

		if readErr != nil {
			return fmt.Errorf("reading input: %w", readErr)
		}
	}
}
