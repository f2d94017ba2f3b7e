package encryption

import (
	"fmt"

	"github.com/idelchi/minicrypt/pkg/minicrypt"
)

// pkcs7Pad appends PKCS#7 padding so the result is a multiple of blockSize.
// A full block of padding is added to aligned input.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize

	for range padding {
		data = append(data, byte(padding))
	}

	return data
}

// pkcs7Unpad removes PKCS#7 padding from a decrypted final block.
func pkcs7Unpad(data []byte) ([]byte, error) {
	length := len(data)
	if length == 0 || length%minicrypt.AESBlockSize != 0 {
		return nil, ErrInvalidBlockSize
	}

	padding := int(data[length-1])
	if padding == 0 || padding > minicrypt.AESBlockSize {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidPadding, padding)
	}

	for i := length - padding; i < length; i++ {
		if data[i] != byte(padding) {
			return nil, ErrInvalidPadding
		}
	}

	return data[:length-padding], nil
}
