package minicrypt

import (
	"crypto/subtle"

	"github.com/idelchi/minicrypt/pkg/secure"
)

// EncryptCBC encrypts src into dst in CBC mode. len(src) must be a multiple
// of AESBlockSize. The chain carries over to the next call; dst and src may
// be the same slice.
func (c *AES) EncryptCBC(dst, src []byte) error {
	if err := c.checkCBC(dst, src); err != nil {
		return err
	}

	var x [AESBlockSize]byte

	for off := 0; off < len(src); off += AESBlockSize {
		subtle.XORBytes(x[:], src[off:off+AESBlockSize], c.iv[:])
		c.EncryptBlock(dst[off:], x[:])
		copy(c.iv[:], dst[off:off+AESBlockSize])
	}

	secure.Zero(x[:])

	return nil
}

// DecryptCBC decrypts src into dst in CBC mode. Same contract as EncryptCBC.
func (c *AES) DecryptCBC(dst, src []byte) error {
	if err := c.checkCBC(dst, src); err != nil {
		return err
	}

	var saved, x [AESBlockSize]byte

	for off := 0; off < len(src); off += AESBlockSize {
		copy(saved[:], src[off:off+AESBlockSize])
		c.DecryptBlock(x[:], saved[:])
		subtle.XORBytes(dst[off:off+AESBlockSize], x[:], c.iv[:])
		c.iv = saved
	}

	secure.ZeroAll(saved[:], x[:])

	return nil
}

func (c *AES) checkCBC(dst, src []byte) error {
	if !c.ready {
		return ErrInvalidKeySize
	}

	if len(src)%AESBlockSize != 0 {
		return ErrNotBlockAligned
	}

	if len(dst) < len(src) {
		return ErrShortBuffer
	}

	return nil
}

// CipherCTR XORs src with the keystream E(counter), E(counter+1), ... into dst.
// It works on any length; the counter and unused keystream carry over, so a
// stream may be processed in chunks. Encryption and decryption are the same call.
func (c *AES) CipherCTR(dst, src []byte) error {
	if !c.ready {
		return ErrInvalidKeySize
	}

	if len(dst) < len(src) {
		return ErrShortBuffer
	}

	for i := range src {
		if c.used == AESBlockSize {
			c.EncryptBlock(c.stream[:], c.counter[:])
			increment(&c.counter)

			c.used = 0
		}

		dst[i] = src[i] ^ c.stream[c.used]
		c.used++
	}

	return nil
}

// increment adds one to the 128-bit big-endian counter, wrapping at 2^128.
func increment(ctr *[AESBlockSize]byte) {
	for i := AESBlockSize - 1; i >= 0; i-- {
		ctr[i]++
		if ctr[i] != 0 {
			return
		}
	}
}
