package minicrypt

import (
	"hash"

	"github.com/idelchi/minicrypt/pkg/secure"
)

const (
	ipad = 0x36
	opad = 0x5c
)

// NormalizeKey maps an HMAC key onto one hash block: keys longer than
// HashBlockSize are replaced by their SHA-256 digest, then zero-padded.
func NormalizeKey(key []byte) [HashBlockSize]byte {
	var out [HashBlockSize]byte

	if len(key) > HashBlockSize {
		sum := SHA256Digest(key, nil)
		copy(out[:], sum[:])
		secure.Zero(sum[:])
	} else {
		copy(out[:], key)
	}

	return out
}

// HMACSHA256 computes SHA256(opad ^ K || SHA256(ipad ^ K || data)).
func HMACSHA256(key, data []byte) [SHA256Size]byte {
	h := NewHMAC(key)
	defer h.Wipe()

	h.write(data)

	var out [SHA256Size]byte

	h.sumInto(&out)

	return out
}

// HMAC is a streaming HMAC-SHA256. It implements hash.Hash.
type HMAC struct {
	inner SHA256
	ipad  [HashBlockSize]byte
	opad  [HashBlockSize]byte
}

var _ hash.Hash = (*HMAC)(nil)

// NewHMAC keys a new HMAC-SHA256. The key slice is not retained.
func NewHMAC(key []byte) *HMAC {
	h := new(HMAC)

	k := NormalizeKey(key)
	for i := range k {
		h.ipad[i] = k[i] ^ ipad
		h.opad[i] = k[i] ^ opad
	}

	secure.Zero(k[:])
	h.Reset()

	return h
}

// Reset discards written data and keeps the key.
func (h *HMAC) Reset() {
	h.inner.Init()
	h.inner.write(h.ipad[:], h.inner.compress)
}

func (h *HMAC) write(p []byte) {
	h.inner.write(p, h.inner.compress)
}

// Write absorbs p. It never fails.
func (h *HMAC) Write(p []byte) (int, error) {
	h.write(p)

	return len(p), nil
}

// Sum appends the tag for the data written so far to b.
func (h *HMAC) Sum(b []byte) []byte {
	var out [SHA256Size]byte

	h.sumInto(&out)

	b = append(b, out[:]...)
	secure.Zero(out[:])

	return b
}

func (h *HMAC) sumInto(out *[SHA256Size]byte) {
	var inner [SHA256Size]byte

	h.inner.sumInto(&inner)

	var outer SHA256

	outer.Init()
	outer.write(h.opad[:], outer.compress)
	outer.write(inner[:], outer.compress)
	_ = outer.Final(out[:]) //nolint:errcheck // fresh context, sized output

	secure.Zero(inner[:])
}

func (h *HMAC) Size() int      { return SHA256Size }
func (h *HMAC) BlockSize() int { return HashBlockSize }

// Wipe zeroes the keyed pads and the inner context. The HMAC must be rekeyed
// through NewHMAC before further use.
func (h *HMAC) Wipe() {
	secure.ZeroAll(h.ipad[:], h.opad[:])
	h.inner.state = [8]uint32{}
	h.inner.wipe()
}
