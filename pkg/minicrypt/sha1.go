package minicrypt

import (
	"encoding/binary"
	"hash"
	"math/bits"

	"github.com/idelchi/minicrypt/pkg/secure"
)

var sha1Init = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}

const (
	sha1K0 = 0x5a827999
	sha1K1 = 0x6ed9eba1
	sha1K2 = 0x8f1bbcdc
	sha1K3 = 0xca62c1d6
)

// SHA1 is a streaming SHA-1 context.
type SHA1 struct {
	state [5]uint32
	engine
}

var _ hash.Hash = (*SHA1)(nil)

// NewSHA1 returns an initialized SHA-1 context.
func NewSHA1() *SHA1 {
	d := new(SHA1)
	d.Init()

	return d
}

// Init loads the initial chaining values and clears counters and the finalized marker.
func (d *SHA1) Init() {
	d.state = sha1Init
	d.engine.reset()
}

// Update absorbs p.
func (d *SHA1) Update(p []byte) error {
	if d.finalized {
		return ErrFinalized
	}

	d.write(p, d.compress)

	return nil
}

// Final pads the message, writes the 20-byte digest to out and wipes the context.
func (d *SHA1) Final(out []byte) error {
	if d.finalized {
		return ErrFinalized
	}

	if len(out) < SHA1Size {
		return ErrShortBuffer
	}

	d.pad(d.compress, binary.BigEndian)

	for i, s := range d.state {
		binary.BigEndian.PutUint32(out[4*i:], s)
	}

	d.state = [5]uint32{}
	d.wipe()

	return nil
}

func (d *SHA1) compress(block *[HashBlockSize]byte) {
	var w [80]uint32

	for i := range 16 {
		w[i] = binary.BigEndian.Uint32(block[4*i:])
	}

	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d0, e := d.state[0], d.state[1], d.state[2], d.state[3], d.state[4]

	for i := range 80 {
		var f, k uint32

		switch {
		case i < 20:
			f, k = (b&c)|(^b&d0), sha1K0
		case i < 40:
			f, k = b^c^d0, sha1K1
		case i < 60:
			f, k = (b&c)|(b&d0)|(c&d0), sha1K2
		default:
			f, k = b^c^d0, sha1K3
		}

		t := bits.RotateLeft32(a, 5) + f + e + k + w[i]
		e, d0, c, b, a = d0, c, bits.RotateLeft32(b, 30), a, t
	}

	d.state[0] += a
	d.state[1] += b
	d.state[2] += c
	d.state[3] += d0
	d.state[4] += e

	secure.ZeroWords(w[:])
}

// Write implements io.Writer. It fails only after Final.
func (d *SHA1) Write(p []byte) (int, error) {
	if err := d.Update(p); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Sum appends the digest of the data written so far to b without changing
// the context. It panics on a finalized context.
func (d *SHA1) Sum(b []byte) []byte {
	clone := *d

	var out [SHA1Size]byte
	if err := clone.Final(out[:]); err != nil {
		panic("minicrypt: " + err.Error())
	}

	b = append(b, out[:]...)
	secure.Zero(out[:])

	return b
}

// Reset is Init.
func (d *SHA1) Reset() { d.Init() }

// Size returns SHA1Size.
func (d *SHA1) Size() int { return SHA1Size }

// BlockSize returns HashBlockSize.
func (d *SHA1) BlockSize() int { return HashBlockSize }

// SHA1Digest hashes salt (when not empty) followed by data.
func SHA1Digest(data, salt []byte) [SHA1Size]byte {
	var (
		d   SHA1
		out [SHA1Size]byte
	)

	d.Init()
	d.write(salt, d.compress)
	d.write(data, d.compress)
	_ = d.Final(out[:]) //nolint:errcheck // fresh context, sized output

	return out
}
