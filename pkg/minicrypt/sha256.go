package minicrypt

import (
	"encoding/binary"
	"hash"
	"math/bits"

	"github.com/idelchi/minicrypt/pkg/secure"
)

var sha256Init = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// SHA256 is a streaming SHA-256 context.
type SHA256 struct {
	state [8]uint32
	engine
}

var _ hash.Hash = (*SHA256)(nil)

// NewSHA256 returns an initialized SHA-256 context.
func NewSHA256() *SHA256 {
	d := new(SHA256)
	d.Init()

	return d
}

// Init loads the initial chaining values and clears counters and the finalized marker.
func (d *SHA256) Init() {
	d.state = sha256Init
	d.engine.reset()
}

// Update absorbs p.
func (d *SHA256) Update(p []byte) error {
	if d.finalized {
		return ErrFinalized
	}

	d.write(p, d.compress)

	return nil
}

// Final pads the message, writes the 32-byte digest to out and wipes the context.
func (d *SHA256) Final(out []byte) error {
	if d.finalized {
		return ErrFinalized
	}

	if len(out) < SHA256Size {
		return ErrShortBuffer
	}

	d.pad(d.compress, binary.BigEndian)

	for i, s := range d.state {
		binary.BigEndian.PutUint32(out[4*i:], s)
	}

	d.state = [8]uint32{}
	d.wipe()

	return nil
}

func (d *SHA256) compress(block *[HashBlockSize]byte) {
	var w [64]uint32

	for i := range 16 {
		w[i] = binary.BigEndian.Uint32(block[4*i:])
	}

	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d0 := d.state[0], d.state[1], d.state[2], d.state[3]
	e, f, g, h := d.state[4], d.state[5], d.state[6], d.state[7]

	for i := range 64 {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + sha256K[i] + w[i]

		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		h, g, f, e = g, f, e, d0+t1
		d0, c, b, a = c, b, a, t1+t2
	}

	d.state[0] += a
	d.state[1] += b
	d.state[2] += c
	d.state[3] += d0
	d.state[4] += e
	d.state[5] += f
	d.state[6] += g
	d.state[7] += h

	secure.ZeroWords(w[:])
}

// Write implements io.Writer. It fails only after Final.
func (d *SHA256) Write(p []byte) (int, error) {
	if err := d.Update(p); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Sum appends the digest of the data written so far to b without changing
// the context. It panics on a finalized context.
func (d *SHA256) Sum(b []byte) []byte {
	var out [SHA256Size]byte

	d.sumInto(&out)

	b = append(b, out[:]...)
	secure.Zero(out[:])

	return b
}

func (d *SHA256) sumInto(out *[SHA256Size]byte) {
	clone := *d
	if err := clone.Final(out[:]); err != nil {
		panic("minicrypt: " + err.Error())
	}
}

// Reset is Init.
func (d *SHA256) Reset() { d.Init() }

// Size returns SHA256Size.
func (d *SHA256) Size() int { return SHA256Size }

// BlockSize returns HashBlockSize.
func (d *SHA256) BlockSize() int { return HashBlockSize }

// SHA256Digest hashes salt (when not empty) followed by data.
func SHA256Digest(data, salt []byte) [SHA256Size]byte {
	var (
		d   SHA256
		out [SHA256Size]byte
	)

	d.Init()
	d.write(salt, d.compress)
	d.write(data, d.compress)
	_ = d.Final(out[:]) //nolint:errcheck // fresh context, sized output

	return out
}
