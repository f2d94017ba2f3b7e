package minicrypt

import "math/bits"

var (
	sbox    [256]byte
	invSbox [256]byte
)

var rcon = [10]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

// init derives the S-box from the multiplicative inverse in GF(2^8) followed
// by the affine transform. p walks the powers of 3 and q its inverse.
func init() {
	p, q := byte(1), byte(1)

	for {
		hi := p & 0x80
		p ^= p << 1

		if hi != 0 {
			p ^= 0x1b
		}

		q ^= q << 1
		q ^= q << 2
		q ^= q << 4

		if q&0x80 != 0 {
			q ^= 0x09
		}

		x := q ^ bits.RotateLeft8(q, 1) ^ bits.RotateLeft8(q, 2) ^ bits.RotateLeft8(q, 3) ^ bits.RotateLeft8(q, 4)
		sbox[p] = x ^ 0x63

		if p == 1 {
			break
		}
	}

	sbox[0] = 0x63

	for i, v := range sbox {
		invSbox[v] = byte(i)
	}
}

// xtime multiplies by x in GF(2^8).
func xtime(b byte) byte {
	if b&0x80 != 0 {
		return b<<1 ^ 0x1b
	}

	return b << 1
}

// gmul multiplies a and b in GF(2^8).
func gmul(a, b byte) byte {
	var r byte

	for b != 0 {
		if b&1 != 0 {
			r ^= a
		}

		a = xtime(a)
		b >>= 1
	}

	return r
}
