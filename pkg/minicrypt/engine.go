package minicrypt

import (
	"encoding/binary"

	"github.com/idelchi/minicrypt/pkg/secure"
)

// engine carries the message buffering shared by the Merkle–Damgård digests:
// the partial block, the running byte count and the finalized marker.
type engine struct {
	block     [HashBlockSize]byte
	filled    int
	length    uint64
	finalized bool
}

func (e *engine) reset() {
	secure.Zero(e.block[:])

	e.filled = 0
	e.length = 0
	e.finalized = false
}

// write appends p and runs compress over every completed block.
func (e *engine) write(p []byte, compress func(block *[HashBlockSize]byte)) {
	e.length += uint64(len(p))

	for len(p) > 0 {
		n := copy(e.block[e.filled:], p)
		e.filled += n
		p = p[n:]

		if e.filled == HashBlockSize {
			compress(&e.block)

			e.filled = 0
		}
	}
}

// pad appends 0x80, zeros up to 56 mod 64, and the message length in bits.
func (e *engine) pad(compress func(block *[HashBlockSize]byte), order binary.ByteOrder) {
	const lengthOffset = HashBlockSize - 8

	var tail [HashBlockSize + 8]byte

	bits := e.length * 8
	tail[0] = 0x80

	padLen := lengthOffset - e.filled
	if e.filled >= lengthOffset {
		padLen += HashBlockSize
	}

	order.PutUint64(tail[padLen:], bits)
	e.write(tail[:padLen+8], compress)
}

// wipe zeroes the buffered data and leaves the context finalized.
func (e *engine) wipe() {
	e.reset()
	e.finalized = true
}
