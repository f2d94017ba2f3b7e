package secure

import "runtime"

// Transfer hands a caller-owned slice over to a Buffer. Whoever consumes the
// transfer copies the bytes and then zeroes the original slice, so the caller
// must not rely on its content afterwards.
type Transfer struct {
	src []byte
}

// Move wraps p for a source-erasing copy into a Buffer.
func Move(p []byte) Transfer {
	return Transfer{src: p}
}

// Len returns the number of bytes offered by the transfer.
func (t Transfer) Len() int {
	return len(t.src)
}

// Zero overwrites p with zeros. The write is kept alive past the loop so it is
// not dropped as a dead store.
func Zero(p []byte) {
	for i := range p {
		p[i] = 0
	}

	runtime.KeepAlive(p)
}

// ZeroAll zeroes every slice.
func ZeroAll(slices ...[]byte) {
	for _, p := range slices {
		Zero(p)
	}
}

// ZeroWords zeroes a slice of 32-bit words, such as a hash message schedule.
func ZeroWords(w []uint32) {
	for i := range w {
		w[i] = 0
	}

	runtime.KeepAlive(w)
}
