package secure

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Op selects the bitwise operation applied by [Buffer.Combine].
type Op int

const (
	// OpXor combines bytes with exclusive or.
	OpXor Op = iota
	// OpAnd combines bytes with and.
	OpAnd
	// OpOr combines bytes with or.
	OpOr
)

// String returns the operator name.
func (o Op) String() string {
	switch o {
	case OpXor:
		return "xor"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Buffer holds N bytes of secret material.
//
// The capacity is fixed at creation. The filled flag tells meaningful content
// apart from storage that was cleared or never written. A Buffer is owned by a
// single goroutine at a time and must not be copied after creation.
//
// Close zeroes and releases the storage. A Buffer that is garbage collected
// without Close is zeroed and released by a finalizer. The zero Buffer is an
// empty buffer of capacity 0.
type Buffer struct {
	mem    region
	filled bool
	closed bool
}

// New allocates an empty buffer of the given size.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	mem, err := allocate(size)
	if err != nil {
		return nil, err
	}

	buffer := &Buffer{mem: mem}

	runtime.SetFinalizer(buffer, (*Buffer).finalize)

	return buffer, nil
}

// MustNew is like New but panics on an invalid size or a failed allocation.
func MustNew(size int) *Buffer {
	buffer, err := New(size)
	if err != nil {
		panic("secure: " + err.Error())
	}

	return buffer
}

// NewFrom allocates a buffer of the given size and moves the transfer into it.
func NewFrom(size int, transfer Transfer) (*Buffer, error) {
	buffer, err := New(size)
	if err != nil {
		Zero(transfer.src)

		return nil, err
	}

	buffer.Assign(transfer)

	return buffer, nil
}

func (b *Buffer) finalize() {
	_ = b.Close() //nolint:errcheck // nothing to report from a finalizer
}

func (b *Buffer) data() []byte {
	if b.closed {
		panic("secure: access to closed buffer")
	}

	return b.mem.data
}

// Bytes returns the storage itself, not a copy. Writes through the returned
// slice do not change the filled flag; use MarkFilled after writing.
// Panics if the buffer has been closed.
func (b *Buffer) Bytes() []byte {
	return b.data()
}

// Len returns the capacity.
func (b *Buffer) Len() int {
	return len(b.mem.data)
}

// Empty reports whether the buffer holds no meaningful content.
func (b *Buffer) Empty() bool {
	return !b.filled
}

// Locked reports whether the storage is pinned in RAM.
func (b *Buffer) Locked() bool {
	return b.mem.locked
}

// MarkFilled records the outcome of a fill routine that wrote through Bytes.
// A true flag marks the buffer filled, a false flag leaves it untouched.
// The flag is returned unchanged so fill routines can end with
// `return buf.MarkFilled(n == buf.Len())`.
func (b *Buffer) MarkFilled(ok bool) bool {
	if ok {
		b.filled = true
	}

	return ok
}

// Fill reads all N bytes from r in a single read. A read that delivers fewer
// bytes fails with ErrShortRead and leaves the buffer cleared. There is no
// retry.
func (b *Buffer) Fill(r io.Reader) error {
	data := b.data()

	n, err := r.Read(data)
	if n < len(data) {
		b.Clear()

		if err != nil {
			return fmt.Errorf("%w: got %d of %d bytes: %w", ErrShortRead, n, len(data), err)
		}

		return fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, n, len(data))
	}

	b.filled = true

	return nil
}

// Copy copies src into the buffer starting at offset, truncated to the space
// that remains. It returns the number of bytes copied, which is 0 when offset
// lies outside the buffer or src is empty. The source is left untouched.
func (b *Buffer) Copy(offset int, src []byte) int {
	data := b.data()

	if offset < 0 || offset >= len(data) || len(src) == 0 {
		return 0
	}

	count := copy(data[offset:], src)

	b.filled = true

	return count
}

// Assign moves the transfer into the buffer. min(N, len(src)) bytes are
// copied, the remainder of the buffer is zeroed and every byte of the source
// is zeroed afterwards, so the secret exists in exactly one place. It returns
// the number of bytes copied. An empty source leaves the buffer unchanged.
func (b *Buffer) Assign(transfer Transfer) int {
	data := b.data()

	if len(transfer.src) == 0 {
		return 0
	}

	count := copy(data, transfer.src)
	Zero(data[count:])
	Zero(transfer.src)

	b.filled = true

	return count
}

// Set copies content and filled flag from other, which must have the same capacity.
func (b *Buffer) Set(other *Buffer) error {
	if other == b {
		return nil
	}

	if other.Len() != b.Len() {
		return fmt.Errorf("%w: %d and %d", ErrSizeMismatch, b.Len(), other.Len())
	}

	copy(b.data(), other.data())

	b.filled = other.filled

	return nil
}

// Combine applies op byte by byte with other in place. Both buffers must have
// the same capacity. Combining a buffer with itself is a no-op.
func (b *Buffer) Combine(other *Buffer, op Op) error {
	if other == b {
		return nil
	}

	if other.Len() != b.Len() {
		return fmt.Errorf("%w: %d and %d", ErrSizeMismatch, b.Len(), other.Len())
	}

	dst, src := b.data(), other.data()

	switch op {
	case OpXor:
		for i := range dst {
			dst[i] ^= src[i]
		}
	case OpAnd:
		for i := range dst {
			dst[i] &= src[i]
		}
	case OpOr:
		for i := range dst {
			dst[i] |= src[i]
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownOp, op)
	}

	return nil
}

// Xor is Combine with OpXor.
func (b *Buffer) Xor(other *Buffer) error { return b.Combine(other, OpXor) }

// And is Combine with OpAnd.
func (b *Buffer) And(other *Buffer) error { return b.Combine(other, OpAnd) }

// Or is Combine with OpOr.
func (b *Buffer) Or(other *Buffer) error { return b.Combine(other, OpOr) }

// Hex returns the content as a lowercase hex string of length 2N.
func (b *Buffer) Hex() string {
	return hex.EncodeToString(b.data())
}

// HexUpper returns the content as an uppercase hex string of length 2N.
func (b *Buffer) HexUpper() string {
	return strings.ToUpper(b.Hex())
}

// Clear zeroes the storage and marks the buffer empty. It is idempotent.
func (b *Buffer) Clear() {
	Zero(b.data())

	b.filled = false
}

// Equal reports whether both buffers have the same filled flag and the same
// content. The content comparison always inspects every byte.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == b {
		return true
	}

	if other == nil || other.Len() != b.Len() {
		return false
	}

	sameContent := subtle.ConstantTimeCompare(b.data(), other.data()) == 1

	return b.filled == other.filled && sameContent
}

// Close zeroes the storage and releases it. Close is idempotent; any access
// to the content after Close panics.
func (b *Buffer) Close() error {
	if b.closed {
		return nil
	}

	Zero(b.mem.data)

	b.closed = true
	b.filled = false

	runtime.SetFinalizer(b, nil)

	if err := b.mem.release(); err != nil {
		return fmt.Errorf("releasing buffer: %w", err)
	}

	return nil
}

// String describes the buffer without revealing its content.
func (b *Buffer) String() string {
	return fmt.Sprintf("secure.Buffer{size: %d, filled: %t}", b.Len(), b.filled)
}

// GoString describes the buffer without revealing its content.
func (b *Buffer) GoString() string {
	return b.String()
}
