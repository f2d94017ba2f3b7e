package secure

import (
	"encoding/hex"
	"fmt"

	"github.com/awnumar/memguard"
)

// Guarded holds a long-lived secret in a memguard locked buffer: guard pages
// around the data, a canary, and locking into RAM. It exposes the same fill
// surface as Buffer, so both can be handed to random key generation.
type Guarded struct {
	locked *memguard.LockedBuffer
	filled bool
}

// NewGuarded allocates an empty guarded buffer of the given size.
func NewGuarded(size int) (*Guarded, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	return &Guarded{locked: memguard.NewBuffer(size)}, nil
}

// Bytes returns the guarded storage itself. Panics once the buffer is closed.
func (g *Guarded) Bytes() []byte {
	if !g.locked.IsAlive() {
		panic("secure: access to closed guarded buffer")
	}

	return g.locked.Bytes()
}

// Len returns the capacity, or 0 after Close.
func (g *Guarded) Len() int {
	return g.locked.Size()
}

// Empty reports whether the buffer holds no meaningful content.
func (g *Guarded) Empty() bool {
	return !g.filled
}

// MarkFilled follows the same contract as Buffer.MarkFilled.
func (g *Guarded) MarkFilled(ok bool) bool {
	if ok {
		g.filled = true
	}

	return ok
}

// Clear wipes the content and marks the buffer empty.
func (g *Guarded) Clear() {
	if g.locked.IsAlive() {
		g.locked.Wipe()
	}

	g.filled = false
}

// Equal compares flag and content in constant time with respect to the content.
func (g *Guarded) Equal(other *Guarded) bool {
	if other == g {
		return true
	}

	if other == nil || other.Len() != g.Len() {
		return false
	}

	return g.filled == other.filled && g.locked.EqualTo(other.Bytes())
}

// Hex returns the content as a lowercase hex string.
func (g *Guarded) Hex() string {
	return hex.EncodeToString(g.Bytes())
}

// Close wipes and destroys the guarded memory. It is idempotent.
func (g *Guarded) Close() error {
	g.locked.Destroy()
	g.filled = false

	return nil
}

// String describes the buffer without revealing its content.
func (g *Guarded) String() string {
	return fmt.Sprintf("secure.Guarded{size: %d, filled: %t}", g.Len(), g.filled)
}
