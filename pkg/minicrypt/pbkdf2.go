package minicrypt

import (
	"encoding/binary"
	"math"

	"github.com/idelchi/minicrypt/pkg/secure"
)

// PBKDF2 fills out with PBKDF2-HMAC-SHA256(password, salt, rounds).
// Rounds below 1 are treated as 1; an empty out is a no-op.
func PBKDF2(password, salt []byte, rounds int, out []byte) error {
	if len(out) == 0 {
		return nil
	}

	rounds = max(rounds, 1)

	blocks := (len(out) + SHA256Size - 1) / SHA256Size
	if uint64(blocks) > math.MaxUint32 {
		return ErrOutputTooLong
	}

	mac := NewHMAC(password)
	defer mac.Wipe()

	indexed := make([]byte, len(salt)+4)
	copy(indexed, salt)

	var u, t [SHA256Size]byte

	defer secure.ZeroAll(u[:], t[:], indexed)

	for i := 1; i <= blocks; i++ {
		binary.BigEndian.PutUint32(indexed[len(salt):], uint32(i)) //nolint:gosec // bounded above

		mac.Reset()
		mac.write(indexed)
		mac.sumInto(&u)

		t = u

		for range rounds - 1 {
			mac.Reset()
			mac.write(u[:])
			mac.sumInto(&u)

			for k := range t {
				t[k] ^= u[k]
			}
		}

		copy(out[(i-1)*SHA256Size:], t[:])
	}

	return nil
}
