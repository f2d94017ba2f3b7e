package encryption

import "fmt"

// CipherMode is the body encryption mode recorded in the envelope.
type CipherMode byte

const (
	// ModeCBC is AES-CBC with PKCS#7 padding.
	ModeCBC CipherMode = 0x01
	// ModeCTR is AES-CTR; the ciphertext has the plaintext's length.
	ModeCTR CipherMode = 0x02
)

// ParseMode maps "cbc" or "ctr" to a CipherMode.
func ParseMode(name string) (CipherMode, error) {
	switch name {
	case "cbc":
		return ModeCBC, nil
	case "ctr":
		return ModeCTR, nil
	default:
		return 0, fmt.Errorf("unknown cipher mode %q", name)
	}
}

func (m CipherMode) String() string {
	switch m {
	case ModeCBC:
		return "cbc"
	case ModeCTR:
		return "ctr"
	default:
		return fmt.Sprintf("mode(%d)", byte(m))
	}
}
