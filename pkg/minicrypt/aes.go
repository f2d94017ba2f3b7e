package minicrypt

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	"github.com/idelchi/minicrypt/pkg/secure"
)

// KeySize is an AES key size class in bytes.
type KeySize int

const (
	AES128 KeySize = 16
	AES192 KeySize = 24
	AES256 KeySize = 32
)

func (k KeySize) String() string {
	switch k {
	case AES128, AES192, AES256:
		return fmt.Sprintf("AES-%d", int(k)*8)
	default:
		return fmt.Sprintf("KeySize(%d)", int(k))
	}
}

// Valid reports whether k is a supported key size.
func (k KeySize) Valid() bool {
	return k == AES128 || k == AES192 || k == AES256
}

func (k KeySize) rounds() int {
	return int(k)/4 + 6
}

const maxScheduleWords = 4 * (14 + 1)

// AES holds an expanded key schedule plus CBC and CTR chaining state.
// It implements cipher.Block.
type AES struct {
	schedule [maxScheduleWords]uint32
	rounds   int
	size     KeySize

	iv      [AESBlockSize]byte
	counter [AESBlockSize]byte
	stream  [AESBlockSize]byte
	used    int

	ready bool
}

var _ cipher.Block = (*AES)(nil)

// NewAES sets up a cipher sized by len(key). iv may be nil.
func NewAES(key, iv []byte) (*AES, error) {
	c := new(AES)
	if err := c.Setup(key, KeySize(len(key)), iv); err != nil {
		return nil, err
	}

	return c, nil
}

// Setup expands key and seeds the CBC chain and CTR counter from iv
// (all zeros when iv is nil).
func (c *AES) Setup(key []byte, size KeySize, iv []byte) error {
	if key == nil || !size.Valid() || len(key) < int(size) {
		return fmt.Errorf("%w: %d bytes for %v", ErrInvalidKeySize, len(key), size)
	}

	if err := c.SetIV(iv); err != nil {
		return err
	}

	c.size = size
	c.rounds = size.rounds()
	c.expand(key[:size])
	c.ready = true

	return nil
}

// SetIV reseeds the CBC chain and the CTR counter and drops buffered keystream.
func (c *AES) SetIV(iv []byte) error {
	if iv != nil && len(iv) != AESBlockSize {
		return fmt.Errorf("%w: %d bytes", ErrInvalidIVSize, len(iv))
	}

	clear(c.iv[:])
	copy(c.iv[:], iv)
	c.counter = c.iv
	secure.Zero(c.stream[:])
	c.used = AESBlockSize

	return nil
}

// KeySize returns the configured key size.
func (c *AES) KeySize() KeySize { return c.size }

func (c *AES) expand(key []byte) {
	nk := len(key) / 4
	total := 4 * (c.rounds + 1)

	for i := range nk {
		c.schedule[i] = binary.BigEndian.Uint32(key[4*i:])
	}

	for i := nk; i < total; i++ {
		t := c.schedule[i-1]

		switch {
		case i%nk == 0:
			t = subWord(t<<8|t>>24) ^ uint32(rcon[i/nk-1])<<24
		case nk > 6 && i%nk == 4:
			t = subWord(t)
		}

		c.schedule[i] = c.schedule[i-nk] ^ t
	}

	for i := total; i < maxScheduleWords; i++ {
		c.schedule[i] = 0
	}
}

func subWord(w uint32) uint32 {
	return uint32(sbox[w>>24])<<24 |
		uint32(sbox[w>>16&0xff])<<16 |
		uint32(sbox[w>>8&0xff])<<8 |
		uint32(sbox[w&0xff])
}

// BlockSize returns AESBlockSize.
func (c *AES) BlockSize() int { return AESBlockSize }

// Encrypt is EncryptBlock.
func (c *AES) Encrypt(dst, src []byte) { c.EncryptBlock(dst, src) }

// Decrypt is DecryptBlock.
func (c *AES) Decrypt(dst, src []byte) { c.DecryptBlock(dst, src) }

// EncryptBlock encrypts one 16-byte block. dst and src may overlap entirely.
// It panics if either is shorter than a block or the cipher is not set up.
func (c *AES) EncryptBlock(dst, src []byte) {
	c.check(dst, src)

	var s [AESBlockSize]byte

	copy(s[:], src)
	c.addRoundKey(&s, 0)

	for r := 1; r < c.rounds; r++ {
		subBytes(&s, &sbox)
		shiftRows(&s)
		mixColumns(&s)
		c.addRoundKey(&s, r)
	}

	subBytes(&s, &sbox)
	shiftRows(&s)
	c.addRoundKey(&s, c.rounds)

	copy(dst, s[:])
	secure.Zero(s[:])
}

// DecryptBlock decrypts one 16-byte block. dst and src may overlap entirely.
func (c *AES) DecryptBlock(dst, src []byte) {
	c.check(dst, src)

	var s [AESBlockSize]byte

	copy(s[:], src)
	c.addRoundKey(&s, c.rounds)

	for r := c.rounds - 1; r > 0; r-- {
		invShiftRows(&s)
		subBytes(&s, &invSbox)
		c.addRoundKey(&s, r)
		invMixColumns(&s)
	}

	invShiftRows(&s)
	subBytes(&s, &invSbox)
	c.addRoundKey(&s, 0)

	copy(dst, s[:])
	secure.Zero(s[:])
}

func (c *AES) check(dst, src []byte) {
	if !c.ready {
		panic("minicrypt: AES used before Setup")
	}

	if len(src) < AESBlockSize || len(dst) < AESBlockSize {
		panic("minicrypt: input not full block")
	}
}

// Wipe zeroes the key schedule and chaining state. The cipher must be set up
// again before use.
func (c *AES) Wipe() {
	secure.ZeroWords(c.schedule[:])
	secure.ZeroAll(c.iv[:], c.counter[:], c.stream[:])

	c.used = AESBlockSize
	c.rounds = 0
	c.ready = false
}

// The state is column-major: s[r+4*c] is row r of column c.

func (c *AES) addRoundKey(s *[AESBlockSize]byte, round int) {
	for col := range 4 {
		w := c.schedule[4*round+col]
		s[4*col] ^= byte(w >> 24)
		s[4*col+1] ^= byte(w >> 16)
		s[4*col+2] ^= byte(w >> 8)
		s[4*col+3] ^= byte(w)
	}
}

func subBytes(s *[AESBlockSize]byte, box *[256]byte) {
	for i, v := range s {
		s[i] = box[v]
	}
}

func shiftRows(s *[AESBlockSize]byte) {
	t := *s

	for r := 1; r < 4; r++ {
		for col := range 4 {
			s[r+4*col] = t[r+4*((col+r)%4)]
		}
	}
}

func invShiftRows(s *[AESBlockSize]byte) {
	t := *s

	for r := 1; r < 4; r++ {
		for col := range 4 {
			s[r+4*((col+r)%4)] = t[r+4*col]
		}
	}
}

func mixColumns(s *[AESBlockSize]byte) {
	for col := range 4 {
		a0, a1, a2, a3 := s[4*col], s[4*col+1], s[4*col+2], s[4*col+3]

		s[4*col] = xtime(a0) ^ xtime(a1) ^ a1 ^ a2 ^ a3
		s[4*col+1] = a0 ^ xtime(a1) ^ xtime(a2) ^ a2 ^ a3
		s[4*col+2] = a0 ^ a1 ^ xtime(a2) ^ xtime(a3) ^ a3
		s[4*col+3] = xtime(a0) ^ a0 ^ a1 ^ a2 ^ xtime(a3)
	}
}

func invMixColumns(s *[AESBlockSize]byte) {
	for col := range 4 {
		a0, a1, a2, a3 := s[4*col], s[4*col+1], s[4*col+2], s[4*col+3]

		s[4*col] = gmul(a0, 14) ^ gmul(a1, 11) ^ gmul(a2, 13) ^ gmul(a3, 9)
		s[4*col+1] = gmul(a0, 9) ^ gmul(a1, 14) ^ gmul(a2, 11) ^ gmul(a3, 13)
		s[4*col+2] = gmul(a0, 13) ^ gmul(a1, 9) ^ gmul(a2, 14) ^ gmul(a3, 11)
		s[4*col+3] = gmul(a0, 11) ^ gmul(a1, 13) ^ gmul(a2, 9) ^ gmul(a3, 14)
	}
}
