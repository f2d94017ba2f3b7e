package encryption

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/idelchi/minicrypt/pkg/minicrypt"
)

// Envelope layout:
//
//	magic "MCRY" | version | flags | mode | key size | rounds (u32 BE) | salt (16) | iv (16)
//	body
//	HMAC-SHA256(mac key, header || body)
const (
	envelopeMagic   = "MCRY"
	envelopeVersion = byte(1)
	envelopeTagSize = minicrypt.SHA256Size

	envelopeFlagExec = 0x01

	// MaxRounds bounds the PBKDF2 work a header may demand.
	MaxRounds = 50_000_000
)

const envelopeHeaderSize = len(envelopeMagic) + 4 + 4 + minicrypt.SaltSize + minicrypt.AESBlockSize

type envelope struct {
	mode    CipherMode
	exec    bool
	keySize minicrypt.KeySize
	rounds  uint32
	salt    [minicrypt.SaltSize]byte
	iv      [minicrypt.AESBlockSize]byte
}

func (e *envelope) marshal() []byte {
	header := make([]byte, 0, envelopeHeaderSize)
	header = append(header, envelopeMagic...)

	var flags byte

	if e.exec {
		flags |= envelopeFlagExec
	}

	header = append(header, envelopeVersion, flags, byte(e.mode), byte(e.keySize))
	header = binary.BigEndian.AppendUint32(header, e.rounds)
	header = append(header, e.salt[:]...)
	header = append(header, e.iv[:]...)

	return header
}

func parseEnvelope(header []byte) (*envelope, error) {
	if len(header) != envelopeHeaderSize {
		return nil, fmt.Errorf("%w: envelope header too short", ErrProcessing)
	}

	if !bytes.Equal(header[:len(envelopeMagic)], []byte(envelopeMagic)) {
		return nil, fmt.Errorf("%w: invalid envelope magic", ErrProcessing)
	}

	rest := header[len(envelopeMagic):]

	if version := rest[0]; version != envelopeVersion {
		return nil, fmt.Errorf("%w: unsupported envelope version %d", ErrProcessing, version)
	}

	e := &envelope{
		exec:    rest[1]&envelopeFlagExec != 0,
		mode:    CipherMode(rest[2]),
		keySize: minicrypt.KeySize(rest[3]),
		rounds:  binary.BigEndian.Uint32(rest[4:]),
	}

	switch e.mode {
	case ModeCBC, ModeCTR:
	default:
		return nil, fmt.Errorf("%w: unsupported envelope mode %d", ErrProcessing, e.mode)
	}

	if !e.keySize.Valid() {
		return nil, fmt.Errorf("%w: unsupported key size %d", ErrProcessing, e.keySize)
	}

	if e.rounds == 0 || e.rounds > MaxRounds {
		return nil, fmt.Errorf("%w: rounds %d out of range", ErrProcessing, e.rounds)
	}

	rest = rest[8:]
	copy(e.salt[:], rest)
	copy(e.iv[:], rest[minicrypt.SaltSize:])

	return e, nil
}
