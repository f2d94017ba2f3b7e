package encryption

import (
	"fmt"

	"github.com/idelchi/minicrypt/pkg/minicrypt"
	"github.com/idelchi/minicrypt/pkg/secure"
)

const macKeySize = minicrypt.SHA256Size

// fileKeys is the PBKDF2 output for one file: the AES key followed by the MAC key.
type fileKeys struct {
	material *secure.Buffer
	encSize  int
}

func (p *Processor) deriveKeys(e *envelope) (*fileKeys, error) {
	size := int(e.keySize) + macKeySize

	material, err := p.facade.DeriveKey(p.password.Bytes(), e.salt[:], int(e.rounds), size)
	if err != nil {
		return nil, fmt.Errorf("deriving file keys: %w", err)
	}

	return &fileKeys{material: material, encSize: int(e.keySize)}, nil
}

func (k *fileKeys) enc() []byte { return k.material.Bytes()[:k.encSize] }
func (k *fileKeys) mac() []byte { return k.material.Bytes()[k.encSize:] }

func (k *fileKeys) Close() error { return k.material.Close() }
