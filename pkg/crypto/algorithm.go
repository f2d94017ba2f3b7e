package crypto

import (
	"fmt"
	"slices"

	"github.com/idelchi/minicrypt/pkg/minicrypt"
)

// Algorithm names a digest algorithm.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	SHA1   Algorithm = "sha1"
	MD5    Algorithm = "md5"
)

// Algorithms lists the supported digest algorithms, default first.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA1, MD5}
}

// ParseAlgorithm maps a name to an Algorithm. An empty name selects SHA256.
func ParseAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return SHA256, nil
	}

	alg := Algorithm(name)
	if !slices.Contains(Algorithms(), alg) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}

	return alg, nil
}

// Size returns the digest size in bytes, or 0 for an unknown algorithm.
func (a Algorithm) Size() int {
	switch a {
	case SHA256:
		return minicrypt.SHA256Size
	case SHA1:
		return minicrypt.SHA1Size
	case MD5:
		return minicrypt.MD5Size
	default:
		return 0
	}
}

func (a Algorithm) String() string {
	return string(a)
}
