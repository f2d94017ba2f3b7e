package crypto

import (
	"encoding/binary"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/idelchi/minicrypt/pkg/secure"
)

// SaltSize is the size in bytes of a salt from MakeSalt.
const SaltSize = 8

// Target is a fixed-size secret container RandomKey can fill.
// *secure.Buffer and *secure.Guarded satisfy it.
type Target interface {
	Bytes() []byte
	Clear()
	MarkFilled(ok bool) bool
}

// Facade composes a Backend into the high-level operations.
type Facade struct {
	backend Backend
	log     *zap.Logger
}

// Option configures a Facade.
type Option func(*Facade)

// WithLogger sets the logger used for warnings. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(f *Facade) {
		if log != nil {
			f.log = log
		}
	}
}

// New returns a facade over backend.
func New(backend Backend, opts ...Option) *Facade {
	f := &Facade{
		backend: backend,
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Backend returns the backend in use.
func (f *Facade) Backend() Backend {
	return f.backend
}

// RandomKey clears target, fills all of it with random bytes and marks it
// filled. On failure the target is left cleared.
func (f *Facade) RandomKey(target Target) error {
	target.Clear()

	p := target.Bytes()

	n, err := f.backend.Random(p)
	if err == nil && n == len(p) {
		target.MarkFilled(true)

		return nil
	}

	target.Clear()

	if err != nil {
		return fmt.Errorf("%w: got %d of %d bytes: %w", ErrShortRead, n, len(p), err)
	}

	return fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, n, len(p))
}

// MakeSalt returns SaltSize random bytes. It does not fail: when randomness
// or secure memory is unavailable the returned salt is empty and a warning
// is logged.
func (f *Facade) MakeSalt() *secure.Buffer {
	return f.makeSalt(secure.New)
}

func (f *Facade) makeSalt(alloc func(size int) (*secure.Buffer, error)) *secure.Buffer {
	salt, err := alloc(SaltSize)
	if err != nil {
		f.log.Warn("salt allocation failed, returning empty salt", zap.Error(err))

		return new(secure.Buffer)
	}

	if err := f.RandomKey(salt); err != nil {
		f.log.Warn("salt generation failed, returning empty salt",
			zap.String("backend", f.backend.Name()),
			zap.Error(err),
		)
	}

	return salt
}

// DigestOption configures HashDigest and ToU64.
type DigestOption func(*digestOptions)

type digestOptions struct {
	algorithm Algorithm
	salt      []byte
}

// WithAlgorithm selects the digest algorithm. SHA256 is the default.
func WithAlgorithm(alg Algorithm) DigestOption {
	return func(o *digestOptions) { o.algorithm = alg }
}

// WithSalt prepends salt to the digested input.
func WithSalt(salt []byte) DigestOption {
	return func(o *digestOptions) { o.salt = salt }
}

// HashDigest returns the digest of salt || input.
func (f *Facade) HashDigest(input []byte, opts ...DigestOption) (*secure.Buffer, error) {
	o := digestOptions{algorithm: SHA256}
	for _, opt := range opts {
		opt(&o)
	}

	h, err := f.backend.NewHash(o.algorithm)
	if err != nil {
		return nil, err
	}

	h.Write(o.salt) //nolint:errcheck // hash.Hash writes never fail
	h.Write(input)  //nolint:errcheck // hash.Hash writes never fail

	return f.seal(h.Sum(nil))
}

// HmacDigest returns HMAC-SHA256(key, input).
func (f *Facade) HmacDigest(key, input []byte) (*secure.Buffer, error) {
	tag, err := f.backend.HMAC(key, input)
	if err != nil {
		return nil, fmt.Errorf("hmac with %s backend: %w", f.backend.Name(), err)
	}

	return f.seal(tag)
}

// DeriveKey returns size bytes of PBKDF2-HMAC-SHA256(password, salt, rounds).
func (f *Facade) DeriveKey(password, salt []byte, rounds, size int) (*secure.Buffer, error) {
	key, err := secure.New(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	if err := f.backend.DeriveKey(password, salt, rounds, key.Bytes()); err != nil {
		key.Close()

		return nil, fmt.Errorf("deriving key: %w", err)
	}

	key.MarkFilled(true)

	return key, nil
}

// ToU64 reads the first 8 digest bytes of input as a big-endian integer.
// It returns math.MaxUint64 when the digest cannot be computed.
func (f *Facade) ToU64(input []byte, opts ...DigestOption) uint64 {
	digest, err := f.HashDigest(input, opts...)
	if err != nil {
		f.log.Debug("fingerprint failed", zap.Error(err))

		return math.MaxUint64
	}

	defer digest.Close()

	if digest.Len() < 8 { //nolint:mnd // one uint64
		return math.MaxUint64
	}

	return binary.BigEndian.Uint64(digest.Bytes())
}

// Hex renders b as lowercase hex. A nil buffer renders as "".
func (f *Facade) Hex(b *secure.Buffer) string {
	if b == nil {
		return ""
	}

	return b.Hex()
}

// seal moves raw into a new secure buffer, zeroing raw.
func (f *Facade) seal(raw []byte) (*secure.Buffer, error) {
	out, err := secure.NewFrom(len(raw), secure.Move(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: empty result from %s backend", ErrInvalidSize, f.backend.Name())
	}

	return out, nil
}
