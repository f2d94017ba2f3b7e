package minicrypt_test

import (
	"bytes"
	"crypto/md5" //nolint:gosec // reference implementation
	"crypto/sha1" //nolint:gosec // reference implementation
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/minicrypt/pkg/minicrypt"
)

type digest interface {
	hash.Hash
	Init()
	Update(p []byte) error
	Final(out []byte) error
}

var digests = []struct {
	name      string
	golden    string
	size      int
	new       func() digest
	reference func() hash.Hash
	oneShot   func(data, salt []byte) []byte
}{
	{
		name: "sha1", golden: "sha1", size: minicrypt.SHA1Size,
		new:       func() digest { return minicrypt.NewSHA1() },
		reference: sha1.New,
		oneShot: func(data, salt []byte) []byte {
			d := minicrypt.SHA1Digest(data, salt)

			return d[:]
		},
	},
	{
		name: "sha256", golden: "sha256", size: minicrypt.SHA256Size,
		new:       func() digest { return minicrypt.NewSHA256() },
		reference: sha256.New,
		oneShot: func(data, salt []byte) []byte {
			d := minicrypt.SHA256Digest(data, salt)

			return d[:]
		},
	},
	{
		name: "md5", golden: "md5", size: minicrypt.MD5Size,
		new:       func() digest { return minicrypt.NewMD5() },
		reference: md5.New,
		oneShot: func(data, salt []byte) []byte {
			d := minicrypt.MD5Digest(data, salt)

			return d[:]
		},
	},
}

func TestDigest_Golden(t *testing.T) {
	t.Parallel()

	for _, d := range digests {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()

			forEachVector(t, d.golden, func(t *testing.T, tc Case) {
				ctx := d.new()
				require.NoError(t, ctx.Update([]byte(tc.Input)))

				out := make([]byte, d.size)
				require.NoError(t, ctx.Final(out))
				assert.Equal(t, tc.Output, hex.EncodeToString(out))

				assert.Equal(t, tc.Output, hex.EncodeToString(d.oneShot([]byte(tc.Input), nil)))
			})
		})
	}
}

func TestDigest_MatchesStandardLibrary(t *testing.T) {
	t.Parallel()

	// Lengths around the 55/56/64 byte padding boundaries and multi-block input.
	lengths := []int{0, 1, 55, 56, 57, 63, 64, 65, 119, 120, 127, 128, 1000, 4099}

	for _, d := range digests {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()

			for _, n := range lengths {
				data := bytes.Repeat([]byte{byte(n), 0xa5, 0x3c}, n)[:n]

				ref := d.reference()
				ref.Write(data)

				ctx := d.new()
				ctx.Write(data)

				assert.Equal(t, ref.Sum(nil), ctx.Sum(nil), "length %d", n)
			}
		})
	}
}

func TestDigest_ChunkedEqualsOneShot(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("chunked input "), 40)

	for _, d := range digests {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()

			for _, chunk := range []int{1, 3, 63, 64, 65, 200} {
				ctx := d.new()

				for off := 0; off < len(data); off += chunk {
					require.NoError(t, ctx.Update(data[off:min(off+chunk, len(data))]))
				}

				out := make([]byte, d.size)
				require.NoError(t, ctx.Final(out))
				assert.Equal(t, d.oneShot(data, nil), out, "chunk %d", chunk)
			}
		})
	}
}

func TestDigest_Salt(t *testing.T) {
	t.Parallel()

	salt := []byte("0123456789abcdef")
	data := []byte("payload")

	for _, d := range digests {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()

			ref := d.reference()
			ref.Write(salt)
			ref.Write(data)

			assert.Equal(t, ref.Sum(nil), d.oneShot(data, salt))
			assert.Equal(t, d.oneShot(data, nil), d.oneShot(data, []byte{}))
		})
	}
}

func TestDigest_Lifecycle(t *testing.T) {
	t.Parallel()

	for _, d := range digests {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()

			ctx := d.new()
			require.NoError(t, ctx.Update([]byte("abc")))

			require.ErrorIs(t, ctx.Final(make([]byte, d.size-1)), minicrypt.ErrShortBuffer)

			first := make([]byte, d.size)
			require.NoError(t, ctx.Final(first))

			assert.ErrorIs(t, ctx.Final(make([]byte, d.size)), minicrypt.ErrFinalized)
			assert.ErrorIs(t, ctx.Update([]byte("x")), minicrypt.ErrFinalized)

			n, err := ctx.Write([]byte("x"))
			require.ErrorIs(t, err, minicrypt.ErrFinalized)
			assert.Zero(t, n)
			assert.Panics(t, func() { ctx.Sum(nil) })

			ctx.Init()
			require.NoError(t, ctx.Update([]byte("abc")))

			second := make([]byte, d.size)
			require.NoError(t, ctx.Final(second))
			assert.Equal(t, first, second)
		})
	}
}

func TestDigest_SumIsNonDestructive(t *testing.T) {
	t.Parallel()

	for _, d := range digests {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()

			ctx := d.new()
			ctx.Write([]byte("ab"))

			prefix := []byte("prefix")
			partial := ctx.Sum(prefix)
			assert.Equal(t, "prefix", string(partial[:len(prefix)]))
			assert.Equal(t, d.oneShot([]byte("ab"), nil), partial[len(prefix):])

			ctx.Write([]byte("c"))
			first := ctx.Sum(nil)
			second := ctx.Sum(make([]byte, 0, 64))
			assert.Equal(t, d.oneShot([]byte("abc"), nil), first)
			assert.Equal(t, first, second)

			ctx.Reset()
			assert.Equal(t, d.oneShot(nil, nil), ctx.Sum(nil))
			assert.Equal(t, d.size, ctx.Size())
			assert.Equal(t, minicrypt.HashBlockSize, ctx.BlockSize())
		})
	}
}
