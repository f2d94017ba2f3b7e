package minicrypt

import (
	"encoding/binary"
	"hash"
	"math/bits"

	"github.com/idelchi/minicrypt/pkg/secure"
)

var md5Init = [4]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476}

var md5Shift = [64]int{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

var md5K = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee, 0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be, 0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa, 0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed, 0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c, 0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05, 0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039, 0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1, 0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

// MD5 is a streaming MD5 context. MD5 is broken for collision resistance and
// is offered for checksums and interoperability only.
type MD5 struct {
	state [4]uint32
	engine
}

var _ hash.Hash = (*MD5)(nil)

// NewMD5 returns an initialized MD5 context.
func NewMD5() *MD5 {
	d := new(MD5)
	d.Init()

	return d
}

func (d *MD5) Init() {
	d.state = md5Init
	d.engine.reset()
}

func (d *MD5) Update(p []byte) error {
	if d.finalized {
		return ErrFinalized
	}

	d.write(p, d.compress)

	return nil
}

// Final writes the 16-byte digest (little-endian state words) and wipes the context.
func (d *MD5) Final(out []byte) error {
	if d.finalized {
		return ErrFinalized
	}

	if len(out) < MD5Size {
		return ErrShortBuffer
	}

	d.pad(d.compress, binary.LittleEndian)

	for i, s := range d.state {
		binary.LittleEndian.PutUint32(out[4*i:], s)
	}

	d.state = [4]uint32{}
	d.wipe()

	return nil
}

func (d *MD5) compress(block *[HashBlockSize]byte) {
	var m [16]uint32

	for i := range 16 {
		m[i] = binary.LittleEndian.Uint32(block[4*i:])
	}

	a, b, c, d0 := d.state[0], d.state[1], d.state[2], d.state[3]

	for i := range 64 {
		var (
			f uint32
			g int
		)

		switch {
		case i < 16:
			f, g = (b&c)|(^b&d0), i
		case i < 32:
			f, g = (d0&b)|(^d0&c), (5*i+1)%16
		case i < 48:
			f, g = b^c^d0, (3*i+5)%16
		default:
			f, g = c^(b|^d0), (7*i)%16
		}

		f += a + md5K[i] + m[g]
		a, d0, c = d0, c, b
		b += bits.RotateLeft32(f, md5Shift[i])
	}

	d.state[0] += a
	d.state[1] += b
	d.state[2] += c
	d.state[3] += d0

	clear(m[:])
}

func (d *MD5) Write(p []byte) (int, error) {
	if err := d.Update(p); err != nil {
		return 0, err
	}

	return len(p), nil
}

func (d *MD5) Sum(b []byte) []byte {
	clone := *d

	var out [MD5Size]byte
	if err := clone.Final(out[:]); err != nil {
		panic("minicrypt: " + err.Error())
	}

	b = append(b, out[:]...)
	secure.Zero(out[:])

	return b
}

func (d *MD5) Reset()         { d.Init() }
func (d *MD5) Size() int      { return MD5Size }
func (d *MD5) BlockSize() int { return HashBlockSize }

// MD5Digest hashes salt (when not empty) followed by data.
func MD5Digest(data, salt []byte) [MD5Size]byte {
	var (
		d   MD5
		out [MD5Size]byte
	)

	d.Init()
	d.write(salt, d.compress)
	d.write(data, d.compress)
	_ = d.Final(out[:]) //nolint:errcheck // fresh context, sized output

	return out
}
