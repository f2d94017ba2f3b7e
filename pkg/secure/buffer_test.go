package secure_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/minicrypt/pkg/secure"
)

func newBuffer(t *testing.T, size int) *secure.Buffer {
	t.Helper()

	buffer, err := secure.New(size)
	require.NoError(t, err)

	t.Cleanup(func() { _ = buffer.Close() })

	return buffer
}

func TestNew(t *testing.T) {
	t.Parallel()

	buffer := newBuffer(t, 32)

	assert.Equal(t, 32, buffer.Len())
	assert.True(t, buffer.Empty())
	assert.Equal(t, make([]byte, 32), buffer.Bytes())
}

func TestNew_InvalidSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1} {
		_, err := secure.New(size)
		require.ErrorIs(t, err, secure.ErrInvalidSize)
	}

	assert.Panics(t, func() { secure.MustNew(0) })
}

func TestFill(t *testing.T) {
	t.Parallel()

	buffer := newBuffer(t, 8)

	require.NoError(t, buffer.Fill(bytes.NewReader([]byte("0123456789"))))

	assert.False(t, buffer.Empty())
	assert.Equal(t, []byte("01234567"), buffer.Bytes())
}

func TestFill_ShortRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		reader io.Reader
	}{
		{name: "short source", reader: bytes.NewReader([]byte("abc"))},
		{name: "one byte per read", reader: iotest.OneByteReader(bytes.NewReader(make([]byte, 16)))},
		{name: "failing source", reader: iotest.ErrReader(errors.New("device gone"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buffer := newBuffer(t, 8)

			err := buffer.Fill(tt.reader)
			require.ErrorIs(t, err, secure.ErrShortRead)
			assert.True(t, buffer.Empty())
			assert.Equal(t, make([]byte, 8), buffer.Bytes())
		})
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	buffer := newBuffer(t, 16)
	buffer.Copy(0, []byte("secret material!"))
	require.False(t, buffer.Empty())

	buffer.Clear()

	assert.True(t, buffer.Empty())
	assert.Equal(t, make([]byte, 16), buffer.Bytes())

	buffer.Clear()
	assert.True(t, buffer.Empty())
}

func TestCopy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		offset int
		src    string
		want   int
		after  string
	}{
		{name: "fits", offset: 0, src: "abcd", want: 4, after: "abcd\x00\x00\x00\x00"},
		{name: "at offset", offset: 2, src: "xy", want: 2, after: "\x00\x00xy\x00\x00\x00\x00"},
		{name: "truncated", offset: 6, src: "wxyz", want: 2, after: "\x00\x00\x00\x00\x00\x00wx"},
		{name: "offset at capacity", offset: 8, src: "a", want: 0, after: strings.Repeat("\x00", 8)},
		{name: "negative offset", offset: -1, src: "a", want: 0, after: strings.Repeat("\x00", 8)},
		{name: "empty source", offset: 0, src: "", want: 0, after: strings.Repeat("\x00", 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buffer := newBuffer(t, 8)
			src := []byte(tt.src)

			assert.Equal(t, tt.want, buffer.Copy(tt.offset, src))
			assert.Equal(t, []byte(tt.after), buffer.Bytes())
			assert.Equal(t, tt.want == 0, buffer.Empty())
			assert.Equal(t, tt.src, string(src), "Copy must not touch the source")
		})
	}
}

func TestAssign_ZeroesSource(t *testing.T) {
	t.Parallel()

	password := []byte("correct horse battery staple")
	original := string(password)

	buffer := newBuffer(t, 16)

	assert.Equal(t, 16, buffer.Assign(secure.Move(password)))
	assert.Equal(t, original[:16], string(buffer.Bytes()))
	assert.False(t, buffer.Empty())
	assert.Equal(t, make([]byte, len(password)), password)
}

func TestAssign_ShortSourceZeroesTail(t *testing.T) {
	t.Parallel()

	buffer := newBuffer(t, 8)
	buffer.Copy(0, []byte("XXXXXXXX"))

	source := []byte("abc")

	assert.Equal(t, 3, buffer.Assign(secure.Move(source)))
	assert.Equal(t, []byte("abc\x00\x00\x00\x00\x00"), buffer.Bytes())
	assert.Equal(t, []byte{0, 0, 0}, source)
}

func TestNewFrom(t *testing.T) {
	t.Parallel()

	source := []byte("0123456789abcdef")

	buffer, err := secure.NewFrom(16, secure.Move(source))
	require.NoError(t, err)

	defer buffer.Close()

	assert.Equal(t, "0123456789abcdef", string(buffer.Bytes()))
	assert.Equal(t, make([]byte, 16), source)

	leftover := []byte("still zeroed")

	_, err = secure.NewFrom(0, secure.Move(leftover))
	require.ErrorIs(t, err, secure.ErrInvalidSize)
	assert.Equal(t, make([]byte, len(leftover)), leftover)
}

func TestSet(t *testing.T) {
	t.Parallel()

	source := newBuffer(t, 4)
	source.Copy(0, []byte{1, 2, 3, 4})

	target := newBuffer(t, 4)
	require.NoError(t, target.Set(source))
	assert.True(t, target.Equal(source))

	require.NoError(t, target.Set(target))

	require.ErrorIs(t, target.Set(newBuffer(t, 5)), secure.ErrSizeMismatch)
}

func TestCombine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   secure.Op
		want []byte
	}{
		{op: secure.OpXor, want: []byte{0x0f ^ 0x3c, 0xf0 ^ 0x3c, 0xff ^ 0x3c, 0x00 ^ 0x3c}},
		{op: secure.OpAnd, want: []byte{0x0f & 0x3c, 0xf0 & 0x3c, 0xff & 0x3c, 0x00}},
		{op: secure.OpOr, want: []byte{0x0f | 0x3c, 0xf0 | 0x3c, 0xff, 0x3c}},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			t.Parallel()

			left := newBuffer(t, 4)
			left.Copy(0, []byte{0x0f, 0xf0, 0xff, 0x00})

			right := newBuffer(t, 4)
			right.Copy(0, []byte{0x3c, 0x3c, 0x3c, 0x3c})

			require.NoError(t, left.Combine(right, tt.op))
			assert.Equal(t, tt.want, left.Bytes())
			assert.Equal(t, []byte{0x3c, 0x3c, 0x3c, 0x3c}, right.Bytes())
		})
	}
}

func TestCombine_Self(t *testing.T) {
	t.Parallel()

	buffer := newBuffer(t, 4)
	buffer.Copy(0, []byte{1, 2, 3, 4})

	require.NoError(t, buffer.Xor(buffer))
	assert.Equal(t, []byte{1, 2, 3, 4}, buffer.Bytes())
}

func TestCombine_Errors(t *testing.T) {
	t.Parallel()

	left := newBuffer(t, 4)

	require.ErrorIs(t, left.And(newBuffer(t, 8)), secure.ErrSizeMismatch)
	require.ErrorIs(t, left.Combine(newBuffer(t, 4), secure.Op(42)), secure.ErrUnknownOp)
}

func TestHex(t *testing.T) {
	t.Parallel()

	buffer := newBuffer(t, 4)
	buffer.Copy(0, []byte{0xde, 0xad, 0xbe, 0xef})

	assert.Equal(t, "deadbeef", buffer.Hex())
	assert.Equal(t, "DEADBEEF", buffer.HexUpper())
	assert.Len(t, buffer.Hex(), 2*buffer.Len())
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, buffer.Bytes())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	left := newBuffer(t, 4)
	right := newBuffer(t, 4)

	assert.True(t, left.Equal(right), "two empty buffers")
	assert.True(t, left.Equal(left))
	assert.False(t, left.Equal(nil))
	assert.False(t, left.Equal(newBuffer(t, 5)))

	left.MarkFilled(true)
	assert.False(t, left.Equal(right), "flag differs, content equal")

	right.MarkFilled(true)
	assert.True(t, left.Equal(right))

	right.Bytes()[3] = 1
	assert.False(t, left.Equal(right), "content differs in last byte")
}

func TestMarkFilled(t *testing.T) {
	t.Parallel()

	buffer := newBuffer(t, 4)

	assert.False(t, buffer.MarkFilled(false))
	assert.True(t, buffer.Empty())
	assert.True(t, buffer.MarkFilled(true))
	assert.False(t, buffer.Empty())
	assert.False(t, buffer.MarkFilled(false))
	assert.False(t, buffer.Empty(), "a failed fill does not discard earlier content")
}

func TestClose(t *testing.T) {
	t.Parallel()

	buffer, err := secure.New(16)
	require.NoError(t, err)

	buffer.Copy(0, []byte("to be destroyed"))

	require.NoError(t, buffer.Close())
	require.NoError(t, buffer.Close())

	assert.True(t, buffer.Empty())
	assert.Panics(t, func() { buffer.Bytes() })
}

func TestString_DoesNotLeak(t *testing.T) {
	t.Parallel()

	buffer := newBuffer(t, 6)
	buffer.Copy(0, []byte("hunter"))

	assert.NotContains(t, buffer.String(), "hunter")
	assert.NotContains(t, buffer.GoString(), "hunter")
	assert.Equal(t, "secure.Buffer{size: 6, filled: true}", buffer.String())
}

func TestZero(t *testing.T) {
	t.Parallel()

	first := []byte{1, 2, 3}
	second := []byte("abc")

	secure.ZeroAll(first, second, nil)

	assert.Equal(t, []byte{0, 0, 0}, first)
	assert.Equal(t, []byte{0, 0, 0}, second)
}
