package encryption

import (
	"sync"
)

const defaultBufferSize = 32 * 1024 // 32KB default buffer size

// bufferPool provides reusable byte slices for file I/O operations.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, defaultBufferSize)

		return &buf
	},
}

func getBuffer() *[]byte {
	buf, ok := bufferPool.Get().(*[]byte)
	if !ok {
		b := make([]byte, defaultBufferSize)

		return &b
	}

	return buf
}

// putBuffer zeroes buf before returning it: it held plaintext.
func putBuffer(buf *[]byte) {
	clear(*buf)
	bufferPool.Put(buf)
}
