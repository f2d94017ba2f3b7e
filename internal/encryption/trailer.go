package encryption

import (
	"errors"
	"fmt"
	"io"
)

// trailerReader passes a stream through while withholding its final n bytes,
// which become available from trailer once the source is exhausted.
type trailerReader struct {
	src  io.Reader
	n    int
	held []byte
	buf  []byte
	eof  bool
}

func newTrailerReader(src io.Reader, n int) *trailerReader {
	return &trailerReader{
		src:  src,
		n:    n,
		held: make([]byte, 0, n+defaultBufferSize),
		buf:  make([]byte, defaultBufferSize),
	}
}

func (t *trailerReader) Read(p []byte) (int, error) {
	for {
		if excess := len(t.held) - t.n; excess > 0 {
			k := copy(p, t.held[:excess])
			t.held = append(t.held[:0], t.held[k:]...)

			return k, nil
		}

		if t.eof {
			return 0, io.EOF
		}

		m, err := t.src.Read(t.buf)
		t.held = append(t.held, t.buf[:m]...)

		if errors.Is(err, io.EOF) {
			t.eof = true
		} else if err != nil {
			return 0, err //nolint:wrapcheck // passthrough reader
		}
	}
}

// trailer returns the withheld bytes. It must be called after Read returned io.EOF.
func (t *trailerReader) trailer() ([]byte, error) {
	if !t.eof || len(t.held) != t.n {
		return nil, fmt.Errorf("%w: authentication tag missing", ErrProcessing)
	}

	return t.held, nil
}
