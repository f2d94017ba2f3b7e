package random

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// drawBits is the width of the raw draws used by Uniform.
	drawBits = 54
	// drawSpace is the number of distinct values a draw can take.
	drawSpace = uint64(1) << drawBits
	drawMask  = drawSpace - 1
)

// Source is an open handle to the OS entropy source.
type Source struct {
	handle io.ReadCloser
	closed bool
}

// Open acquires the OS entropy source.
func Open() (*Source, error) {
	handle, err := openHandle()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	return &Source{handle: handle}, nil
}

// Fill performs a single read into p and returns the number of bytes
// obtained. Callers compare the result with len(p): anything less means the
// content must not be trusted. Fill returns 0 for an empty p or a closed source.
func (s *Source) Fill(p []byte) int {
	if s.closed || len(p) == 0 {
		return 0
	}

	// The short count is the failure signal; the error adds nothing callers act on.
	n, _ := s.handle.Read(p) //nolint:errcheck

	return max(n, 0)
}

// Read implements io.Reader with the same single-read semantics as Fill.
func (s *Source) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	n, err := s.handle.Read(p)
	if err != nil {
		return n, fmt.Errorf("reading random source: %w", err)
	}

	return n, nil
}

// Uniform returns an unbiased integer in [lo, hi].
//
// Draws are 54-bit values. Draws at or above the largest multiple of the range
// that fits the draw space are rejected and redrawn, which removes modulo bias
// exactly.
func (s *Source) Uniform(lo, hi uint64) (uint64, error) {
	if lo > hi {
		return 0, fmt.Errorf("%w: min %d > max %d", ErrInvalidRange, lo, hi)
	}

	span := hi - lo
	if span >= drawSpace {
		return 0, fmt.Errorf("%w: range [%d, %d] exceeds %d bits", ErrInvalidRange, lo, hi, drawBits)
	}

	width := span + 1
	limit := drawSpace - drawSpace%width

	for {
		value, err := s.draw()
		if err != nil {
			return 0, err
		}

		if value < limit {
			return lo + value%width, nil
		}
	}
}

func (s *Source) draw() (uint64, error) {
	var raw [8]byte

	if n := s.Fill(raw[:]); n != len(raw) {
		return 0, fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, n, len(raw))
	}

	value := binary.LittleEndian.Uint64(raw[:]) & drawMask

	clear(raw[:])

	return value, nil
}

// Close releases the OS handle. Further calls are no-ops.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	if err := s.handle.Close(); err != nil {
		return fmt.Errorf("closing random source: %w", err)
	}

	return nil
}

// Bytes fills p from a freshly opened source that is closed before returning.
func Bytes(p []byte) (int, error) {
	src, err := Open()
	if err != nil {
		return 0, err
	}

	defer src.Close()

	n := src.Fill(p)
	if n != len(p) {
		return n, fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, n, len(p))
	}

	return n, nil
}
