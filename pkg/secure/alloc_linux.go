//go:build linux

package secure

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// region is the storage behind a Buffer: an anonymous mapping outside the Go
// heap, so the garbage collector never copies or relocates the secret.
type region struct {
	data   []byte
	locked bool
}

func allocate(size int) (region, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return region{}, fmt.Errorf("mmap %d bytes: %w", size, err)
	}

	// mlock is bounded by RLIMIT_MEMLOCK; an unlocked mapping still keeps the
	// secret off the Go heap.
	locked := unix.Mlock(data) == nil

	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		if locked {
			unix.Munlock(data) //nolint:errcheck // unwinding a failed allocation
		}

		unix.Munmap(data) //nolint:errcheck // unwinding a failed allocation

		return region{}, fmt.Errorf("madvise(MADV_DONTDUMP): %w", err)
	}

	return region{data: data, locked: locked}, nil
}

func (r *region) release() error {
	if r.data == nil {
		return nil
	}

	var firstErr error

	if r.locked {
		if err := unix.Munlock(r.data); err != nil {
			firstErr = fmt.Errorf("munlock: %w", err)
		}
	}

	if err := unix.Munmap(r.data); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("munmap: %w", err)
	}

	r.data = nil
	r.locked = false

	return firstErr
}
