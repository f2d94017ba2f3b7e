//go:build !unix

package random

import (
	"crypto/rand"
	"errors"
	"io"
)

//nolint:gochecknoglobals // swapped by tests to simulate a missing device
var devicePath = ""

// Without a device node the platform CSPRNG (e.g. ProcessPrng on Windows)
// behind crypto/rand is the handle.
func openHandle() (io.ReadCloser, error) {
	if devicePath != "" {
		return nil, errors.New("no device nodes on this platform")
	}

	return io.NopCloser(rand.Reader), nil
}
