package random

import "io"

// SetDeviceForTesting points Open at another path and returns a restore func.
func SetDeviceForTesting(path string) func() {
	original := devicePath
	devicePath = path

	return func() { devicePath = original }
}

// NewSourceForTesting wraps an arbitrary reader as a Source.
func NewSourceForTesting(r io.Reader) *Source {
	return &Source{handle: io.NopCloser(r)}
}
