//go:build unix

package random

import (
	"io"
	"os"
)

//nolint:gochecknoglobals // swapped by tests to simulate a missing device
var devicePath = "/dev/urandom"

func openHandle() (io.ReadCloser, error) {
	return os.Open(devicePath)
}
