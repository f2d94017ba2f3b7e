// Command minicrypt is a small cryptography toolkit: random keys and salts,
// digests, HMAC tags, PBKDF2 key derivation and AES file encryption.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/minicrypt/internal/commands"
	"github.com/idelchi/minicrypt/internal/config"
)

// Global variable for CI stamping.
var version = "unknown - unofficial & generated by unknown" //nolint:gochecknoglobals

func main() {
	cfg := &config.Config{}

	err := commands.NewRootCommand(cfg, version).Execute()

	_ = zap.L().Sync() //nolint:errcheck // stderr sync fails on some terminals

	if err != nil && !errors.Is(err, cobraext.ErrExitGracefully) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
