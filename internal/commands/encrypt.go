package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/minicrypt/internal/config"
	"github.com/idelchi/minicrypt/internal/logic"
)

// DefaultRounds is the PBKDF2 iteration count for new envelopes.
const DefaultRounds = 600_000

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] paths...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Long: `Encrypt files into authenticated envelopes.

Each file gets a fresh salt and IV; the AES-256 key and the HMAC key are
derived from the password with PBKDF2-HMAC-SHA256. Directories are walked
recursively, skipping files that already carry the encrypted suffix.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, nil, config.FieldsCrypt),
		RunE:    run(cfg, logic.Run),
	}

	addPasswordFlags(cmd.Flags())
	addSuffixFlags(cmd.Flags())

	cmd.Flags().StringP("mode", "m", "cbc", "Cipher mode: cbc or ctr")
	cmd.Flags().IntP("rounds", "r", DefaultRounds, "PBKDF2 rounds")

	return cmd
}
