package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/minicrypt/internal/config"
	"github.com/idelchi/minicrypt/internal/logic"
	"github.com/idelchi/minicrypt/pkg/crypto"
)

// NewHashCommand creates the hash subcommand.
func NewHashCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hash [flags] paths...",
		Aliases: []string{"sum"},
		Short:   "Print file digests",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, nil, config.FieldsHash),
		RunE:    run(cfg, logic.RunHash),
	}

	addAlgorithmFlag(cmd)
	cmd.Flags().String("salt", "", "Hex-encoded salt absorbed before the content")

	return cmd
}

// NewHMACCommand creates the hmac subcommand.
func NewHMACCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hmac [flags] paths...",
		Short:   "Print HMAC-SHA256 tags of files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, nil, config.FieldsHMAC),
		RunE:    run(cfg, logic.RunHMAC),
	}

	cmd.Flags().StringP("key", "k", "", "HMAC key (hex-encoded)")
	cmd.Flags().StringP("key-file", "f", "", "Path to the key file with the HMAC key (hex-encoded)")

	return cmd
}

// NewFingerprintCommand creates the fingerprint subcommand.
func NewFingerprintCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fingerprint [flags] paths...",
		Aliases: []string{"fp"},
		Short:   "Print 64-bit file fingerprints",
		Long: `Print the first 8 digest bytes of each file as an unsigned integer.
18446744073709551615 marks a file whose digest could not be computed.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, nil, config.FieldsPrint),
		RunE:    run(cfg, logic.RunFingerprint),
	}

	addAlgorithmFlag(cmd)

	return cmd
}

// NewDeriveCommand creates the derive subcommand.
func NewDeriveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "derive [flags]",
		Aliases: []string{"kdf"},
		Short:   "Derive a key from a password with PBKDF2-HMAC-SHA256",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, nil, config.FieldsDerive),
		RunE:    run(cfg, logic.RunDerive),
	}

	addPasswordFlags(cmd.Flags())

	cmd.Flags().String("salt", "", "Hex-encoded salt, random if empty")
	cmd.Flags().IntP("rounds", "r", DefaultRounds, "PBKDF2 rounds")
	cmd.Flags().IntP("length", "l", 32, "Derived key length in bytes") //nolint:mnd // AES-256
	cmd.Flags().BoolP("upper", "u", false, "Print upper-case hex")

	return cmd
}

func addAlgorithmFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("algorithm", "a", string(crypto.SHA256), fmt.Sprintf("Digest algorithm, one of %v", crypto.Algorithms()))
}
