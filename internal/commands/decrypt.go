package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/minicrypt/internal/config"
	"github.com/idelchi/minicrypt/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] [paths...]",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Long: `Decrypt envelopes written by encrypt.

Without paths the current directory is walked for files with the encrypted
suffix. Output is only committed once the authentication tag verifies.`,
		Args: cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Decrypt = true

			return preRun(cfg, []string{"."}, config.FieldsDecrypt)(cmd, args)
		},
		RunE: run(cfg, logic.Run),
	}

	addPasswordFlags(cmd.Flags())
	addSuffixFlags(cmd.Flags())

	return cmd
}
