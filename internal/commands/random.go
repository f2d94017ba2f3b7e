package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/minicrypt/internal/config"
	"github.com/idelchi/minicrypt/internal/logic"
)

// NewKeyCommand creates the key subcommand.
func NewKeyCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "key [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate a random key",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, nil, config.FieldsKey),
		RunE:    run(cfg, logic.RunKey),
	}

	cmd.Flags().IntP("size", "n", 32, "Key size in bytes") //nolint:mnd // AES-256
	cmd.Flags().BoolP("upper", "u", false, "Print upper-case hex")

	return cmd
}

// NewSaltCommand creates the salt subcommand.
func NewSaltCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "salt [flags]",
		Short:   "Generate a random 8-byte salt",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, nil, nil),
		RunE:    run(cfg, logic.RunSalt),
	}

	cmd.Flags().BoolP("upper", "u", false, "Print upper-case hex")

	return cmd
}

// NewUniformCommand creates the uniform subcommand.
func NewUniformCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "uniform [flags]",
		Aliases: []string{"rand"},
		Short:   "Print unbiased random integers from [min, max]",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, nil, config.FieldsUniform),
		RunE:    run(cfg, logic.RunUniform),
	}

	cmd.Flags().Uint64("min", 0, "Lower bound, inclusive")
	cmd.Flags().Uint64("max", 100, "Upper bound, inclusive") //nolint:mnd // friendly default
	cmd.Flags().IntP("count", "c", 1, "Number of values")

	return cmd
}
