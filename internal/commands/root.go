package commands

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/minicrypt/internal/config"
	"github.com/idelchi/minicrypt/internal/logging"
	"github.com/idelchi/minicrypt/pkg/crypto"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version, func(*cobra.Command, []string) error {
		return configure(cfg)
	})

	root.Use = "minicrypt [flags] command [flags]"
	root.Short = "Small cryptography toolkit"
	root.Long = `A small cryptography toolkit built on locked, self-wiping buffers.
Provides commands for random keys and salts, digests, HMAC tags, PBKDF2 key
derivation and authenticated AES file encryption.`

	flags := root.PersistentFlags()

	flags.String("backend", "", fmt.Sprintf("Crypto backend, one of %v (default: build dependent)", crypto.Kinds()))
	flags.String("config", "", "Path to a JSONC config file")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.String("log-format", "console", "Log format: console or json")
	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("stats", false, "Print processing statistics to stderr")

	root.AddCommand(
		NewKeyCommand(cfg),
		NewSaltCommand(cfg),
		NewUniformCommand(cfg),
		NewHashCommand(cfg),
		NewHMACCommand(cfg),
		NewFingerprintCommand(cfg),
		NewDeriveCommand(cfg),
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
	)

	return root
}

// configure merges the config file into the bound flags and environment,
// then sets up the logger and the crypto backend.
func configure(cfg *config.Config) error {
	if path := viper.GetString("config"); path != "" {
		if err := config.LoadFile(viper.GetViper(), path); err != nil {
			return err //nolint:wrapcheck // already names the file
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	logger, _, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: logging.Format(cfg.Log.Format),
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	zap.ReplaceGlobals(logger)

	kind, err := crypto.ParseKind(cfg.Backend)
	if err != nil {
		return err //nolint:wrapcheck // names the unknown backend
	}

	// Repeated runs in one process may find the same backend already in place.
	if err := crypto.Configure(kind, crypto.WithLogger(logger)); err != nil &&
		(!errors.Is(err, crypto.ErrAlreadyConfigured) || crypto.Default().Backend().Name() != string(kind)) {
		return fmt.Errorf("selecting %s backend: %w", kind, err)
	}

	logger.Debug("configured", zap.String("backend", string(kind)), zap.Int("parallel", cfg.Parallel))

	return nil
}

// preRun returns a PreRunE handler that stores positional args in cfg.Files
// and validates the fields the command uses. Without args, fallback is used.
func preRun(cfg *config.Config, fallback []string, fields config.Fields) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Files = args
		if len(args) == 0 {
			cfg.Files = fallback
		}

		return cobraext.Validate(cfg, fields) //nolint:wrapcheck // already flag-oriented
	}
}

// run returns a RunE handler that calls fn with the command's output.
func run(cfg *config.Config, fn func(*config.Config, io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return fn(cfg, cmd.OutOrStdout())
	}
}

func addPasswordFlags(flags *pflag.FlagSet) {
	flags.StringP("password", "p", "", "Password")
	flags.StringP("password-file", "P", "", "Path to a file holding the password")
}

func addSuffixFlags(flags *pflag.FlagSet) {
	flags.String("encrypt-ext", ".mcry", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")
	flags.BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("preserve-timestamps", false, "Copy the input modification time to the output")
}
