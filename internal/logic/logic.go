// Package logic implements the business logic behind each command.
package logic

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/idelchi/minicrypt/internal/config"
	"github.com/idelchi/minicrypt/internal/encryption"
	"github.com/idelchi/minicrypt/internal/fileutil"
	"github.com/idelchi/minicrypt/pkg/crypto"
)

// Run encrypts or decrypts the configured files, writing progress to w.
func Run(cfg *config.Config, w io.Writer) error {
	start := time.Now()

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	excluded := scanned - len(cfg.Files)

	password, err := loadSecret(cfg.Password, cfg.PasswordFile)
	if err != nil {
		return err
	}
	defer password.Close()

	proc, err := encryption.NewProcessor(cfg, crypto.Default(), password,
		encryption.WithOutput(w),
		encryption.WithLogger(zap.L()),
	)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(scanned, excluded, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// resolveFiles expands positional args into cfg.Files. Directory walks pick up
// only encrypted files when decrypting and skip them when encrypting.
// Returns the total number of files scanned before filtering.
func resolveFiles(cfg *config.Config) (int, error) {
	keep := fileutil.LacksSuffix(cfg.Suffixes.Encrypt)
	if cfg.Decrypt {
		keep = fileutil.HasSuffix(cfg.Suffixes.Encrypt)
	}

	files, scanned, err := fileutil.Resolve(cfg.Files, fileutil.Selection{Keep: keep, Confine: true})
	if err != nil {
		return scanned, fmt.Errorf("filtering files: %w", err)
	}

	cfg.Files = files

	return scanned, nil
}

func printStats(scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Excluded:  %d\n", excluded)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
