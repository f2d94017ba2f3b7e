package logic

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/minicrypt/internal/config"
	"github.com/idelchi/minicrypt/internal/fileutil"
	"github.com/idelchi/minicrypt/pkg/crypto"
)

// RunHash prints the digest of every file as "digest  path".
// The optional salt is absorbed before the file content.
func RunHash(cfg *config.Config, w io.Writer) error {
	alg, err := crypto.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return err
	}

	salt, err := decodeSalt(cfg.Salt)
	if err != nil {
		return err
	}

	if err := resolveAll(cfg); err != nil {
		return err
	}

	backend := crypto.Default().Backend()

	return eachFile(cfg, w, func(path string) (string, error) {
		h, err := backend.NewHash(alg)
		if err != nil {
			return "", err //nolint:wrapcheck // already names the backend
		}

		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return "", fmt.Errorf("opening file: %w", err)
		}
		defer file.Close()

		h.Write(salt) //nolint:errcheck // hash.Hash writes never fail

		if _, err := io.Copy(h, file); err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}

		return hex.EncodeToString(h.Sum(nil)), nil
	})
}

// RunHMAC prints HMAC-SHA256(key, content) of every file as "tag  path".
func RunHMAC(cfg *config.Config, w io.Writer) error {
	key, err := loadKey(cfg.Key, cfg.KeyFile)
	if err != nil {
		return err
	}
	defer key.Close()

	if err := resolveAll(cfg); err != nil {
		return err
	}

	return eachFile(cfg, w, func(path string) (string, error) {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}

		tag, err := crypto.HmacDigest(key.Bytes(), data)
		if err != nil {
			return "", err //nolint:wrapcheck // already names the backend
		}
		defer tag.Close()

		return tag.Hex(), nil
	})
}

// RunFingerprint prints the 64-bit fingerprint of every file as "value  path".
func RunFingerprint(cfg *config.Config, w io.Writer) error {
	alg, err := crypto.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return err
	}

	if err := resolveAll(cfg); err != nil {
		return err
	}

	return eachFile(cfg, w, func(path string) (string, error) {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}

		return strconv.FormatUint(crypto.ToU64(data, crypto.WithAlgorithm(alg)), 10), nil
	})
}

func resolveAll(cfg *config.Config) error {
	files, _, err := fileutil.Resolve(cfg.Files, fileutil.Selection{})
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	cfg.Files = files

	return nil
}

type line struct {
	input string
	text  string
	err   error
}

// eachFile runs fn over cfg.Files with cfg.Parallel workers. A printer
// goroutine writes "text  path" lines in completion order and logs failures.
func eachFile(cfg *config.Config, w io.Writer, fn func(path string) (string, error)) error {
	results := make(chan line, len(cfg.Files))

	group := errgroup.Group{}
	group.SetLimit(cfg.Parallel)

	printed := make(chan struct{})

	var errored int

	go func() {
		defer close(printed)

		for res := range results {
			if res.err != nil {
				errored++

				zap.L().Error("processing failed", zap.String("file", res.input), zap.Error(res.err))

				continue
			}

			fmt.Fprintf(w, "%s  %s\n", res.text, res.input)
		}
	}()

	for _, file := range cfg.Files {
		group.Go(func() error {
			text, err := fn(file)
			results <- line{input: file, text: text, err: err}

			return err
		})
	}

	err := group.Wait()

	close(results)

	<-printed

	if err != nil {
		return fmt.Errorf("%d file(s) failed: %w", errored, err)
	}

	return nil
}
