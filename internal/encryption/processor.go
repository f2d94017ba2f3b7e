package encryption

import (
	"crypto/subtle"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/minicrypt/internal/config"
	"github.com/idelchi/minicrypt/internal/fileutil"
	"github.com/idelchi/minicrypt/pkg/crypto"
	"github.com/idelchi/minicrypt/pkg/minicrypt"
	"github.com/idelchi/minicrypt/pkg/secure"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// facade supplies randomness and key derivation
	facade *crypto.Facade

	// password is the secret every file key is derived from
	password *secure.Buffer

	// mode is the body cipher mode for new envelopes
	mode CipherMode

	log *zap.Logger
	out io.Writer

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// Option configures a Processor.
type Option func(*Processor)

// WithOutput sets where progress lines go. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Processor) { p.out = w }
}

// WithLogger sets the logger for per-file failures.
func WithLogger(log *zap.Logger) Option {
	return func(p *Processor) { p.log = log }
}

// NewProcessor creates a Processor. The password buffer stays owned by the caller.
func NewProcessor(cfg *config.Config, facade *crypto.Facade, password *secure.Buffer, opts ...Option) (*Processor, error) {
	if password == nil || password.Empty() {
		return nil, fmt.Errorf("%w: empty password", ErrProcessing)
	}

	processor := &Processor{
		cfg:      cfg,
		facade:   facade,
		password: password,
		log:      zap.NewNop(),
		out:      os.Stdout,
		results:  make(chan Result, len(cfg.Files)),
	}

	for _, opt := range opts {
		opt(processor)
	}

	if cfg.Decrypt {
		return processor, nil
	}

	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	if cfg.Rounds < 1 || cfg.Rounds > MaxRounds {
		return nil, fmt.Errorf("rounds must be between 1 and %d, got %d", MaxRounds, cfg.Rounds)
	}

	processor.mode = mode

	return processor, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
// Returns the number of successfully processed files and the number of errors.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				p.log.Error("processing failed", zap.String("file", result.Input), zap.Error(result.Error))
			} else {
				processed++

				totalSize += result.OutputSize

				if !p.cfg.Quiet {
					fmt.Fprintf(p.out, "Processed %q -> %q\n", result.Input, result.Output)
				}
			}

			if p.cfg.Delete && result.Error == nil {
				if err := os.Remove(result.Input); err != nil {
					p.log.Error("deleting input failed", zap.String("file", result.Input), zap.Error(err))
				} else if !p.cfg.Quiet {
					fmt.Fprintf(p.out, "Deleted %q\n", result.Input)
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// encrypt writes a new envelope for the plaintext in reader to writer.
func (p *Processor) encrypt(reader io.Reader, writer io.Writer, isExec bool) error {
	env := &envelope{
		mode:    p.mode,
		exec:    isExec,
		keySize: minicrypt.AES256,
		rounds:  uint32(p.cfg.Rounds), //nolint:gosec // bounded by MaxRounds in NewProcessor
	}

	if err := p.randomize(env); err != nil {
		return err
	}

	keys, err := p.deriveKeys(env)
	if err != nil {
		return err
	}
	defer keys.Close()

	header := env.marshal()
	if _, err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	mac := minicrypt.NewHMAC(keys.mac())
	defer mac.Wipe()

	mac.Write(header) //nolint:errcheck // hash.Hash writes never fail

	block, err := minicrypt.NewAES(keys.enc(), env.iv[:])
	if err != nil {
		return fmt.Errorf("creating cipher: %w", err)
	}
	defer block.Wipe()

	body := io.MultiWriter(writer, mac)

	switch env.mode {
	case ModeCBC:
		err = encryptCBC(reader, body, block)
	case ModeCTR:
		err = cipherCTR(reader, body, block)
	}

	if err != nil {
		return err
	}

	if _, err := writer.Write(mac.Sum(nil)); err != nil {
		return fmt.Errorf("writing authentication tag: %w", err)
	}

	return nil
}

// randomize draws a fresh salt and IV for env.
func (p *Processor) randomize(env *envelope) error {
	nonce, err := secure.New(len(env.salt) + len(env.iv))
	if err != nil {
		return fmt.Errorf("allocating nonce: %w", err)
	}
	defer nonce.Close()

	if err := p.facade.RandomKey(nonce); err != nil {
		return fmt.Errorf("generating salt and IV: %w", err)
	}

	n := copy(env.salt[:], nonce.Bytes())
	copy(env.iv[:], nonce.Bytes()[n:])

	return nil
}

// decrypt reads an envelope from reader, writes the plaintext to writer and
// verifies the tag. It returns whether the original file was executable.
// Plaintext is written before verification; the caller discards it on error.
func (p *Processor) decrypt(reader io.Reader, writer io.Writer) (bool, error) {
	header := make([]byte, envelopeHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return false, fmt.Errorf("%w: reading header: %w", ErrProcessing, err)
	}

	env, err := parseEnvelope(header)
	if err != nil {
		return false, err
	}

	keys, err := p.deriveKeys(env)
	if err != nil {
		return false, err
	}
	defer keys.Close()

	mac := minicrypt.NewHMAC(keys.mac())
	defer mac.Wipe()

	mac.Write(header) //nolint:errcheck // hash.Hash writes never fail

	block, err := minicrypt.NewAES(keys.enc(), env.iv[:])
	if err != nil {
		return false, fmt.Errorf("creating cipher: %w", err)
	}
	defer block.Wipe()

	trailer := newTrailerReader(reader, envelopeTagSize)
	body := io.TeeReader(trailer, mac)

	switch env.mode {
	case ModeCBC:
		err = decryptCBC(body, writer, block)
	case ModeCTR:
		err = cipherCTR(body, writer, block)
	}

	if err != nil {
		// A tampered body must report as such, not as a padding or size error.
		if _, drainErr := io.Copy(io.Discard, body); drainErr == nil && !verifyTag(mac, trailer) {
			return false, fmt.Errorf("%w: authentication failed", ErrProcessing)
		}

		return false, err
	}

	if !verifyTag(mac, trailer) {
		return false, fmt.Errorf("%w: authentication failed", ErrProcessing)
	}

	return env.exec, nil
}

func verifyTag(mac *minicrypt.HMAC, trailer *trailerReader) bool {
	tag, err := trailer.trailer()
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(mac.Sum(nil), tag) == 1
}

// processFile handles the encryption or decryption of a single file.
// It creates a temporary file for output and performs an atomic rename on completion.
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	// An unsuffixed input decrypted with an empty --decrypt-ext maps onto itself.
	if filepath.Clean(outPath) == filepath.Clean(filename) {
		return 0, fmt.Errorf("%w: output %q would replace its input", ErrProcessing, filename)
	}

	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	execOut := tc.IsExec

	if p.cfg.Decrypt {
		execOut, err = p.decrypt(inFile, tc.TmpFile)
		if err != nil {
			return 0, fmt.Errorf("decrypting file: %w", err)
		}
	} else if err = p.encrypt(inFile, tc.TmpFile, tc.IsExec); err != nil {
		return 0, fmt.Errorf("encrypting file: %w", err)
	}

	if err = inFile.Close(); err != nil {
		return 0, fmt.Errorf("closing input file: %w", err)
	}

	if err = tc.Commit(outPath, execOut); err != nil {
		return 0, err
	}

	size, err = fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, tc.SrcInfo.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// outputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func (p *Processor) outputPath(filename string) string {
	ext := p.cfg.Suffixes.Encrypt

	if p.cfg.Decrypt {
		filename = strings.TrimSuffix(filename, p.cfg.Suffixes.Encrypt)
		ext = p.cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}
