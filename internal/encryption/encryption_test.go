package encryption

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/minicrypt/internal/config"
	"github.com/idelchi/minicrypt/pkg/crypto"
	"github.com/idelchi/minicrypt/pkg/minicrypt"
	"github.com/idelchi/minicrypt/pkg/secure"
)

const testRounds = 64

func newTestProcessor(t *testing.T, cfg *config.Config, password string) *Processor {
	t.Helper()

	backend, err := crypto.Select(crypto.Builtin)
	require.NoError(t, err)

	pw, err := secure.NewFrom(len(password), secure.Move([]byte(password)))
	require.NoError(t, err)
	t.Cleanup(func() { pw.Close() })

	p, err := NewProcessor(cfg, crypto.New(backend), pw, WithOutput(io.Discard))
	require.NoError(t, err)

	return p
}

func testConfig(mode string) *config.Config {
	return &config.Config{
		Parallel: 2,
		Rounds:   testRounds,
		Mode:     mode,
		Quiet:    true,
		Suffixes: config.Suffixes{Encrypt: ".mcry"},
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	sizes := []int{0, 1, 15, 16, 17, 31, 32, 33, defaultBufferSize - 1, defaultBufferSize, defaultBufferSize + 1, 3*defaultBufferSize + 7}

	for _, mode := range []string{"cbc", "ctr"} {
		t.Run(mode, func(t *testing.T) {
			t.Parallel()

			enc := newTestProcessor(t, testConfig(mode), "correct horse")

			decCfg := testConfig(mode)
			decCfg.Decrypt = true
			dec := newTestProcessor(t, decCfg, "correct horse")

			for _, size := range sizes {
				plain := bytes.Repeat([]byte{0x5a, 0x17, 0xc3}, size)[:size]

				var sealed bytes.Buffer
				require.NoError(t, enc.encrypt(bytes.NewReader(plain), &sealed, size%2 == 1), "size %d", size)

				switch mode {
				case "ctr":
					assert.Equal(t, envelopeHeaderSize+size+envelopeTagSize, sealed.Len())
				case "cbc":
					body := sealed.Len() - envelopeHeaderSize - envelopeTagSize
					assert.Equal(t, (size/minicrypt.AESBlockSize+1)*minicrypt.AESBlockSize, body)
				}

				var opened bytes.Buffer

				exec, err := dec.decrypt(iotest.HalfReader(bytes.NewReader(sealed.Bytes())), &opened)
				require.NoError(t, err, "size %d", size)
				assert.Equal(t, size%2 == 1, exec)
				assert.Equal(t, plain, opened.Bytes(), "size %d", size)
			}
		})
	}
}

func TestEncrypt_FreshSaltAndIV(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t, testConfig("ctr"), "pw")

	var a, b bytes.Buffer
	require.NoError(t, p.encrypt(strings.NewReader("same"), &a, false))
	require.NoError(t, p.encrypt(strings.NewReader("same"), &b, false))

	assert.NotEqual(t, a.Bytes()[:envelopeHeaderSize], b.Bytes()[:envelopeHeaderSize])
	assert.NotEqual(t, a.Bytes(), b.Bytes())
}

func TestDecrypt_RejectsTampering(t *testing.T) {
	t.Parallel()

	enc := newTestProcessor(t, testConfig("cbc"), "pw")

	var sealed bytes.Buffer
	require.NoError(t, enc.encrypt(strings.NewReader("attack at dawn, bring snacks"), &sealed, false))

	decCfg := testConfig("cbc")
	decCfg.Decrypt = true
	dec := newTestProcessor(t, decCfg, "pw")
	wrong := newTestProcessor(t, decCfg, "not pw")

	tests := []struct {
		name string
		p    *Processor
		edit func(b []byte) []byte
	}{
		{name: "wrong password", p: wrong, edit: func(b []byte) []byte { return b }},
		{name: "flipped body bit", p: dec, edit: func(b []byte) []byte { b[envelopeHeaderSize] ^= 1; return b }},
		{name: "flipped tag bit", p: dec, edit: func(b []byte) []byte { b[len(b)-1] ^= 1; return b }},
		{name: "flipped exec flag", p: dec, edit: func(b []byte) []byte { b[5] ^= envelopeFlagExec; return b }},
		{name: "truncated tag", p: dec, edit: func(b []byte) []byte { return b[:len(b)-1] }},
		{name: "extra byte", p: dec, edit: func(b []byte) []byte { return append(b, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := tt.edit(bytes.Clone(sealed.Bytes()))

			_, err := tt.p.decrypt(bytes.NewReader(data), io.Discard)
			require.ErrorIs(t, err, ErrProcessing)
		})
	}
}

func TestParseEnvelope(t *testing.T) {
	t.Parallel()

	good := (&envelope{mode: ModeCTR, exec: true, keySize: minicrypt.AES256, rounds: 10}).marshal()
	require.Len(t, good, envelopeHeaderSize)

	env, err := parseEnvelope(good)
	require.NoError(t, err)
	assert.Equal(t, ModeCTR, env.mode)
	assert.True(t, env.exec)
	assert.Equal(t, uint32(10), env.rounds)

	tests := []struct {
		name string
		edit func(b []byte) []byte
		want string
	}{
		{name: "short", edit: func(b []byte) []byte { return b[:10] }, want: "too short"},
		{name: "magic", edit: func(b []byte) []byte { b[0] = 'X'; return b }, want: "magic"},
		{name: "version", edit: func(b []byte) []byte { b[4] = 9; return b }, want: "version"},
		{name: "mode", edit: func(b []byte) []byte { b[6] = 7; return b }, want: "mode"},
		{name: "key size", edit: func(b []byte) []byte { b[7] = 20; return b }, want: "key size"},
		{name: "zero rounds", edit: func(b []byte) []byte { copy(b[8:12], []byte{0, 0, 0, 0}); return b }, want: "rounds"},
		{name: "huge rounds", edit: func(b []byte) []byte { copy(b[8:12], []byte{0xff, 0xff, 0xff, 0xff}); return b }, want: "rounds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseEnvelope(tt.edit(bytes.Clone(good)))
			require.ErrorIs(t, err, ErrProcessing)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPKCS7(t *testing.T) {
	t.Parallel()

	padded := pkcs7Pad([]byte("abc"), minicrypt.AESBlockSize)
	require.Len(t, padded, minicrypt.AESBlockSize)
	assert.Equal(t, byte(13), padded[15])

	full := pkcs7Pad(make([]byte, minicrypt.AESBlockSize), minicrypt.AESBlockSize)
	assert.Len(t, full, 2*minicrypt.AESBlockSize)

	out, err := pkcs7Unpad(padded)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	zero := make([]byte, minicrypt.AESBlockSize)
	_, err = pkcs7Unpad(zero)
	require.ErrorIs(t, err, ErrInvalidPadding)

	inconsistent := bytes.Clone(padded)
	inconsistent[14] = 1
	_, err = pkcs7Unpad(inconsistent)
	require.ErrorIs(t, err, ErrInvalidPadding)

	_, err = pkcs7Unpad(nil)
	require.ErrorIs(t, err, ErrInvalidBlockSize)
}

func TestTrailerReader(t *testing.T) {
	t.Parallel()

	data := []byte("0123456789abcdefTAG!")

	tr := newTrailerReader(iotest.OneByteReader(bytes.NewReader(data)), 4)

	body, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", string(body))

	tag, err := tr.trailer()
	require.NoError(t, err)
	assert.Equal(t, "TAG!", string(tag))

	short := newTrailerReader(strings.NewReader("ab"), 4)
	body, err = io.ReadAll(short)
	require.NoError(t, err)
	assert.Empty(t, body)

	_, err = short.trailer()
	require.ErrorIs(t, err, ErrProcessing)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	mode, err := ParseMode("ctr")
	require.NoError(t, err)
	assert.Equal(t, "ctr", mode.String())

	_, err = ParseMode("gcm")
	require.Error(t, err)
	assert.Equal(t, "mode(9)", CipherMode(9).String())
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	plain := map[string]string{
		"a.txt": "alpha",
		"b.bin": strings.Repeat("beta", 10000),
	}

	var files []string

	for name, content := range plain {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		files = append(files, path)
	}

	encCfg := testConfig("cbc")
	encCfg.Files = files
	encCfg.Delete = true

	processed, errored, size, err := newTestProcessor(t, encCfg, "pw").ProcessFiles()
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Zero(t, errored)
	assert.Positive(t, size)

	decCfg := testConfig("cbc")
	decCfg.Decrypt = true
	decCfg.Suffixes.Decrypt = ".out"

	for _, f := range files {
		_, err := os.Stat(f)
		require.ErrorIs(t, err, os.ErrNotExist, "input should be deleted")

		decCfg.Files = append(decCfg.Files, f+".mcry")
	}

	processed, errored, _, err = newTestProcessor(t, decCfg, "pw").ProcessFiles()
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Zero(t, errored)

	for name, content := range plain {
		got, err := os.ReadFile(filepath.Join(dir, name+".out"))
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	}
}

func TestProcessFiles_WrongPasswordLeavesNoOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(src, []byte("classified"), 0o600))

	encCfg := testConfig("ctr")
	encCfg.Files = []string{src}

	_, _, _, err := newTestProcessor(t, encCfg, "pw").ProcessFiles()
	require.NoError(t, err)

	decCfg := testConfig("ctr")
	decCfg.Decrypt = true
	decCfg.Suffixes.Decrypt = ".out"
	decCfg.Files = []string{src + ".mcry"}

	processed, errored, _, err := newTestProcessor(t, decCfg, "wrong").ProcessFiles()
	require.ErrorIs(t, err, ErrProcessing)
	assert.Zero(t, processed)
	assert.Equal(t, 1, errored)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	assert.ElementsMatch(t, []string{"secret.txt", "secret.txt.mcry"}, names)
}

func TestNewProcessor_Errors(t *testing.T) {
	t.Parallel()

	backend, err := crypto.Select(crypto.Builtin)
	require.NoError(t, err)

	f := crypto.New(backend)

	_, err = NewProcessor(testConfig("cbc"), f, nil)
	require.ErrorIs(t, err, ErrProcessing)

	pw, err := secure.NewFrom(2, secure.Move([]byte("pw")))
	require.NoError(t, err)

	defer pw.Close()

	_, err = NewProcessor(testConfig("gcm"), f, pw)
	require.Error(t, err)

	cfg := testConfig("cbc")
	cfg.Rounds = 0
	_, err = NewProcessor(cfg, f, pw)
	require.Error(t, err)
}

func TestProcessFiles_RefusesToOverwriteInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "notes")
	require.NoError(t, os.WriteFile(src, []byte("meeting at noon"), 0o600))

	encCfg := testConfig("cbc")
	encCfg.Files = []string{src}

	_, _, _, err := newTestProcessor(t, encCfg, "pw").ProcessFiles()
	require.NoError(t, err)

	backup := filepath.Join(dir, "backup")
	require.NoError(t, os.Rename(src+".mcry", backup))

	sealed, err := os.ReadFile(backup)
	require.NoError(t, err)

	decCfg := testConfig("cbc")
	decCfg.Decrypt = true
	decCfg.Delete = true
	decCfg.Files = []string{backup}

	processed, errored, _, err := newTestProcessor(t, decCfg, "pw").ProcessFiles()
	require.ErrorIs(t, err, ErrProcessing)
	assert.Zero(t, processed)
	assert.Equal(t, 1, errored)

	kept, err := os.ReadFile(backup)
	require.NoError(t, err, "input must survive")
	assert.Equal(t, sealed, kept)
}
