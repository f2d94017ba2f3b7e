package logic

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/minicrypt/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRunHash(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	abc := writeFile(t, dir, "abc.txt", "abc")
	empty := writeFile(t, dir, "empty.txt", "")

	var out bytes.Buffer

	cfg := &config.Config{Parallel: 2, Algorithm: "sha256", Files: []string{abc, empty}}
	require.NoError(t, RunHash(cfg, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.ElementsMatch(t, []string{
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad  " + abc,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855  " + empty,
	}, lines)
}

func TestRunHash_Salted(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "data", "payload")

	var out bytes.Buffer

	cfg := &config.Config{Parallel: 1, Algorithm: "sha256", Salt: "00112233", Files: []string{path}}
	require.NoError(t, RunHash(cfg, &out))

	want := sha256.Sum256(append([]byte{0x00, 0x11, 0x22, 0x33}, "payload"...))
	assert.Equal(t, hex.EncodeToString(want[:])+"  "+path+"\n", out.String())
}

func TestRunHash_Errors(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := RunHash(&config.Config{Parallel: 1, Algorithm: "sha512", Files: []string{"x"}}, &out)
	require.Error(t, err)

	err = RunHash(&config.Config{Parallel: 1, Salt: "zz", Files: []string{"x"}}, &out)
	require.ErrorContains(t, err, "decoding salt")

	err = RunHash(&config.Config{Parallel: 1, Files: []string{filepath.Join(t.TempDir(), "missing")}}, &out)
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRunHMAC(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "fox", "The quick brown fox jumps over the lazy dog")
	keyFile := writeFile(t, dir, "key.hex", "6b6579\n")

	const want = "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"

	for _, cfg := range []*config.Config{
		{Parallel: 1, Key: "6b6579", Files: []string{path}},
		{Parallel: 1, KeyFile: keyFile, Files: []string{path}},
	} {
		var out bytes.Buffer

		require.NoError(t, RunHMAC(cfg, &out))
		assert.Equal(t, want+"  "+path+"\n", out.String())
	}

	var out bytes.Buffer

	err := RunHMAC(&config.Config{Parallel: 1, Key: "", Files: []string{path}}, &out)
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestLoadKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		value   string
		content string
		want    string
		wantErr string
	}{
		{name: "flag", value: "00ff", want: "00ff"},
		{name: "flag with spaces", value: " 00ff\t", want: "00ff"},
		{name: "file with line break", content: "\r\n6b6579\r\n", want: "6b6579"},
		{name: "odd length", value: "abc", wantErr: "invalid hex key"},
		{name: "not hex", value: "zz", wantErr: "invalid hex key"},
		{name: "blank file", content: " \n", wantErr: ErrEmptySecret.Error()},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := ""
			if tt.content != "" {
				file = writeFile(t, dir, fmt.Sprintf("key-%d", i), tt.content)
			}

			buf, err := loadKey(tt.value, file)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			t.Cleanup(func() { _ = buf.Close() })
			assert.Equal(t, tt.want, buf.Hex())
		})
	}
}

func TestRunFingerprint(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "abc", "abc")

	var out bytes.Buffer

	require.NoError(t, RunFingerprint(&config.Config{Parallel: 1, Algorithm: "sha256", Files: []string{path}}, &out))

	sum := sha256.Sum256([]byte("abc"))
	assert.Equal(t, fmt.Sprintf("%d  %s\n", binary.BigEndian.Uint64(sum[:]), path), out.String())
}

func TestRunKey(t *testing.T) {
	t.Parallel()

	var lower, upper bytes.Buffer

	require.NoError(t, RunKey(&config.Config{Size: 16}, &lower))
	require.NoError(t, RunKey(&config.Config{Size: 24, Upper: true}, &upper))

	assert.Regexp(t, `^[0-9a-f]{32}\n$`, lower.String())
	assert.Regexp(t, `^[0-9A-F]{48}\n$`, upper.String())

	require.Error(t, RunKey(&config.Config{Size: 0}, &lower))
}

func TestRunSalt(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, RunSalt(&config.Config{}, &out))
	assert.Regexp(t, `^[0-9a-f]{16}\n$`, out.String())
}

func TestRunDerive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pwFile := writeFile(t, dir, "pw", "password\n")

	const want = "salt  73616c74\nkey   120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b\n"

	for _, cfg := range []*config.Config{
		{Password: "password", Salt: "73616c74", Rounds: 1, Length: 32},
		{PasswordFile: pwFile, Salt: "73616c74", Rounds: 1, Length: 32},
	} {
		var out bytes.Buffer

		require.NoError(t, RunDerive(cfg, &out))
		assert.Equal(t, want, out.String())
	}

	var out bytes.Buffer

	require.NoError(t, RunDerive(&config.Config{Password: "pw", Rounds: 2, Length: 8}, &out))
	assert.Regexp(t, `^salt  [0-9a-f]{16}\nkey   [0-9a-f]{16}\n$`, out.String())

	err := RunDerive(&config.Config{PasswordFile: writeFile(t, dir, "blank", "\n"), Rounds: 1, Length: 8}, &out)
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestRunUniform(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, RunUniform(&config.Config{Min: 7, Max: 7, Count: 3}, &out))
	assert.Equal(t, "7\n7\n7\n", out.String())

	out.Reset()
	require.NoError(t, RunUniform(&config.Config{Min: 1, Max: 6, Count: 50}, &out))

	for _, v := range strings.Fields(out.String()) {
		assert.Contains(t, []string{"1", "2", "3", "4", "5", "6"}, v)
	}

	require.Error(t, RunUniform(&config.Config{Min: 0, Max: 1 << 60, Count: 1}, &out))
}
