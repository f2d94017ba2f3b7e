package minicrypt_test

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"
)

// Case is a single known-answer vector from a YAML golden file.
// Hex-encoded fields are key, iv and output; input is text for digests and
// hex for AES.
type Case struct {
	Description string `yaml:"description,omitempty"`
	Key         string `yaml:"key,omitempty"`
	IV          string `yaml:"iv,omitempty"`
	Input       string `yaml:"input"`
	Password    string `yaml:"password,omitempty"`
	Salt        string `yaml:"salt,omitempty"`
	Rounds      int    `yaml:"rounds,omitempty"`
	Output      string `yaml:"output"`
}

// Group is a named collection of vectors for one primitive.
type Group struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

func loadGroups(t *testing.T) map[string]Group {
	t.Helper()

	files, err := filepath.Glob("testdata/*.yml")
	if err != nil {
		t.Fatalf("globbing testdata: %v", err)
	}

	if len(files) == 0 {
		t.Fatal("no testdata/*.yml files found")
	}

	groups := make(map[string]Group)

	for _, f := range files {
		data, err := os.ReadFile(f) //nolint:gosec // test helper reads known testdata files
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}

		var parsed []Group
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			t.Fatalf("parsing %s: %v", f, err)
		}

		for _, g := range parsed {
			if _, dup := groups[g.Name]; dup {
				t.Fatalf("duplicate group %q in %s", g.Name, f)
			}

			groups[g.Name] = g
		}
	}

	return groups
}

// forEachVector runs fn for every case of the named group as a parallel subtest.
func forEachVector(t *testing.T, name string, fn func(t *testing.T, tc Case)) {
	t.Helper()

	group, ok := loadGroups(t)[name]
	if !ok {
		t.Fatalf("no golden group %q", name)
	}

	require.NotEmpty(t, group.Cases, "group %q has no cases", name)

	for i, tc := range group.Cases {
		desc := tc.Description
		if desc == "" {
			desc = fmt.Sprintf("case_%d", i)
		}

		t.Run(desc, func(t *testing.T) {
			t.Parallel()
			fn(t, tc)
		})
	}
}

func unhex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err, "decoding %q", s)

	return b
}
