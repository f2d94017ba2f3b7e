package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

// LoadFile reads a JSONC config file (JSON with comments and trailing commas)
// into v. Keys are the long flag names, e.g. {"rounds": 200000}.
func LoadFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}

	clean := jsonc.ToJSONInPlace(data)

	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(clean)); err != nil {
		return fmt.Errorf("parsing config file %q: %w", path, err)
	}

	return nil
}
