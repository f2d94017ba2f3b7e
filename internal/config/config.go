// Package config holds the command-line configuration and its validation.
package config

// Log holds logger settings.
type Log struct {
	Level  string `label:"--log-level"  mapstructure:"log-level"  validate:"oneof=debug info warn error" json:"level"`
	Format string `label:"--log-format" mapstructure:"log-format" validate:"oneof=console json"          json:"format"`
}

// Suffixes holds the file name suffixes for encrypted and decrypted output.
type Suffixes struct {
	Encrypt string `label:"--encrypt-ext" mapstructure:"encrypt-ext" validate:"required" json:"encrypt"`
	Decrypt string `label:"--decrypt-ext" mapstructure:"decrypt-ext"                     json:"decrypt"`
}

// Config is the merged view of flags, MINICRYPT_* environment variables and
// an optional JSONC config file.
type Config struct {
	// Global flags
	Backend  string `label:"--backend"  validate:"omitempty,oneof=builtin stdlib tink" json:"backend"`
	File     string `label:"--config"   mapstructure:"config"                json:"config,omitempty"`
	Log      Log    `mapstructure:",squash" json:"log"`
	Parallel int    `label:"--parallel" validate:"min=1"                     json:"parallel"`
	Quiet    bool   `json:"quiet"`
	Stats    bool   `json:"stats"`
	Show     bool   `json:"-"`

	// Secrets
	Key          string `label:"--key"           mask:"fixed" validate:"either=--key-file,exclusive=--key-file,omitempty,hexadecimal" json:"key,omitempty"`
	KeyFile      string `label:"--key-file"      mapstructure:"key-file"                                                     json:"key-file,omitempty"`
	Password     string `label:"--password"      mask:"fixed" validate:"either=--password-file,exclusive=--password-file"                json:"password,omitempty"`
	PasswordFile string `label:"--password-file" mapstructure:"password-file"                                                json:"password-file,omitempty"`

	// Digest and key derivation
	Algorithm string `label:"--algorithm" validate:"oneof=sha256 sha1 md5"     json:"algorithm,omitempty"`
	Salt      string `label:"--salt"      validate:"omitempty,hexadecimal"     json:"salt,omitempty"`
	Rounds    int    `label:"--rounds"    validate:"min=1"                     json:"rounds,omitempty"`
	Length    int    `label:"--length"    validate:"min=1,max=1024"            json:"length,omitempty"`

	// Random generation
	Size  int    `label:"--size"  validate:"min=1,max=4096"   json:"size,omitempty"`
	Upper bool   `json:"upper,omitempty"`
	Min   uint64 `label:"--min"   json:"min,omitempty"`
	Max   uint64 `label:"--max"   validate:"gtefield=Min"     json:"max,omitempty"`
	Count int    `label:"--count" validate:"min=1"            json:"count,omitempty"`

	// File encryption
	Mode               string   `label:"--mode" validate:"oneof=cbc ctr" json:"mode,omitempty"`
	Suffixes           Suffixes `mapstructure:",squash"                 json:"suffixes"`
	Delete             bool     `json:"delete,omitempty"`
	PreserveTimestamps bool     `mapstructure:"preserve-timestamps"     json:"preserve-timestamps,omitempty"`

	// Set by the command, not by flags
	Decrypt bool     `mapstructure:"-" json:"decrypt,omitempty"`
	Files   []string `label:"paths"    mapstructure:"-" validate:"min=1" json:"files,omitempty"`
}

// Field sets validated by each command.
var (
	FieldsGlobal  = Fields{"Backend", "Log.Level", "Log.Format", "Parallel"}
	FieldsKey     = Fields{"Size"}
	FieldsHash    = Fields{"Algorithm", "Salt", "Files"}
	FieldsHMAC    = Fields{"Key", "Files"}
	FieldsDerive  = Fields{"Password", "Salt", "Rounds", "Length"}
	FieldsPrint   = Fields{"Algorithm", "Files"}
	FieldsUniform = Fields{"Max", "Count"}
	FieldsCrypt   = Fields{"Password", "Mode", "Rounds", "Suffixes.Encrypt", "Files"}
	FieldsDecrypt = Fields{"Password", "Suffixes.Encrypt", "Files"}
)
