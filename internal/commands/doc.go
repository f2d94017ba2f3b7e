// Package commands provides the command-line interface for the minicrypt tool.
//
// It implements commands for:
//   - random keys, salts and unbiased integers
//   - file digests, HMAC tags and fingerprints
//   - PBKDF2 key derivation
//   - file encryption and decryption
//
// Settings come from flags, MINICRYPT_* environment variables and an optional
// JSONC config file, merged through viper and validated per command.
package commands
