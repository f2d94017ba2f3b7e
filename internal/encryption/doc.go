// Package encryption provides password-based file encryption on the built-in
// primitives: PBKDF2-HMAC-SHA256 key derivation, AES-256 in CBC (PKCS#7) or
// CTR mode, and an HMAC-SHA256 tag over header and ciphertext.
//
// Every file gets its own random salt and IV, so one password never yields
// the same key twice. Output is written to a temporary file and renamed into
// place only after success; on decryption that includes tag verification.
// Files are processed concurrently.
package encryption
