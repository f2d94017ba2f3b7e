//go:build !crypto_stdlib && !crypto_tink

package crypto

const defaultKind = Builtin
