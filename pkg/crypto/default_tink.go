//go:build crypto_tink

package crypto

const defaultKind = Tink
