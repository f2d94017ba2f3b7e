// Package minicrypt is the built-in, dependency-free implementation of the
// symmetric primitives: SHA-1, SHA-256 and MD5 streaming digests, HMAC-SHA256,
// PBKDF2-HMAC-SHA256 and AES-128/192/256 with CBC and CTR chaining.
//
// Digests follow an Init -> Update* -> Final life cycle. Final writes the
// digest, zeroes the context and marks it finalized; it cannot be reused
// until Init or Reset. Every digest and HMAC also implements hash.Hash, and
// *AES implements cipher.Block, so they plug into code written against the
// standard interfaces.
//
// None of the types are safe for concurrent use. Create one context per
// goroutine.
package minicrypt
