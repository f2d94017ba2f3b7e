// Package secure provides fixed-capacity containers for secret material.
//
// A [Buffer] owns N bytes that are zeroed on [Buffer.Clear] and on
// [Buffer.Close]. On Linux the storage is an anonymous mmap region outside the
// Go heap, locked into RAM when the memlock limit allows it and excluded from
// core dumps. Elsewhere the storage is a heap slice that is never resliced.
//
// Copying from caller-owned memory that must not keep a second copy of the
// secret goes through [Move]:
//
//	key, _ := secure.New(32)
//	defer key.Close()
//
//	key.Assign(secure.Move(password)) // password is zeroed afterwards
//
// [Guarded] offers the same surface on top of memguard locked buffers, for keys
// that live for the lifetime of the process.
package secure
