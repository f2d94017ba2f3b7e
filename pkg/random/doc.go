// Package random reads cryptographically secure random bytes from the
// operating system.
//
// A [Source] owns one OS handle (/dev/urandom on unix systems, the platform
// CSPRNG elsewhere) between [Open] and [Source.Close]. Sources are cheap to
// open and are meant to be scoped to a single operation:
//
//	src, err := random.Open()
//	if err != nil {
//		return err
//	}
//	defer src.Close()
//
//	if n := src.Fill(key); n != len(key) {
//		return random.ErrShortRead
//	}
//
// A Source is not safe for concurrent use.
package random
