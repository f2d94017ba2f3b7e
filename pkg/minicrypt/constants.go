package minicrypt

const (
	// HashBlockSize is the block size in bytes shared by SHA-1, SHA-256 and MD5.
	HashBlockSize = 64

	// SHA1Size is the size of a SHA-1 digest in bytes.
	SHA1Size = 20
	// SHA256Size is the size of a SHA-256 digest in bytes.
	SHA256Size = 32
	// MD5Size is the size of an MD5 digest in bytes.
	MD5Size = 16

	// AESBlockSize is the AES block size in bytes.
	AESBlockSize = 16

	// SaltSize is the recommended PBKDF2 salt length in bytes.
	SaltSize = 16
)
