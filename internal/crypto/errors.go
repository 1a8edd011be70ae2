package crypto

import "errors"

var (
	// ErrKeyGeneration is returned when key pair generation fails. Fatal;
	// the caller surfaces it and does not retry inside the core.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrKeyUnwrap is returned when a wrapped symmetric key cannot be
	// recovered with the supplied private key, either because the key does
	// not match or the blob is corrupted. Fatal for the single message.
	ErrKeyUnwrap = errors.New("wrapped key recovery failed")

	// ErrAuthTagMismatch is returned when AES-GCM authentication fails.
	// Any altered byte of ciphertext, IV or tag trips it. Fatal for the
	// single message, never for the whole session.
	ErrAuthTagMismatch = errors.New("authentication tag mismatch")

	// ErrInvalidKeySize is returned when a symmetric key has the wrong length.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidIVSize is returned when an IV has the wrong length.
	ErrInvalidIVSize = errors.New("invalid IV size")

	// ErrInvalidSaltSize is returned when a PBKDF2 salt has the wrong length.
	ErrInvalidSaltSize = errors.New("invalid salt size")

	// ErrNotRSAPublicKey is returned when an SPKI blob does not hold an RSA key.
	ErrNotRSAPublicKey = errors.New("not an RSA public key")

	// ErrNotRSAPrivateKey is returned when a PKCS#8 blob does not hold an RSA key.
	ErrNotRSAPrivateKey = errors.New("not an RSA private key")
)
