package hybrid

// Suite is the narrow primitive surface the protocol runs on. Two
// implementations exist: the native suite for the trusted backend process
// and the web suite for the untrusted browser-like context, which may only
// call platform-shaped crypto. Keeping the protocol itself host-agnostic is
// what keeps the two hosts byte-compatible: every envelope field is produced
// through this interface, so a divergence can only live in a Suite, where
// the conformance tests catch it.
//
// Keys cross the interface as interchange encodings: SPKI DER for public
// keys, PKCS#8 DER for private keys, raw bytes for symmetric keys.
type Suite interface {
	// Name identifies the host implementation, for logs and test output.
	Name() string

	// NewSymmetricKey returns a fresh random 256-bit message key.
	NewSymmetricKey() ([]byte, error)
	// NewIV returns a fresh random IV of the canonical 12-byte length.
	NewIV() ([]byte, error)

	// SealGCM encrypts with AES-256-GCM, returning ciphertext and the
	// 16-byte tag separately.
	SealGCM(key, iv, aad, plaintext []byte) (ciphertext, tag []byte, err error)
	// OpenGCM authenticates and decrypts; any altered byte of
	// ciphertext/iv/tag must yield crypto.ErrAuthTagMismatch.
	OpenGCM(key, iv, aad, ciphertext, tag []byte) ([]byte, error)

	// WrapKey encrypts a symmetric key under an SPKI public key with
	// RSA-OAEP(SHA-256).
	WrapKey(spki, key []byte) ([]byte, error)
	// UnwrapKey recovers a wrapped symmetric key with a PKCS#8 private key;
	// a mismatched key must yield crypto.ErrKeyUnwrap.
	UnwrapKey(pkcs8, wrapped []byte) ([]byte, error)

	// Digest computes SHA-256.
	Digest(data []byte) []byte
}
