package crypto

const (
	// MessageAAD is the additional-authenticated-data string bound into every
	// message ciphertext. It ties ciphertexts to this application's direct
	// message context so an otherwise valid ciphertext cannot be replayed
	// into a different context.
	MessageAAD = "crown-social:dm:v1"

	// RSAKeyBits is the modulus size for user key pairs.
	RSAKeyBits = 2048

	// AESKeySize is the size of a per-message symmetric key in bytes.
	AESKeySize = 32
	// GCMIVSize is the canonical IV length in bytes. Both hosts must use
	// exactly this length or envelopes stop interoperating.
	GCMIVSize = 12
	// GCMTagSize is the size of the AES-GCM authentication tag in bytes.
	GCMTagSize = 16

	// PBKDF2Iterations is the work factor for private-key wrapping.
	PBKDF2Iterations = 100_000
	// PBKDF2SaltSize is the salt length for private-key wrapping in bytes.
	PBKDF2SaltSize = 16

	// HashSize is the size of a plaintext integrity hash in bytes.
	HashSize = 32
)

// SuiteDescription is the canonical string form of the algorithm suite.
// Both host implementations must agree on every element of it.
var SuiteDescription = "RSA-2048-OAEP-SHA256:AES-256-GCM:SHA-256:PBKDF2-HMAC-SHA256"
