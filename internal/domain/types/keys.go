package types

import "time"

// KeyProtection names the at-rest protection applied to a stored private key.
type KeyProtection string

const (
	// ProtectionNone means the PKCS#8 blob is stored unwrapped. Used for
	// accounts with no password-derived secret (federated login).
	ProtectionNone KeyProtection = "none"
	// ProtectionPBKDF2 means the PKCS#8 blob is encrypted with AES-256-GCM
	// under a PBKDF2-HMAC-SHA256 derived key.
	ProtectionPBKDF2 KeyProtection = "pbkdf2-aes-gcm"
)

// UserKeyPair is a user's asymmetric key material as held by the user store.
//
// A key pair is generated at most once per user and never silently rotated:
// rotation would orphan every envelope wrapped under the old public key, so
// it must be an explicit, versioned operation if ever added.
type UserKeyPair struct {
	UserID      UserID        `json:"userId"`
	PublicKey   []byte        `json:"publicKey"`  // SPKI DER
	PrivateKey  []byte        `json:"privateKey"` // PKCS#8 DER; ciphertext when protected
	Protection  KeyProtection `json:"protection"`
	Salt        []byte        `json:"salt,omitempty"` // PBKDF2 salt when protected
	IV          []byte        `json:"iv,omitempty"`   // wrap IV when protected
	Fingerprint Fingerprint   `json:"fingerprint"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// PublicKeyRecord is the shareable half of a user's key pair.
type PublicKeyRecord struct {
	UserID      UserID      `json:"userId"`
	PublicKey   []byte      `json:"publicKey"` // SPKI DER
	Fingerprint Fingerprint `json:"fingerprint"`
}
