// Package native is the trusted backend host implementation of the hybrid
// protocol primitives. It has full control over the primitives and calls the
// standard library directly through internal/crypto.
package native

import (
	"github.com/kumaruseru/crown-messaging/internal/crypto"
	"github.com/kumaruseru/crown-messaging/internal/protocol/hybrid"
)

// Suite is the backend primitive set.
type Suite struct{}

// New returns the backend suite.
func New() *Suite { return &Suite{} }

// Name identifies this host implementation.
func (*Suite) Name() string { return "native" }

// NewSymmetricKey returns a fresh random 256-bit message key.
func (*Suite) NewSymmetricKey() ([]byte, error) { return crypto.NewSymmetricKey() }

// NewIV returns a fresh random 12-byte IV.
func (*Suite) NewIV() ([]byte, error) { return crypto.NewIV() }

// SealGCM encrypts with AES-256-GCM, tag split from the ciphertext.
func (*Suite) SealGCM(key, iv, aad, plaintext []byte) ([]byte, []byte, error) {
	return crypto.SealGCM(key, iv, aad, plaintext)
}

// OpenGCM authenticates and decrypts.
func (*Suite) OpenGCM(key, iv, aad, ciphertext, tag []byte) ([]byte, error) {
	return crypto.OpenGCM(key, iv, aad, ciphertext, tag)
}

// WrapKey encrypts a symmetric key under an SPKI public key with RSA-OAEP.
func (*Suite) WrapKey(spki, key []byte) ([]byte, error) {
	return crypto.WrapKeyOAEP(spki, key)
}

// UnwrapKey recovers a wrapped symmetric key with a PKCS#8 private key.
func (*Suite) UnwrapKey(pkcs8, wrapped []byte) ([]byte, error) {
	return crypto.UnwrapKeyOAEP(pkcs8, wrapped)
}

// Digest computes SHA-256.
func (*Suite) Digest(data []byte) []byte { return crypto.HashPlaintext(data) }

// Compile-time assertion that Suite implements hybrid.Suite.
var _ hybrid.Suite = (*Suite)(nil)
