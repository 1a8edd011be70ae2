// Package web is the untrusted-host implementation of the hybrid protocol
// primitives. It mirrors what the browser client does: every operation goes
// through the platform-shaped webcrypto surface, no custom crypto math. Its
// output must be byte-identical to the native suite's; the hybrid package
// conformance tests hold both to that.
package web

import (
	"fmt"

	"github.com/kumaruseru/crown-messaging/internal/crypto"
	"github.com/kumaruseru/crown-messaging/internal/protocol/hybrid"
	"github.com/kumaruseru/crown-messaging/internal/suite/web/webcrypto"
)

// Suite is the browser-context primitive set.
type Suite struct{}

// New returns the web suite.
func New() *Suite { return &Suite{} }

// Name identifies this host implementation.
func (*Suite) Name() string { return "web" }

// NewSymmetricKey draws 32 random bytes from the platform RNG.
func (*Suite) NewSymmetricKey() ([]byte, error) {
	key := make([]byte, crypto.AESKeySize)
	if err := webcrypto.GetRandomValues(key); err != nil {
		return nil, err
	}
	return key, nil
}

// NewIV draws a 12-byte IV from the platform RNG. The browser path settled
// on 12 bytes; that is the canonical length for the whole system.
func (*Suite) NewIV() ([]byte, error) {
	iv := make([]byte, crypto.GCMIVSize)
	if err := webcrypto.GetRandomValues(iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// SealGCM encrypts through the platform AES-GCM, then splits the
// concatenated ciphertext||tag into the wire layout.
func (*Suite) SealGCM(key, iv, aad, plaintext []byte) ([]byte, []byte, error) {
	handle, err := webcrypto.ImportKeyRaw(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", crypto.ErrInvalidKeySize, err)
	}
	sealed, err := webcrypto.Encrypt(webcrypto.AESGCMParams{
		IV:             iv,
		AdditionalData: aad,
	}, handle, plaintext)
	if err != nil {
		return nil, nil, err
	}
	split := len(sealed) - crypto.GCMTagSize
	return sealed[:split], sealed[split:], nil
}

// OpenGCM reassembles ciphertext||tag and decrypts through the platform.
func (*Suite) OpenGCM(key, iv, aad, ciphertext, tag []byte) ([]byte, error) {
	handle, err := webcrypto.ImportKeyRaw(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", crypto.ErrInvalidKeySize, err)
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	plaintext, err := webcrypto.Decrypt(webcrypto.AESGCMParams{
		IV:             iv,
		AdditionalData: aad,
	}, handle, sealed)
	if err != nil {
		return nil, crypto.ErrAuthTagMismatch
	}
	return plaintext, nil
}

// WrapKey imports the peer's SPKI key and wraps the message key with
// platform RSA-OAEP.
func (*Suite) WrapKey(spki, key []byte) ([]byte, error) {
	pub, err := webcrypto.ImportKeySPKI(spki)
	if err != nil {
		return nil, err
	}
	handle, err := webcrypto.ImportKeyRaw(key)
	if err != nil {
		return nil, err
	}
	return webcrypto.WrapKeyOAEP(pub, handle)
}

// UnwrapKey imports the viewer's PKCS#8 key and unwraps through the platform.
func (*Suite) UnwrapKey(pkcs8, wrapped []byte) ([]byte, error) {
	prv, err := webcrypto.ImportKeyPKCS8(pkcs8)
	if err != nil {
		return nil, err
	}
	handle, err := webcrypto.UnwrapKeyOAEP(prv, wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: platform unwrap rejected the key", crypto.ErrKeyUnwrap)
	}
	return webcrypto.ExportKeyRaw(handle)
}

// Digest hashes through the platform digest.
func (*Suite) Digest(data []byte) []byte {
	// SHA-256 through the platform cannot fail for a supported algorithm.
	sum, _ := webcrypto.Digest(webcrypto.HashSHA256, data)
	return sum
}

// Compile-time assertion that Suite implements hybrid.Suite.
var _ hybrid.Suite = (*Suite)(nil)
