// Package webcrypto models the platform-provided crypto surface available
// inside an untrusted browser context: a SubtleCrypto-shaped API with opaque
// key handles, algorithm parameter structs, and no access to key internals.
// The web suite is only allowed to call this package, which is what keeps
// its protocol implementation honest about the browser's constraints.
package webcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"
)

// Algorithm identifiers, as the platform spells them.
const (
	AlgAESGCM   = "AES-GCM"
	AlgRSAOAEP  = "RSA-OAEP"
	HashSHA256  = "SHA-256"
	tagBits     = 128
	aesKeyBytes = 32
)

// ErrOperation is the platform's uniform failure for decrypt/unwrap: the
// browser deliberately reports no detail beyond "OperationError".
var ErrOperation = errors.New("OperationError")

// ErrDataError is returned when imported key material cannot be parsed.
var ErrDataError = errors.New("DataError")

// Key is an opaque key handle. Raw material is only reachable through
// ExportKeyRaw, mirroring extractable platform keys.
type Key struct {
	alg string
	raw []byte // AES-GCM secret key material
	pub *rsa.PublicKey
	prv *rsa.PrivateKey
}

// Algorithm returns the algorithm the key was imported for.
func (k *Key) Algorithm() string { return k.alg }

// AESGCMParams parameterises Encrypt/Decrypt. TagLength is in bits; the
// protocol always uses 128.
type AESGCMParams struct {
	IV             []byte
	AdditionalData []byte
	TagLength      int
}

// GetRandomValues fills b with cryptographically secure random bytes.
func GetRandomValues(b []byte) error {
	_, err := rand.Read(b)
	return err
}

// Digest hashes data with the named algorithm. Only SHA-256 is supported.
func Digest(algorithm string, data []byte) ([]byte, error) {
	if algorithm != HashSHA256 {
		return nil, fmt.Errorf("%w: unsupported digest %q", ErrDataError, algorithm)
	}
	sum := sha256.Sum256(data)
	return sum[:], nil
}

// ImportKeyRaw imports raw AES-GCM key material.
func ImportKeyRaw(raw []byte) (*Key, error) {
	if len(raw) != aesKeyBytes {
		return nil, fmt.Errorf("%w: AES key must be %d bytes", ErrDataError, aesKeyBytes)
	}
	return &Key{alg: AlgAESGCM, raw: append([]byte(nil), raw...)}, nil
}

// ImportKeySPKI imports an RSA-OAEP public key from SPKI DER.
func ImportKeySPKI(der []byte) (*Key, error) {
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataError, err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA key", ErrDataError)
	}
	return &Key{alg: AlgRSAOAEP, pub: rsaPub}, nil
}

// ImportKeyPKCS8 imports an RSA-OAEP private key from PKCS#8 DER.
func ImportKeyPKCS8(der []byte) (*Key, error) {
	prv, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataError, err)
	}
	rsaPrv, ok := prv.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA key", ErrDataError)
	}
	return &Key{alg: AlgRSAOAEP, prv: rsaPrv}, nil
}

// ExportKeyRaw exports AES key material from an extractable handle.
func ExportKeyRaw(k *Key) ([]byte, error) {
	if k.alg != AlgAESGCM || k.raw == nil {
		return nil, ErrDataError
	}
	return append([]byte(nil), k.raw...), nil
}

// Encrypt seals plaintext with AES-GCM and returns ciphertext||tag, the
// platform's concatenated layout.
func Encrypt(p AESGCMParams, key *Key, plaintext []byte) ([]byte, error) {
	aead, err := gcmFor(key, p)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, p.IV, plaintext, p.AdditionalData), nil
}

// Decrypt opens ciphertext||tag. Every failure is ErrOperation; the platform
// gives no more detail.
func Decrypt(p AESGCMParams, key *Key, data []byte) ([]byte, error) {
	aead, err := gcmFor(key, p)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, p.IV, data, p.AdditionalData)
	if err != nil {
		return nil, ErrOperation
	}
	return plaintext, nil
}

// WrapKeyOAEP wraps an AES key handle under an RSA-OAEP public key handle.
func WrapKeyOAEP(wrappingKey, key *Key) ([]byte, error) {
	if wrappingKey.alg != AlgRSAOAEP || wrappingKey.pub == nil {
		return nil, ErrDataError
	}
	raw, err := ExportKeyRaw(key)
	if err != nil {
		return nil, err
	}
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, wrappingKey.pub, raw, nil)
}

// UnwrapKeyOAEP unwraps key material with an RSA-OAEP private key handle.
func UnwrapKeyOAEP(unwrappingKey *Key, wrapped []byte) (*Key, error) {
	if unwrappingKey.alg != AlgRSAOAEP || unwrappingKey.prv == nil {
		return nil, ErrDataError
	}
	raw, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, unwrappingKey.prv, wrapped, nil)
	if err != nil {
		return nil, ErrOperation
	}
	return ImportKeyRaw(raw)
}

func gcmFor(key *Key, p AESGCMParams) (cipher.AEAD, error) {
	if key.alg != AlgAESGCM || key.raw == nil {
		return nil, ErrDataError
	}
	if p.TagLength != 0 && p.TagLength != tagBits {
		return nil, fmt.Errorf("%w: unsupported tag length %d", ErrDataError, p.TagLength)
	}
	block, err := aes.NewCipher(key.raw)
	if err != nil {
		return nil, ErrDataError
	}
	return cipher.NewGCMWithNonceSize(block, len(p.IV))
}
