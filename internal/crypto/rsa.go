package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
)

// GenerateRSAKeyPair returns a fresh RSA-2048 key pair encoded as SPKI and
// PKCS#8 DER. The encodings are the interchange format between hosts, so
// nothing outside this package handles *rsa types directly.
func GenerateRSAKeyPair() (spki, pkcs8 []byte, err error) {
	priv, err := rsa.GenerateKey(rand.Reader, RSAKeyBits)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	spki, err = x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	pkcs8, err = x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return spki, pkcs8, nil
}

// ParsePublicKeySPKI decodes an SPKI DER blob into an RSA public key.
func ParsePublicKeySPKI(der []byte) (*rsa.PublicKey, error) {
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse SPKI: %w", err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, ErrNotRSAPublicKey
	}
	return rsaPub, nil
}

// ParsePrivateKeyPKCS8 decodes a PKCS#8 DER blob into an RSA private key.
func ParsePrivateKeyPKCS8(der []byte) (*rsa.PrivateKey, error) {
	priv, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse PKCS#8: %w", err)
	}
	rsaPriv, ok := priv.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrNotRSAPrivateKey
	}
	return rsaPriv, nil
}

// WrapKeyOAEP encrypts a symmetric key under the SPKI-encoded public key
// using RSA-OAEP with SHA-256 and an empty label.
func WrapKeyOAEP(spki, key []byte) ([]byte, error) {
	pub, err := ParsePublicKeySPKI(spki)
	if err != nil {
		return nil, err
	}
	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, key, nil)
	if err != nil {
		return nil, fmt.Errorf("oaep wrap: %w", err)
	}
	return wrapped, nil
}

// UnwrapKeyOAEP recovers a symmetric key wrapped under the matching public
// key. A non-matching private key or corrupted blob yields ErrKeyUnwrap.
func UnwrapKeyOAEP(pkcs8, wrapped []byte) ([]byte, error) {
	priv, err := ParsePrivateKeyPKCS8(pkcs8)
	if err != nil {
		return nil, err
	}
	key, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, wrapped, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnwrap, err)
	}
	return key, nil
}
