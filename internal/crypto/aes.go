package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
)

// NewSymmetricKey returns a fresh random 256-bit key. One key per message,
// never reused.
func NewSymmetricKey() ([]byte, error) {
	key := make([]byte, AESKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("symmetric key: %w", err)
	}
	return key, nil
}

// NewIV returns a fresh random IV of the canonical length.
func NewIV() ([]byte, error) {
	iv := make([]byte, GCMIVSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("iv: %w", err)
	}
	return iv, nil
}

// SealGCM encrypts plaintext with AES-256-GCM and returns the ciphertext and
// the 16-byte authentication tag separately, matching the wire layout.
func SealGCM(key, iv, aad, plaintext []byte) (ciphertext, tag []byte, err error) {
	aead, err := newGCM(key, iv)
	if err != nil {
		return nil, nil, err
	}
	sealed := aead.Seal(nil, iv, plaintext, aad)
	split := len(sealed) - GCMTagSize
	return sealed[:split], sealed[split:], nil
}

// OpenGCM decrypts and authenticates ciphertext||tag. Any altered byte of
// ciphertext, IV or tag yields ErrAuthTagMismatch.
func OpenGCM(key, iv, aad, ciphertext, tag []byte) ([]byte, error) {
	aead, err := newGCM(key, iv)
	if err != nil {
		return nil, err
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	plaintext, err := aead.Open(nil, iv, sealed, aad)
	if err != nil {
		return nil, ErrAuthTagMismatch
	}
	return plaintext, nil
}

func newGCM(key, iv []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}
	if len(iv) != GCMIVSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidIVSize, len(iv), GCMIVSize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
