package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/kumaruseru/crown-messaging/internal/util/memzero"
)

// ProtectedKey is a private key blob wrapped under a password-derived key.
type ProtectedKey struct {
	Ciphertext []byte // PKCS#8 DER sealed with AES-256-GCM, tag appended
	Salt       []byte
	IV         []byte
}

// ProtectPrivateKey wraps a PKCS#8 private key under a key derived from the
// user's password secret with PBKDF2-HMAC-SHA256.
//
// Accounts without a password secret skip this layer entirely; that decision
// belongs to the key service, not here.
func ProtectPrivateKey(pkcs8 []byte, secret string) (ProtectedKey, error) {
	salt := make([]byte, PBKDF2SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return ProtectedKey{}, fmt.Errorf("salt: %w", err)
	}
	iv, err := NewIV()
	if err != nil {
		return ProtectedKey{}, err
	}

	kek := deriveWrapKey(secret, salt)
	defer memzero.Wipe(kek)

	ct, tag, err := SealGCM(kek, iv, nil, pkcs8)
	if err != nil {
		return ProtectedKey{}, err
	}
	return ProtectedKey{
		Ciphertext: append(ct, tag...),
		Salt:       salt,
		IV:         iv,
	}, nil
}

// UnprotectPrivateKey reverses ProtectPrivateKey. A wrong secret or mangled
// blob surfaces as ErrKeyUnwrap so callers see one unwrap failure mode.
func UnprotectPrivateKey(p ProtectedKey, secret string) ([]byte, error) {
	if len(p.Salt) != PBKDF2SaltSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSaltSize, len(p.Salt), PBKDF2SaltSize)
	}
	if len(p.Ciphertext) < GCMTagSize {
		return nil, ErrKeyUnwrap
	}

	kek := deriveWrapKey(secret, p.Salt)
	defer memzero.Wipe(kek)

	split := len(p.Ciphertext) - GCMTagSize
	pkcs8, err := OpenGCM(kek, p.IV, nil, p.Ciphertext[:split], p.Ciphertext[split:])
	if err != nil {
		return nil, fmt.Errorf("%w: wrong secret or corrupted key blob", ErrKeyUnwrap)
	}
	return pkcs8, nil
}

func deriveWrapKey(secret string, salt []byte) []byte {
	return pbkdf2.Key([]byte(secret), salt, PBKDF2Iterations, AESKeySize, sha256.New)
}
