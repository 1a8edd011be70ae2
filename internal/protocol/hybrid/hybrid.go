package hybrid

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/kumaruseru/crown-messaging/internal/crypto"
	"github.com/kumaruseru/crown-messaging/internal/util/memzero"
)

// Role selects which wrapped-key field a viewer unwraps.
type Role int

const (
	// RoleSender is the participant who produced the envelope.
	RoleSender Role = iota
	// RoleReceiver is the other participant.
	RoleReceiver
)

// String returns the role name.
func (r Role) String() string {
	if r == RoleSender {
		return "sender"
	}
	return "receiver"
}

// Payload carries the six cryptographic fields of a message envelope.
// Everything is raw bytes here; base64 framing belongs to the wire codec.
type Payload struct {
	Ciphertext         []byte
	IV                 []byte
	AuthTag            []byte
	SenderWrappedKey   []byte
	ReceiverWrappedKey []byte
	PlaintextHash      []byte
}

// Result is the outcome of a decrypt.
//
// Verified is false when the stored plaintext hash did not match the
// recovered plaintext. The plaintext is still returned: the caller surfaces
// the message as unverified instead of discarding it.
type Result struct {
	Plaintext []byte
	Verified  bool
}

// ErrEmptyPlaintext rejects encrypting a zero-length message.
var ErrEmptyPlaintext = errors.New("empty plaintext")

// Encrypt runs the per-message protocol:
//
//	plaintext -> AES-256-GCM under a fresh key K and fresh IV, with the
//	fixed context AAD -> K wrapped under the receiver's then the sender's
//	public key -> clear SHA-256 of the plaintext.
//
// The sender's wrapped copy exists so the sender can re-read their own sent
// messages later; neither participant ever needs the other's private key.
// No state survives the call and no partial payload is ever returned.
func Encrypt(s Suite, plaintext, senderSPKI, receiverSPKI []byte) (Payload, error) {
	if len(plaintext) == 0 {
		return Payload{}, ErrEmptyPlaintext
	}

	key, err := s.NewSymmetricKey()
	if err != nil {
		return Payload{}, fmt.Errorf("message key: %w", err)
	}
	defer memzero.Wipe(key)

	iv, err := s.NewIV()
	if err != nil {
		return Payload{}, fmt.Errorf("iv: %w", err)
	}

	ciphertext, tag, err := s.SealGCM(key, iv, []byte(crypto.MessageAAD), plaintext)
	if err != nil {
		return Payload{}, fmt.Errorf("seal: %w", err)
	}

	receiverWrapped, err := s.WrapKey(receiverSPKI, key)
	if err != nil {
		return Payload{}, fmt.Errorf("wrap for receiver: %w", err)
	}
	senderWrapped, err := s.WrapKey(senderSPKI, key)
	if err != nil {
		return Payload{}, fmt.Errorf("wrap for sender: %w", err)
	}

	return Payload{
		Ciphertext:         ciphertext,
		IV:                 iv,
		AuthTag:            tag,
		SenderWrappedKey:   senderWrapped,
		ReceiverWrappedKey: receiverWrapped,
		PlaintextHash:      s.Digest(plaintext),
	}, nil
}

// Decrypt reverses Encrypt for one viewer.
//
// Failure modes, in order: crypto.ErrKeyUnwrap when the private key cannot
// recover K, crypto.ErrAuthTagMismatch when authentication fails. A hash
// mismatch after successful decryption is not an error; it comes back as
// Verified=false with the plaintext intact.
func Decrypt(s Suite, p Payload, viewerPKCS8 []byte, role Role) (Result, error) {
	wrapped := p.ReceiverWrappedKey
	if role == RoleSender {
		wrapped = p.SenderWrappedKey
	}

	key, err := s.UnwrapKey(viewerPKCS8, wrapped)
	if err != nil {
		return Result{}, err
	}
	defer memzero.Wipe(key)

	plaintext, err := s.OpenGCM(key, p.IV, []byte(crypto.MessageAAD), p.Ciphertext, p.AuthTag)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Plaintext: plaintext,
		Verified:  verifyDigest(s, plaintext, p.PlaintextHash),
	}, nil
}

// verifyDigest compares the stored hash against a fresh digest of the
// plaintext in constant time.
func verifyDigest(s Suite, plaintext, stored []byte) bool {
	sum := s.Digest(plaintext)
	if len(stored) != len(sum) {
		return false
	}
	return subtle.ConstantTimeCompare(sum, stored) == 1
}
