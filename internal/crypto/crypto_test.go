package crypto_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kumaruseru/crown-messaging/internal/crypto"
)

// makeKeyPair generates a fresh RSA pair for tests that need real DER.
func makeKeyPair(t *testing.T) (spki, pkcs8 []byte) {
	t.Helper()
	spki, pkcs8, err := crypto.GenerateRSAKeyPair()
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair: %v", err)
	}
	return spki, pkcs8
}

func TestSealOpenGCM_RoundTrip(t *testing.T) {
	key, err := crypto.NewSymmetricKey()
	if err != nil {
		t.Fatalf("NewSymmetricKey: %v", err)
	}
	iv, err := crypto.NewIV()
	if err != nil {
		t.Fatalf("NewIV: %v", err)
	}
	if len(key) != crypto.AESKeySize {
		t.Fatalf("key size = %d, want %d", len(key), crypto.AESKeySize)
	}
	if len(iv) != crypto.GCMIVSize {
		t.Fatalf("iv size = %d, want %d", len(iv), crypto.GCMIVSize)
	}

	plaintext := []byte("the quick brown fox")
	ct, tag, err := crypto.SealGCM(key, iv, []byte(crypto.MessageAAD), plaintext)
	if err != nil {
		t.Fatalf("SealGCM: %v", err)
	}
	if len(tag) != crypto.GCMTagSize {
		t.Fatalf("tag size = %d, want %d", len(tag), crypto.GCMTagSize)
	}
	if len(ct) != len(plaintext) {
		t.Fatalf("ciphertext size = %d, want %d", len(ct), len(plaintext))
	}

	got, err := crypto.OpenGCM(key, iv, []byte(crypto.MessageAAD), ct, tag)
	if err != nil {
		t.Fatalf("OpenGCM: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("plaintext mismatch: got %q", got)
	}
}

func TestOpenGCM_TamperedCiphertext_Fails(t *testing.T) {
	key, _ := crypto.NewSymmetricKey()
	iv, _ := crypto.NewIV()
	ct, tag, err := crypto.SealGCM(key, iv, nil, []byte("payload"))
	if err != nil {
		t.Fatalf("SealGCM: %v", err)
	}

	ct[0] ^= 0x01
	if _, err := crypto.OpenGCM(key, iv, nil, ct, tag); !errors.Is(err, crypto.ErrAuthTagMismatch) {
		t.Fatalf("want ErrAuthTagMismatch, got %v", err)
	}
}

func TestOpenGCM_WrongAAD_Fails(t *testing.T) {
	key, _ := crypto.NewSymmetricKey()
	iv, _ := crypto.NewIV()
	ct, tag, err := crypto.SealGCM(key, iv, []byte("aad-one"), []byte("payload"))
	if err != nil {
		t.Fatalf("SealGCM: %v", err)
	}
	if _, err := crypto.OpenGCM(key, iv, []byte("aad-two"), ct, tag); !errors.Is(err, crypto.ErrAuthTagMismatch) {
		t.Fatalf("want ErrAuthTagMismatch, got %v", err)
	}
}

func TestSealGCM_BadKeySize_Fails(t *testing.T) {
	iv, _ := crypto.NewIV()
	if _, _, err := crypto.SealGCM(make([]byte, 16), iv, nil, []byte("x")); !errors.Is(err, crypto.ErrInvalidKeySize) {
		t.Fatalf("want ErrInvalidKeySize, got %v", err)
	}
}

func TestWrapUnwrapOAEP_RoundTrip(t *testing.T) {
	spki, pkcs8 := makeKeyPair(t)
	key, _ := crypto.NewSymmetricKey()

	wrapped, err := crypto.WrapKeyOAEP(spki, key)
	if err != nil {
		t.Fatalf("WrapKeyOAEP: %v", err)
	}
	// RSA-2048 ciphertext is always modulus sized.
	if len(wrapped) != 256 {
		t.Fatalf("wrapped size = %d, want 256", len(wrapped))
	}

	got, err := crypto.UnwrapKeyOAEP(pkcs8, wrapped)
	if err != nil {
		t.Fatalf("UnwrapKeyOAEP: %v", err)
	}
	if !bytes.Equal(got, key) {
		t.Fatal("unwrapped key differs")
	}
}

func TestUnwrapOAEP_WrongKey_Fails(t *testing.T) {
	spki, _ := makeKeyPair(t)
	_, otherPriv := makeKeyPair(t)
	key, _ := crypto.NewSymmetricKey()

	wrapped, err := crypto.WrapKeyOAEP(spki, key)
	if err != nil {
		t.Fatalf("WrapKeyOAEP: %v", err)
	}
	if _, err := crypto.UnwrapKeyOAEP(otherPriv, wrapped); !errors.Is(err, crypto.ErrKeyUnwrap) {
		t.Fatalf("want ErrKeyUnwrap, got %v", err)
	}
}

func TestProtectPrivateKey_RoundTrip(t *testing.T) {
	_, pkcs8 := makeKeyPair(t)

	protected, err := crypto.ProtectPrivateKey(pkcs8, "hunter2")
	if err != nil {
		t.Fatalf("ProtectPrivateKey: %v", err)
	}
	if len(protected.Salt) != crypto.PBKDF2SaltSize {
		t.Fatalf("salt size = %d, want %d", len(protected.Salt), crypto.PBKDF2SaltSize)
	}
	if bytes.Equal(protected.Ciphertext[:len(pkcs8)], pkcs8) {
		t.Fatal("private key stored in the clear")
	}

	got, err := crypto.UnprotectPrivateKey(protected, "hunter2")
	if err != nil {
		t.Fatalf("UnprotectPrivateKey: %v", err)
	}
	if !bytes.Equal(got, pkcs8) {
		t.Fatal("recovered key differs")
	}
}

func TestProtectPrivateKey_WrongSecret_Fails(t *testing.T) {
	_, pkcs8 := makeKeyPair(t)
	protected, err := crypto.ProtectPrivateKey(pkcs8, "correct")
	if err != nil {
		t.Fatalf("ProtectPrivateKey: %v", err)
	}
	if _, err := crypto.UnprotectPrivateKey(protected, "wrong"); !errors.Is(err, crypto.ErrKeyUnwrap) {
		t.Fatalf("want ErrKeyUnwrap, got %v", err)
	}
}

func TestFingerprint_Format(t *testing.T) {
	spki, _ := makeKeyPair(t)
	fp := crypto.Fingerprint(spki)

	parts := strings.Split(fp, ":")
	if len(parts) != crypto.HashSize {
		t.Fatalf("fingerprint has %d groups, want %d", len(parts), crypto.HashSize)
	}
	for _, p := range parts {
		if len(p) != 2 {
			t.Fatalf("group %q is not a hex pair", p)
		}
		if p != strings.ToUpper(p) {
			t.Fatalf("group %q is not uppercase", p)
		}
	}
	if fp != crypto.Fingerprint(spki) {
		t.Fatal("fingerprint not deterministic")
	}
}

func TestSessionID_Symmetric(t *testing.T) {
	ab := crypto.SessionID("alice", "bob")
	ba := crypto.SessionID("bob", "alice")
	if ab != ba {
		t.Fatalf("session id not symmetric: %s vs %s", ab, ba)
	}
	if len(ab) != 64 {
		t.Fatalf("session id length = %d, want 64", len(ab))
	}
	if ab != strings.ToLower(ab) {
		t.Fatal("session id not lowercase hex")
	}
}

func TestSessionID_KnownVector(t *testing.T) {
	// sha256("alice:bob")
	const want = "1e2af26470aae83866fd22e2907b8d1be05975d952e4158989cbd18933bd703e"
	if got := crypto.SessionID("alice", "bob"); got != want {
		t.Fatalf("session id = %s, want %s", got, want)
	}
}

func TestSessionID_SelfConversation(t *testing.T) {
	// A user messaging themself is a valid session.
	aa := crypto.SessionID("alice", "alice")
	if aa == "" || aa != crypto.SessionID("alice", "alice") {
		t.Fatal("self session id unstable")
	}
}

func TestVerifyPlaintextHash(t *testing.T) {
	plaintext := []byte("hello")
	h := crypto.HashPlaintext(plaintext)
	if len(h) != crypto.HashSize {
		t.Fatalf("hash size = %d, want %d", len(h), crypto.HashSize)
	}
	if !crypto.VerifyPlaintextHash(plaintext, h) {
		t.Fatal("hash should verify")
	}
	if crypto.VerifyPlaintextHash([]byte("hellp"), h) {
		t.Fatal("hash should not verify for different plaintext")
	}
}
