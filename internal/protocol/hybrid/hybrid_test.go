package hybrid_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kumaruseru/crown-messaging/internal/crypto"
	"github.com/kumaruseru/crown-messaging/internal/protocol/hybrid"
	"github.com/kumaruseru/crown-messaging/internal/suite/native"
	"github.com/kumaruseru/crown-messaging/internal/suite/web"
)

// suites returns both host implementations; most tests run against each.
func suites() map[string]hybrid.Suite {
	return map[string]hybrid.Suite{
		"native": native.New(),
		"web":    web.New(),
	}
}

func makeKeyPair(t *testing.T) (spki, pkcs8 []byte) {
	t.Helper()
	spki, pkcs8, err := crypto.GenerateRSAKeyPair()
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair: %v", err)
	}
	return spki, pkcs8
}

func TestEncryptDecrypt_BothRoles(t *testing.T) {
	senderPub, senderPriv := makeKeyPair(t)
	receiverPub, receiverPriv := makeKeyPair(t)
	plaintext := []byte("hello")

	for name, s := range suites() {
		t.Run(name, func(t *testing.T) {
			p, err := hybrid.Encrypt(s, plaintext, senderPub, receiverPub)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			if len(p.IV) != crypto.GCMIVSize || len(p.AuthTag) != crypto.GCMTagSize {
				t.Fatalf("iv/tag sizes = %d/%d", len(p.IV), len(p.AuthTag))
			}
			if bytes.Contains(p.Ciphertext, plaintext) {
				t.Fatal("plaintext visible in ciphertext")
			}

			forReceiver, err := hybrid.Decrypt(s, p, receiverPriv, hybrid.RoleReceiver)
			if err != nil {
				t.Fatalf("receiver Decrypt: %v", err)
			}
			if !bytes.Equal(forReceiver.Plaintext, plaintext) || !forReceiver.Verified {
				t.Fatalf("receiver got %q verified=%v", forReceiver.Plaintext, forReceiver.Verified)
			}

			forSender, err := hybrid.Decrypt(s, p, senderPriv, hybrid.RoleSender)
			if err != nil {
				t.Fatalf("sender Decrypt: %v", err)
			}
			if !bytes.Equal(forSender.Plaintext, plaintext) || !forSender.Verified {
				t.Fatalf("sender got %q verified=%v", forSender.Plaintext, forSender.Verified)
			}
		})
	}
}

func TestEncrypt_EmptyPlaintext_Rejected(t *testing.T) {
	senderPub, _ := makeKeyPair(t)
	receiverPub, _ := makeKeyPair(t)
	for name, s := range suites() {
		t.Run(name, func(t *testing.T) {
			if _, err := hybrid.Encrypt(s, nil, senderPub, receiverPub); !errors.Is(err, hybrid.ErrEmptyPlaintext) {
				t.Fatalf("want ErrEmptyPlaintext, got %v", err)
			}
		})
	}
}

func TestDecrypt_Tampered_Fails(t *testing.T) {
	senderPub, _ := makeKeyPair(t)
	receiverPub, receiverPriv := makeKeyPair(t)

	for name, s := range suites() {
		t.Run(name, func(t *testing.T) {
			fresh := func() hybrid.Payload {
				p, err := hybrid.Encrypt(s, []byte("payload"), senderPub, receiverPub)
				if err != nil {
					t.Fatalf("Encrypt: %v", err)
				}
				return p
			}

			cases := map[string]func(*hybrid.Payload){
				"ciphertext": func(p *hybrid.Payload) { p.Ciphertext[0] ^= 0x01 },
				"iv":         func(p *hybrid.Payload) { p.IV[0] ^= 0x01 },
				"tag":        func(p *hybrid.Payload) { p.AuthTag[0] ^= 0x01 },
			}
			for field, flip := range cases {
				p := fresh()
				flip(&p)
				_, err := hybrid.Decrypt(s, p, receiverPriv, hybrid.RoleReceiver)
				if !errors.Is(err, crypto.ErrAuthTagMismatch) {
					t.Fatalf("tampered %s: want ErrAuthTagMismatch, got %v", field, err)
				}
			}
		})
	}
}

func TestDecrypt_WrongPrivateKey_Fails(t *testing.T) {
	senderPub, _ := makeKeyPair(t)
	receiverPub, _ := makeKeyPair(t)
	_, strangerPriv := makeKeyPair(t)

	for name, s := range suites() {
		t.Run(name, func(t *testing.T) {
			p, err := hybrid.Encrypt(s, []byte("payload"), senderPub, receiverPub)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			_, err = hybrid.Decrypt(s, p, strangerPriv, hybrid.RoleReceiver)
			if !errors.Is(err, crypto.ErrKeyUnwrap) {
				t.Fatalf("want ErrKeyUnwrap, got %v", err)
			}
		})
	}
}

func TestDecrypt_HashMismatch_Unverified(t *testing.T) {
	senderPub, _ := makeKeyPair(t)
	receiverPub, receiverPriv := makeKeyPair(t)

	for name, s := range suites() {
		t.Run(name, func(t *testing.T) {
			p, err := hybrid.Encrypt(s, []byte("payload"), senderPub, receiverPub)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			// The clear hash sits outside the authenticated envelope, so a
			// flipped bit must surface as unverified content, not an error.
			p.PlaintextHash[0] ^= 0x01

			got, err := hybrid.Decrypt(s, p, receiverPriv, hybrid.RoleReceiver)
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}
			if got.Verified {
				t.Fatal("mismatched hash reported as verified")
			}
			if !bytes.Equal(got.Plaintext, []byte("payload")) {
				t.Fatalf("plaintext lost: %q", got.Plaintext)
			}
		})
	}
}

// Each host must be able to read what the other wrote.
func TestCrossSuite_Interop(t *testing.T) {
	senderPub, senderPriv := makeKeyPair(t)
	receiverPub, receiverPriv := makeKeyPair(t)
	plaintext := []byte("cross-host message")

	pairs := []struct {
		name     string
		enc, dec hybrid.Suite
	}{
		{"native-to-web", native.New(), web.New()},
		{"web-to-native", web.New(), native.New()},
	}
	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			p, err := hybrid.Encrypt(tc.enc, plaintext, senderPub, receiverPub)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}

			got, err := hybrid.Decrypt(tc.dec, p, receiverPriv, hybrid.RoleReceiver)
			if err != nil {
				t.Fatalf("receiver Decrypt: %v", err)
			}
			if !bytes.Equal(got.Plaintext, plaintext) || !got.Verified {
				t.Fatalf("receiver got %q verified=%v", got.Plaintext, got.Verified)
			}

			asSender, err := hybrid.Decrypt(tc.dec, p, senderPriv, hybrid.RoleSender)
			if err != nil {
				t.Fatalf("sender Decrypt: %v", err)
			}
			if !bytes.Equal(asSender.Plaintext, plaintext) {
				t.Fatalf("sender got %q", asSender.Plaintext)
			}
		})
	}
}

// GCM and the digest are deterministic, so the two hosts must agree
// byte-for-byte on fixed inputs. OAEP is randomized and is covered by the
// interop test instead.
func TestCrossSuite_DeterministicPrimitivesAgree(t *testing.T) {
	n, w := native.New(), web.New()

	key := bytes.Repeat([]byte{0x42}, crypto.AESKeySize)
	iv := bytes.Repeat([]byte{0x24}, crypto.GCMIVSize)
	aad := []byte(crypto.MessageAAD)
	plaintext := []byte("determinism check")

	nc, nt, err := n.SealGCM(key, iv, aad, plaintext)
	if err != nil {
		t.Fatalf("native SealGCM: %v", err)
	}
	wc, wt, err := w.SealGCM(key, iv, aad, plaintext)
	if err != nil {
		t.Fatalf("web SealGCM: %v", err)
	}
	if !bytes.Equal(nc, wc) || !bytes.Equal(nt, wt) {
		t.Fatal("hosts disagree on AES-GCM output")
	}

	if !bytes.Equal(n.Digest(plaintext), w.Digest(plaintext)) {
		t.Fatal("hosts disagree on digest")
	}
}
