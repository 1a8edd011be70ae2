package store_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kumaruseru/crown-messaging/internal/domain"
	"github.com/kumaruseru/crown-messaging/internal/store"
)

type stores interface {
	domain.UserStore
	domain.MessageStore
}

// each runs a subtest against both store implementations.
func each(t *testing.T, fn func(t *testing.T, s stores)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) {
		fn(t, store.NewMemoryStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "crown.db"))
		if err != nil {
			t.Fatalf("OpenSQLite: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		fn(t, s)
	})
}

func sampleKeys(user domain.UserID) domain.UserKeyPair {
	return domain.UserKeyPair{
		UserID:      user,
		PublicKey:   []byte("spki-der"),
		PrivateKey:  []byte("wrapped-pkcs8"),
		Protection:  domain.ProtectionPBKDF2,
		Salt:        []byte("0123456789abcdef"),
		IV:          []byte("iv-12-bytes!"),
		Fingerprint: "AA:BB",
		GeneratedAt: time.Unix(1700000000, 0).UTC(),
	}
}

func sampleEnvelope(id string, session domain.SessionID, from, to domain.UserID, at time.Time) domain.MessageEnvelope {
	return domain.MessageEnvelope{
		ID:                 domain.EnvelopeID(id),
		SenderID:           from,
		ReceiverID:         to,
		SessionID:          session,
		Ciphertext:         []byte("ct-" + id),
		IV:                 []byte("iv-12-bytes!"),
		AuthTag:            bytes.Repeat([]byte{0xAA}, 16),
		SenderWrappedKey:   []byte("swk"),
		ReceiverWrappedKey: []byte("rwk"),
		PlaintextHash:      bytes.Repeat([]byte{0xBB}, 32),
		MessageType:        domain.MessageTypeText,
		SentAt:             at,
	}
}

func TestUserKeys_SaveGet(t *testing.T) {
	each(t, func(t *testing.T, s stores) {
		ctx := context.Background()

		if _, ok, err := s.GetUser(ctx, "alice"); err != nil || ok {
			t.Fatalf("empty store: ok=%v err=%v", ok, err)
		}

		want := sampleKeys("alice")
		if err := s.SaveUserKeys(ctx, want); err != nil {
			t.Fatalf("SaveUserKeys: %v", err)
		}
		got, ok, err := s.GetUser(ctx, "alice")
		if err != nil || !ok {
			t.Fatalf("GetUser: ok=%v err=%v", ok, err)
		}
		if !bytes.Equal(got.PublicKey, want.PublicKey) ||
			got.Protection != want.Protection ||
			got.Fingerprint != want.Fingerprint ||
			!got.GeneratedAt.Equal(want.GeneratedAt) {
			t.Fatalf("record mismatch: %+v", got)
		}

		// Save again replaces.
		want.Fingerprint = "CC:DD"
		if err := s.SaveUserKeys(ctx, want); err != nil {
			t.Fatalf("re-save: %v", err)
		}
		got, _, _ = s.GetUser(ctx, "alice")
		if got.Fingerprint != "CC:DD" {
			t.Fatalf("replace did not stick: %s", got.Fingerprint)
		}
	})
}

func TestEnvelopes_SessionOrderAndPaging(t *testing.T) {
	each(t, func(t *testing.T, s stores) {
		ctx := context.Background()
		session := domain.SessionID("sess-1")
		base := time.Unix(1700000000, 0).UTC()

		// Insert out of send order.
		for _, e := range []struct {
			id  string
			off time.Duration
		}{
			{"m2", 2 * time.Minute},
			{"m1", 1 * time.Minute},
			{"m3", 3 * time.Minute},
		} {
			env := sampleEnvelope(e.id, session, "alice", "bob", base.Add(e.off))
			if err := s.SaveEnvelope(ctx, env); err != nil {
				t.Fatalf("SaveEnvelope %s: %v", e.id, err)
			}
		}

		envs, err := s.EnvelopesBySession(ctx, session, domain.Page{})
		if err != nil {
			t.Fatalf("EnvelopesBySession: %v", err)
		}
		if len(envs) != 3 {
			t.Fatalf("got %d envelopes", len(envs))
		}
		for i, want := range []string{"m1", "m2", "m3"} {
			if envs[i].ID != domain.EnvelopeID(want) {
				t.Fatalf("position %d = %s, want %s", i, envs[i].ID, want)
			}
		}

		page, err := s.EnvelopesBySession(ctx, session, domain.Page{Offset: 1, Limit: 1})
		if err != nil {
			t.Fatalf("paged list: %v", err)
		}
		if len(page) != 1 || page[0].ID != "m2" {
			t.Fatalf("page = %+v", page)
		}

		if other, _ := s.EnvelopesBySession(ctx, "sess-other", domain.Page{}); len(other) != 0 {
			t.Fatalf("foreign session returned %d envelopes", len(other))
		}
	})
}

func TestEnvelopes_MarkRead(t *testing.T) {
	each(t, func(t *testing.T, s stores) {
		ctx := context.Background()
		session := domain.SessionID("sess-1")
		base := time.Unix(1700000000, 0).UTC()

		toBob := sampleEnvelope("to-bob", session, "alice", "bob", base)
		toAlice := sampleEnvelope("to-alice", session, "bob", "alice", base.Add(time.Minute))
		for _, env := range []domain.MessageEnvelope{toBob, toAlice} {
			if err := s.SaveEnvelope(ctx, env); err != nil {
				t.Fatalf("SaveEnvelope: %v", err)
			}
		}

		stamp := base.Add(2 * time.Minute)
		if err := s.MarkRead(ctx, session, "bob", stamp); err != nil {
			t.Fatalf("MarkRead: %v", err)
		}

		envs, _ := s.EnvelopesBySession(ctx, session, domain.Page{})
		for _, env := range envs {
			switch env.ID {
			case "to-bob":
				if env.ReadAt == nil || !env.ReadAt.Equal(stamp) {
					t.Fatalf("to-bob read stamp = %v", env.ReadAt)
				}
			case "to-alice":
				if env.ReadAt != nil {
					t.Fatal("bob's own message stamped read")
				}
			}
		}
	})
}

func TestEnvelopes_SoftDelete(t *testing.T) {
	each(t, func(t *testing.T, s stores) {
		ctx := context.Background()
		session := domain.SessionID("sess-1")
		env := sampleEnvelope("m1", session, "alice", "bob", time.Unix(1700000000, 0).UTC())
		if err := s.SaveEnvelope(ctx, env); err != nil {
			t.Fatalf("SaveEnvelope: %v", err)
		}

		if err := s.SoftDelete(ctx, "m1", "bob"); !errors.Is(err, store.ErrNotSender) {
			t.Fatalf("want ErrNotSender, got %v", err)
		}
		if err := s.SoftDelete(ctx, "missing", "alice"); !errors.Is(err, store.ErrEnvelopeNotFound) {
			t.Fatalf("want ErrEnvelopeNotFound, got %v", err)
		}
		if err := s.SoftDelete(ctx, "m1", "alice"); err != nil {
			t.Fatalf("SoftDelete: %v", err)
		}

		envs, _ := s.EnvelopesBySession(ctx, session, domain.Page{})
		if len(envs) != 1 || !envs[0].SoftDeleted {
			t.Fatalf("deleted flag missing: %+v", envs)
		}
	})
}
