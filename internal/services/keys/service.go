package keys

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/kumaruseru/crown-messaging/internal/crypto"
	"github.com/kumaruseru/crown-messaging/internal/domain"
)

const defaultCacheSize = 1024

var (
	// ErrPeerKeyNotInitialized is returned when a peer has never initialized
	// encryption. Recoverable: the caller can prompt the peer or queue the send.
	ErrPeerKeyNotInitialized = errors.New("peer has not initialized encryption")
)

// Service manages user key pairs: one-time provisioning, at-rest protection,
// fingerprints, and cached peer public key lookup.
//
// A key pair is generated at most once per user and never rotated here;
// rotation would orphan decryption of every envelope wrapped under the old
// public key.
type Service struct {
	store domain.UserStore
	cache *lru.Cache // UserID -> domain.PublicKeyRecord, immutable once published
	now   func() time.Time
}

// New returns a key service backed by the given user store. cacheSize bounds
// the peer public key cache; zero or negative selects the default.
func New(store domain.UserStore, cacheSize int) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Service{store: store, cache: cache, now: time.Now}, nil
}

// InitializeUserEncryption provisions a key pair for the user. Idempotent:
// existing keys come back unchanged. With a non-empty secret the private key
// is wrapped under a PBKDF2-derived key before it is persisted; without one
// (federated-login accounts) the PKCS#8 blob is stored unwrapped and flagged
// ProtectionNone.
func (s *Service) InitializeUserEncryption(
	ctx context.Context,
	user domain.UserID,
	secret string,
) (domain.UserKeyPair, error) {
	existing, ok, err := s.store.GetUser(ctx, user)
	if err != nil {
		return domain.UserKeyPair{}, fmt.Errorf("load user %q: %w", user, err)
	}
	if ok && len(existing.PublicKey) > 0 {
		return existing, nil
	}

	spki, pkcs8, err := crypto.GenerateRSAKeyPair()
	if err != nil {
		return domain.UserKeyPair{}, err
	}

	pair := domain.UserKeyPair{
		UserID:      user,
		PublicKey:   spki,
		PrivateKey:  pkcs8,
		Protection:  domain.ProtectionNone,
		Fingerprint: domain.Fingerprint(crypto.Fingerprint(spki)),
		GeneratedAt: s.now().UTC(),
	}
	if secret != "" {
		protected, err := crypto.ProtectPrivateKey(pkcs8, secret)
		if err != nil {
			return domain.UserKeyPair{}, fmt.Errorf("protect private key: %w", err)
		}
		pair.PrivateKey = protected.Ciphertext
		pair.Protection = domain.ProtectionPBKDF2
		pair.Salt = protected.Salt
		pair.IV = protected.IV
	}

	if err := s.store.SaveUserKeys(ctx, pair); err != nil {
		return domain.UserKeyPair{}, fmt.Errorf("persist keys for %q: %w", user, err)
	}
	return pair, nil
}

// FetchPeerPublicKey returns another user's public key record, read through
// a bounded LRU cache. Concurrent misses for the same user may both fetch;
// last write wins, which is fine because a published record never changes.
func (s *Service) FetchPeerPublicKey(
	ctx context.Context,
	user domain.UserID,
) (domain.PublicKeyRecord, error) {
	if cached, ok := s.cache.Get(user); ok {
		return cached.(domain.PublicKeyRecord), nil
	}

	pair, ok, err := s.store.GetUser(ctx, user)
	if err != nil {
		return domain.PublicKeyRecord{}, fmt.Errorf("fetch peer key %q: %w", user, err)
	}
	if !ok || len(pair.PublicKey) == 0 {
		return domain.PublicKeyRecord{}, fmt.Errorf("%w: %q", ErrPeerKeyNotInitialized, user)
	}

	record := domain.PublicKeyRecord{
		UserID:      pair.UserID,
		PublicKey:   pair.PublicKey,
		Fingerprint: pair.Fingerprint,
	}
	s.cache.Add(user, record)
	return record, nil
}

// UnlockPrivateKey returns the user's PKCS#8 private key DER, unwrapping the
// at-rest protection when one was applied. A wrong secret surfaces as
// crypto.ErrKeyUnwrap.
func (s *Service) UnlockPrivateKey(
	ctx context.Context,
	user domain.UserID,
	secret string,
) ([]byte, error) {
	pair, ok, err := s.store.GetUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", user, err)
	}
	if !ok || len(pair.PrivateKey) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrPeerKeyNotInitialized, user)
	}

	switch pair.Protection {
	case domain.ProtectionPBKDF2:
		return crypto.UnprotectPrivateKey(crypto.ProtectedKey{
			Ciphertext: pair.PrivateKey,
			Salt:       pair.Salt,
			IV:         pair.IV,
		}, secret)
	default:
		return pair.PrivateKey, nil
	}
}

// Compile-time assertion that Service implements domain.KeyService.
var _ domain.KeyService = (*Service)(nil)
