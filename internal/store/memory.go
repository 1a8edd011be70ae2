package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/kumaruseru/crown-messaging/internal/domain"
)

var (
	// ErrEnvelopeNotFound is returned when an envelope id is unknown.
	ErrEnvelopeNotFound = errors.New("envelope not found")
	// ErrNotSender is returned when someone other than the original sender
	// tries to delete an envelope.
	ErrNotSender = errors.New("only the sender may delete a message")
)

// DefaultPageLimit bounds a session listing when the caller passes none.
const DefaultPageLimit = 100

// MemoryStore is an in-process UserStore and MessageStore, used by tests and
// the exchange server's non-persistent mode.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[domain.UserID]domain.UserKeyPair
	envelopes map[domain.EnvelopeID]domain.MessageEnvelope
	sessions  map[domain.SessionID][]domain.EnvelopeID // in arrival order
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[domain.UserID]domain.UserKeyPair),
		envelopes: make(map[domain.EnvelopeID]domain.MessageEnvelope),
		sessions:  make(map[domain.SessionID][]domain.EnvelopeID),
	}
}

// GetUser returns the stored key pair for a user.
func (s *MemoryStore) GetUser(
	_ context.Context,
	id domain.UserID,
) (domain.UserKeyPair, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pair, ok := s.users[id]
	return pair, ok, nil
}

// SaveUserKeys stores or replaces a user's key record.
func (s *MemoryStore) SaveUserKeys(_ context.Context, keys domain.UserKeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[keys.UserID] = keys
	return nil
}

// SaveEnvelope appends an envelope to its session.
func (s *MemoryStore) SaveEnvelope(_ context.Context, env domain.MessageEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.envelopes[env.ID]; !exists {
		s.sessions[env.SessionID] = append(s.sessions[env.SessionID], env.ID)
	}
	s.envelopes[env.ID] = env
	return nil
}

// EnvelopesBySession lists a page of a session in send order.
func (s *MemoryStore) EnvelopesBySession(
	_ context.Context,
	session domain.SessionID,
	page domain.Page,
) ([]domain.MessageEnvelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.sessions[session]
	envs := make([]domain.MessageEnvelope, 0, len(ids))
	for _, id := range ids {
		envs = append(envs, s.envelopes[id])
	}
	sort.SliceStable(envs, func(i, j int) bool {
		return envs[i].SentAt.Before(envs[j].SentAt)
	})

	offset, limit := page.Offset, page.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if offset >= len(envs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(envs) {
		end = len(envs)
	}
	out := make([]domain.MessageEnvelope, end-offset)
	copy(out, envs[offset:end])
	return out, nil
}

// MarkRead stamps every unread envelope addressed to viewer in the session.
func (s *MemoryStore) MarkRead(
	_ context.Context,
	session domain.SessionID,
	viewer domain.UserID,
	at time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.sessions[session] {
		env := s.envelopes[id]
		if env.ReceiverID == viewer && env.ReadAt == nil {
			stamp := at
			env.ReadAt = &stamp
			s.envelopes[id] = env
		}
	}
	return nil
}

// SoftDelete flags an envelope deleted; only the original sender may.
func (s *MemoryStore) SoftDelete(
	_ context.Context,
	id domain.EnvelopeID,
	requester domain.UserID,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	env, ok := s.envelopes[id]
	if !ok {
		return ErrEnvelopeNotFound
	}
	if env.SenderID != requester {
		return ErrNotSender
	}
	env.SoftDeleted = true
	s.envelopes[id] = env
	return nil
}

// Compile-time assertions that MemoryStore implements both store contracts.
var (
	_ domain.UserStore    = (*MemoryStore)(nil)
	_ domain.MessageStore = (*MemoryStore)(nil)
)
