package message

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kumaruseru/crown-messaging/internal/crypto"
	"github.com/kumaruseru/crown-messaging/internal/domain"
	"github.com/kumaruseru/crown-messaging/internal/protocol/hybrid"
)

// Service runs the send and read flows for direct messages.
//
// High-level flow:
//   - Send: fetch both public keys, run the hybrid protocol, derive the
//     session id, persist the finished envelope. Encryption either fully
//     succeeds and produces every field or the send aborts before
//     persistence; no partial envelope is ever stored.
//   - Read: unlock the viewer's private key once, fetch the session page,
//     decrypt each envelope for the viewer's role. A failed envelope is
//     skipped as undecryptable; it never aborts the rest of the session.
type Service struct {
	users    domain.UserStore
	messages domain.MessageStore
	keys     domain.KeyService
	suite    hybrid.Suite
	now      func() time.Time
}

// New constructs a message service on the given stores, key service, and
// host primitive suite.
func New(
	users domain.UserStore,
	messages domain.MessageStore,
	keySvc domain.KeyService,
	suite hybrid.Suite,
) *Service {
	return &Service{
		users:    users,
		messages: messages,
		keys:     keySvc,
		suite:    suite,
		now:      time.Now,
	}
}

// SendMessage encrypts plaintext from one participant to the other and
// persists the resulting envelope.
func (s *Service) SendMessage(
	ctx context.Context,
	from, to domain.UserID,
	plaintext []byte,
	opts domain.SendOptions,
) (domain.MessageEnvelope, error) {
	senderKey, err := s.keys.FetchPeerPublicKey(ctx, from)
	if err != nil {
		return domain.MessageEnvelope{}, err
	}
	receiverKey, err := s.keys.FetchPeerPublicKey(ctx, to)
	if err != nil {
		return domain.MessageEnvelope{}, err
	}

	payload, err := hybrid.Encrypt(s.suite, plaintext, senderKey.PublicKey, receiverKey.PublicKey)
	if err != nil {
		return domain.MessageEnvelope{}, fmt.Errorf("encrypt for %q: %w", to, err)
	}

	messageType := opts.MessageType
	if messageType == "" {
		messageType = domain.MessageTypeText
	}

	env := domain.MessageEnvelope{
		ID:         domain.EnvelopeID(uuid.NewString()),
		SenderID:   from,
		ReceiverID: to,
		SessionID:  domain.SessionID(crypto.SessionID(from.String(), to.String())),

		Ciphertext:         payload.Ciphertext,
		IV:                 payload.IV,
		AuthTag:            payload.AuthTag,
		SenderWrappedKey:   payload.SenderWrappedKey,
		ReceiverWrappedKey: payload.ReceiverWrappedKey,
		PlaintextHash:      payload.PlaintextHash,

		MessageType: messageType,
		ReplyTo:     opts.ReplyTo,
		SentAt:      s.now().UTC(),
	}

	if err := s.messages.SaveEnvelope(ctx, env); err != nil {
		return domain.MessageEnvelope{}, fmt.Errorf("persist envelope: %w", err)
	}
	return env, nil
}

// ReadSession fetches a page of the conversation between viewer and peer and
// decrypts each envelope with the viewer's own wrapped key.
//
// An envelope that fails key unwrap or tag verification is dropped from the
// result; the failure is fatal for that message only and the UI shows it as
// undecryptable. A plaintext hash mismatch comes back as Verified=false with
// content intact.
func (s *Service) ReadSession(
	ctx context.Context,
	viewer, peer domain.UserID,
	secret string,
	page domain.Page,
) ([]domain.DecryptedMessage, error) {
	viewerPriv, err := s.keys.UnlockPrivateKey(ctx, viewer, secret)
	if err != nil {
		return nil, err
	}

	session := domain.SessionID(crypto.SessionID(viewer.String(), peer.String()))
	envs, err := s.messages.EnvelopesBySession(ctx, session, page)
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", session, err)
	}

	out := make([]domain.DecryptedMessage, 0, len(envs))
	for _, env := range envs {
		if env.SoftDeleted {
			continue
		}
		role := hybrid.RoleReceiver
		if env.SenderID == viewer {
			role = hybrid.RoleSender
		}

		result, err := hybrid.Decrypt(s.suite, hybrid.Payload{
			Ciphertext:         env.Ciphertext,
			IV:                 env.IV,
			AuthTag:            env.AuthTag,
			SenderWrappedKey:   env.SenderWrappedKey,
			ReceiverWrappedKey: env.ReceiverWrappedKey,
			PlaintextHash:      env.PlaintextHash,
		}, viewerPriv, role)
		if err != nil {
			// Wrong key or tampered envelope: this message is lost, the
			// rest of the session is not.
			continue
		}

		out = append(out, domain.DecryptedMessage{
			ID:          env.ID,
			SenderID:    env.SenderID,
			ReceiverID:  env.ReceiverID,
			Plaintext:   result.Plaintext,
			Verified:    result.Verified,
			MessageType: env.MessageType,
			ReplyTo:     env.ReplyTo,
			SentAt:      env.SentAt,
			ReadAt:      env.ReadAt,
		})
	}
	return out, nil
}

// MarkRead stamps every unread envelope addressed to the viewer in the
// conversation with the peer.
func (s *Service) MarkRead(ctx context.Context, viewer, peer domain.UserID) error {
	session := domain.SessionID(crypto.SessionID(viewer.String(), peer.String()))
	return s.messages.MarkRead(ctx, session, viewer, s.now().UTC())
}

// DeleteMessage soft-deletes an envelope. The store enforces that only the
// original sender may delete; envelopes are never hard-deleted.
func (s *Service) DeleteMessage(
	ctx context.Context,
	id domain.EnvelopeID,
	requester domain.UserID,
) error {
	return s.messages.SoftDelete(ctx, id, requester)
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
