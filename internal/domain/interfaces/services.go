package interfaces

import (
	"context"

	domaintypes "github.com/kumaruseru/crown-messaging/internal/domain/types"
)

// KeyService provisions and serves user key material.
type KeyService interface {
	// InitializeUserEncryption is idempotent: existing keys are returned
	// unchanged, otherwise a fresh pair is generated, protected with the
	// user secret (when present) and persisted.
	InitializeUserEncryption(
		ctx context.Context,
		user domaintypes.UserID,
		secret string,
	) (domaintypes.UserKeyPair, error)

	// FetchPeerPublicKey returns another user's public key record, served
	// from a bounded read-mostly cache.
	FetchPeerPublicKey(
		ctx context.Context,
		user domaintypes.UserID,
	) (domaintypes.PublicKeyRecord, error)

	// UnlockPrivateKey returns the user's PKCS#8 private key DER, unwrapping
	// the at-rest protection with the user secret when one was applied.
	UnlockPrivateKey(
		ctx context.Context,
		user domaintypes.UserID,
		secret string,
	) ([]byte, error)
}

// MessageService encrypts, stores, fetches and decrypts direct messages.
type MessageService interface {
	SendMessage(
		ctx context.Context,
		from, to domaintypes.UserID,
		plaintext []byte,
		opts domaintypes.SendOptions,
	) (domaintypes.MessageEnvelope, error)

	// ReadSession fetches the conversation between viewer and peer and
	// decrypts each envelope for the viewer's role.
	ReadSession(
		ctx context.Context,
		viewer, peer domaintypes.UserID,
		secret string,
		page domaintypes.Page,
	) ([]domaintypes.DecryptedMessage, error)

	MarkRead(ctx context.Context, viewer, peer domaintypes.UserID) error
	DeleteMessage(ctx context.Context, id domaintypes.EnvelopeID, requester domaintypes.UserID) error
}
