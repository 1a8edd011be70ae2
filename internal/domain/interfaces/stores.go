package interfaces

import (
	"context"
	"time"

	domaintypes "github.com/kumaruseru/crown-messaging/internal/domain/types"
)

// UserStore is the external account store, consumed only for key material.
type UserStore interface {
	// GetUser returns the stored key pair for a user. ok is false when the
	// user has never initialized encryption.
	GetUser(ctx context.Context, id domaintypes.UserID) (keys domaintypes.UserKeyPair, ok bool, err error)
	SaveUserKeys(ctx context.Context, keys domaintypes.UserKeyPair) error
}

// MessageStore is the external envelope store. Envelopes are append-only;
// only ReadAt and SoftDeleted change after creation.
type MessageStore interface {
	SaveEnvelope(ctx context.Context, env domaintypes.MessageEnvelope) error
	EnvelopesBySession(
		ctx context.Context,
		session domaintypes.SessionID,
		page domaintypes.Page,
	) ([]domaintypes.MessageEnvelope, error)

	// MarkRead stamps every unread envelope addressed to viewer in the session.
	MarkRead(
		ctx context.Context,
		session domaintypes.SessionID,
		viewer domaintypes.UserID,
		at time.Time,
	) error

	// SoftDelete flags an envelope; only the original sender may delete.
	SoftDelete(
		ctx context.Context,
		id domaintypes.EnvelopeID,
		requester domaintypes.UserID,
	) error
}
