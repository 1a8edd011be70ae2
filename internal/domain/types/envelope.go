package types

import "time"

// MessageEnvelope is the unit persisted by the external message store,
// addressed by SessionID.
//
// An envelope is immutable once created except for ReadAt and SoftDeleted.
// The same symmetric key is wrapped twice so either participant can recover
// it independently with only their own private key.
type MessageEnvelope struct {
	ID         EnvelopeID `json:"id"`
	SenderID   UserID     `json:"senderId"`
	ReceiverID UserID     `json:"receiverId"`
	SessionID  SessionID  `json:"sessionId"`

	Ciphertext         []byte `json:"encryptedContent"`
	IV                 []byte `json:"iv"`
	AuthTag            []byte `json:"authTag"`
	SenderWrappedKey   []byte `json:"senderEncryptedKey"`
	ReceiverWrappedKey []byte `json:"receiverEncryptedKey"`
	PlaintextHash      []byte `json:"messageHash"`

	MessageType MessageType `json:"messageType"`
	ReplyTo     EnvelopeID  `json:"replyTo,omitempty"`
	SentAt      time.Time   `json:"sentAt"`
	ReadAt      *time.Time  `json:"readAt,omitempty"`
	SoftDeleted bool        `json:"softDeleted"`
}

// DecryptedMessage is a message as reconstructed for the viewing participant.
//
// Verified is false when the stored plaintext hash did not match the
// decrypted content; the message is still delivered and the caller is
// expected to surface it as unverified rather than discard it.
type DecryptedMessage struct {
	ID          EnvelopeID  `json:"id"`
	SenderID    UserID      `json:"senderId"`
	ReceiverID  UserID      `json:"receiverId"`
	Plaintext   []byte      `json:"plaintext"`
	Verified    bool        `json:"verified"`
	MessageType MessageType `json:"messageType"`
	ReplyTo     EnvelopeID  `json:"replyTo,omitempty"`
	SentAt      time.Time   `json:"sentAt"`
	ReadAt      *time.Time  `json:"readAt,omitempty"`
}

// SendOptions carries the optional envelope fields of a send.
type SendOptions struct {
	MessageType MessageType `json:"messageType,omitempty"`
	ReplyTo     EnvelopeID  `json:"replyTo,omitempty"`
}

// Page bounds a message store listing.
type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
