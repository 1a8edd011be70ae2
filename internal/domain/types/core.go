package types

// UserID identifies an account in the external user store.
type UserID string

// String returns the string form of the user id.
func (u UserID) String() string { return string(u) }

// SessionID is the deterministic, order-independent identifier for a
// two-party conversation. The external message store partitions envelopes
// by this value.
type SessionID string

// String returns the string form of the session id.
func (s SessionID) String() string { return string(s) }

// EnvelopeID uniquely identifies a stored message envelope.
type EnvelopeID string

// String returns the string form of the envelope id.
func (id EnvelopeID) String() string { return string(id) }

// Fingerprint is a human-comparable digest of a public key, used for
// out-of-band identity verification.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// MessageType classifies an envelope's payload.
type MessageType string

const (
	// MessageTypeText is a plain text message.
	MessageTypeText MessageType = "text"
	// MessageTypeImage is an image reference handled by the attachment shell.
	MessageTypeImage MessageType = "image"
	// MessageTypeFile is a file reference handled by the attachment shell.
	MessageTypeFile MessageType = "file"
)
