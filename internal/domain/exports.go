package domain

import (
	interfaces "github.com/kumaruseru/crown-messaging/internal/domain/interfaces"
	types "github.com/kumaruseru/crown-messaging/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	UserID           = types.UserID
	SessionID        = types.SessionID
	EnvelopeID       = types.EnvelopeID
	Fingerprint      = types.Fingerprint
	MessageType      = types.MessageType
	KeyProtection    = types.KeyProtection
	UserKeyPair      = types.UserKeyPair
	PublicKeyRecord  = types.PublicKeyRecord
	MessageEnvelope  = types.MessageEnvelope
	DecryptedMessage = types.DecryptedMessage
	SendOptions      = types.SendOptions
	Page             = types.Page
)

// Re-exported constants for the common message and protection kinds.
const (
	MessageTypeText  = types.MessageTypeText
	MessageTypeImage = types.MessageTypeImage
	MessageTypeFile  = types.MessageTypeFile
	ProtectionNone   = types.ProtectionNone
	ProtectionPBKDF2 = types.ProtectionPBKDF2
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	UserStore      = interfaces.UserStore
	MessageStore   = interfaces.MessageStore
	KeyService     = interfaces.KeyService
	MessageService = interfaces.MessageService
)
