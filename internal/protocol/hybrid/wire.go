package hybrid

import (
	"fmt"

	canonicaljson "github.com/gibson042/canonicaljson-go"

	"github.com/kumaruseru/crown-messaging/internal/crypto"
)

// WireEnvelope is the JSON object that crosses the network between the two
// hosts. Every binary field is standard base64. Field names are part of the
// protocol and must not change.
type WireEnvelope struct {
	EncryptedContent     string `json:"encryptedContent"`
	IV                   string `json:"iv"`
	AuthTag              string `json:"authTag"`
	SenderEncryptedKey   string `json:"senderEncryptedKey"`
	ReceiverEncryptedKey string `json:"receiverEncryptedKey"`
	MessageHash          string `json:"messageHash"`
}

// ToWire frames a payload for transport.
func ToWire(p Payload) WireEnvelope {
	return WireEnvelope{
		EncryptedContent:     crypto.B64(p.Ciphertext),
		IV:                   crypto.B64(p.IV),
		AuthTag:              crypto.B64(p.AuthTag),
		SenderEncryptedKey:   crypto.B64(p.SenderWrappedKey),
		ReceiverEncryptedKey: crypto.B64(p.ReceiverWrappedKey),
		MessageHash:          crypto.B64(p.PlaintextHash),
	}
}

// Payload decodes the wire framing back to raw bytes.
func (w WireEnvelope) Payload() (Payload, error) {
	var (
		p   Payload
		err error
	)
	if p.Ciphertext, err = crypto.FromB64(w.EncryptedContent); err != nil {
		return Payload{}, fmt.Errorf("decode encryptedContent: %w", err)
	}
	if p.IV, err = crypto.FromB64(w.IV); err != nil {
		return Payload{}, fmt.Errorf("decode iv: %w", err)
	}
	if p.AuthTag, err = crypto.FromB64(w.AuthTag); err != nil {
		return Payload{}, fmt.Errorf("decode authTag: %w", err)
	}
	if p.SenderWrappedKey, err = crypto.FromB64(w.SenderEncryptedKey); err != nil {
		return Payload{}, fmt.Errorf("decode senderEncryptedKey: %w", err)
	}
	if p.ReceiverWrappedKey, err = crypto.FromB64(w.ReceiverEncryptedKey); err != nil {
		return Payload{}, fmt.Errorf("decode receiverEncryptedKey: %w", err)
	}
	if p.PlaintextHash, err = crypto.FromB64(w.MessageHash); err != nil {
		return Payload{}, fmt.Errorf("decode messageHash: %w", err)
	}
	return p, nil
}

// MarshalCanonical serialises the envelope with canonical JSON: sorted
// members, no insignificant whitespace. Two hosts framing the same payload
// must produce identical bytes here; the conformance tests compare them.
func (w WireEnvelope) MarshalCanonical() ([]byte, error) {
	return canonicaljson.Marshal(w)
}
