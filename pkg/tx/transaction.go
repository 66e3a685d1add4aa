// Package tx defines the signed transaction record and its canonical
// signing payload.
package tx

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/crypto"
)

// MaxMessageLen is the maximum UTF-8 length of an attached message.
const MaxMessageLen = 1024

// Transaction is the wire form of a signed transaction. Field order matters:
// the network verifies the signature over the compact JSON of the first six
// fields in exactly this order (message, signature and public_key excluded).
type Transaction struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    string  `json:"amount"` // integer micro-units as decimal string
	Nonce     uint64  `json:"nonce"`
	OU        string  `json:"ou"` // fee-tier tag, "1" or "3"
	Timestamp float64 `json:"timestamp"`
	Message   string  `json:"message,omitempty"`
	Signature string  `json:"signature,omitempty"`  // base64, 64-byte Ed25519
	PublicKey string  `json:"public_key,omitempty"` // base64, 32 bytes
}

// signingPayload is the canonical subset the signature covers. Struct field
// declaration order fixes the JSON key order.
type signingPayload struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    string  `json:"amount"`
	Nonce     uint64  `json:"nonce"`
	OU        string  `json:"ou"`
	Timestamp float64 `json:"timestamp"`
}

// SigningBytes returns the compact canonical JSON the signature covers.
// It is a pure function of the six signed fields and is reproducible
// byte-for-byte for identical field values.
func (t *Transaction) SigningBytes() ([]byte, error) {
	payload := signingPayload{
		From:      t.From,
		To:        t.To,
		Amount:    t.Amount,
		Nonce:     t.Nonce,
		OU:        t.OU,
		Timestamp: t.Timestamp,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal signing payload: %w", err)
	}
	return b, nil
}

// Sign computes the detached Ed25519 signature over the canonical payload
// and attaches it together with the signer's public key.
func (t *Transaction) Sign(key *crypto.KeyMaterial) error {
	payload, err := t.SigningBytes()
	if err != nil {
		return err
	}
	sig := key.Sign(payload)
	t.Signature = base64.StdEncoding.EncodeToString(sig)
	t.PublicKey = key.PublicKeyB64()
	return nil
}

// Verify checks the attached signature against the canonical payload and
// the attached public key. Returns false on any malformed field.
func (t *Transaction) Verify() bool {
	payload, err := t.SigningBytes()
	if err != nil {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(t.Signature)
	if err != nil {
		return false
	}
	pub, err := base64.StdEncoding.DecodeString(t.PublicKey)
	if err != nil {
		return false
	}
	return crypto.Verify(pub, payload, sig)
}
