package tx

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/crypto"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/types"
)

// Build constructs and signs a transaction. The amount is in micro-units,
// the nonce must be positive, and the optional message is capped at
// MaxMessageLen characters. All validation happens before signing; no
// network calls are made.
func Build(from, to types.Address, amount types.Amount, nonce uint64, key *crypto.KeyMaterial, message string) (*Transaction, error) {
	return buildAt(from, to, amount, nonce, key, message, stamp())
}

func buildAt(from, to types.Address, amount types.Amount, nonce uint64, key *crypto.KeyMaterial, message string, ts float64) (*Transaction, error) {
	if nonce == 0 {
		return nil, fmt.Errorf("nonce must be positive")
	}
	if n := utf8.RuneCountInString(message); n > MaxMessageLen {
		return nil, fmt.Errorf("message too long: %d chars (max %d)", n, MaxMessageLen)
	}

	t := &Transaction{
		From:      from.String(),
		To:        to.String(),
		Amount:    amount.Micro(),
		Nonce:     nonce,
		OU:        OUTag(amount),
		Timestamp: ts,
		Message:   message,
	}
	if err := t.Sign(key); err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	return t, nil
}

// stamp returns the current time in epoch seconds with a random 0-10 ms
// jitter, rounded to millisecond precision. The jitter keeps two rapid
// successive builds from colliding on the same timestamp (and therefore
// the same signature); a crypto/rand failure falls back to the nanosecond
// clock rather than dropping the jitter.
func stamp() float64 {
	now := float64(time.Now().UnixMilli()) / 1000
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		binary.LittleEndian.PutUint64(buf[:], uint64(time.Now().UnixNano()))
	}
	jitter := float64(binary.LittleEndian.Uint64(buf[:])%10_000) / 1e6 // 0-0.01 s
	return math.Round((now+jitter)*1000) / 1000
}
