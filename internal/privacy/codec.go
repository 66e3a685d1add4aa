// Package privacy implements the private-balance protocol: the symmetric
// amount codec and the Diffie-Hellman transfer scheme layered on it.
package privacy

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/crypto"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/types"
)

// HKDF info strings. Fixed: changing either invalidates every ciphertext
// already stored on chain.
const (
	balanceKeyInfo  = "octra.encrypted-balance.v1"
	transferKeyInfo = "octra.private-transfer.v1"
)

const amountLen = 8 // little-endian uint64 micro-units

// balanceKey derives the wallet's symmetric balance key from its seed.
// The seed itself is never used as a cipher key.
func balanceKey(key *crypto.KeyMaterial) ([]byte, error) {
	return deriveKey(key.Seed(), balanceKeyInfo)
}

// transferKey derives the per-transfer symmetric key from a DH shared
// secret.
func transferKey(sharedSecret []byte) ([]byte, error) {
	return deriveKey(sharedSecret, transferKeyInfo)
}

func deriveKey(secret []byte, info string) ([]byte, error) {
	out := make([]byte, chacha20poly1305.KeySize)
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return out, nil
}

// seal encrypts an amount under a 32-byte key.
// Blob layout: nonce(24) | ciphertext(8+16).
func seal(key []byte, amount types.Amount) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	var plain [amountLen]byte
	binary.LittleEndian.PutUint64(plain[:], uint64(amount))
	return append(nonce, aead.Seal(nil, nonce, plain[:], nil)...), nil
}

// open decrypts a blob produced by seal. Authentication failure or a
// wrong-length plaintext both return ErrDecodeFailure rather than
// distinguishable errors.
func open(key, blob []byte) (types.Amount, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return 0, fmt.Errorf("create cipher: %w", err)
	}
	if len(blob) < aead.NonceSize()+amountLen+aead.Overhead() {
		return 0, ErrDecodeFailure
	}
	nonce := blob[:aead.NonceSize()]
	plain, err := aead.Open(nil, nonce, blob[aead.NonceSize():], nil)
	if err != nil {
		return 0, ErrDecodeFailure
	}
	if len(plain) != amountLen {
		return 0, ErrDecodeFailure
	}
	return types.Amount(binary.LittleEndian.Uint64(plain)), nil
}

// EncodeAmount encrypts an amount under the wallet's balance key, producing
// the ciphertext format the network stores per address.
func EncodeAmount(amount types.Amount, key *crypto.KeyMaterial) ([]byte, error) {
	k, err := balanceKey(key)
	if err != nil {
		return nil, err
	}
	blob, err := seal(k, amount)
	zero(k)
	return blob, err
}

// DecodeAmount is the inverse of EncodeAmount.
func DecodeAmount(blob []byte, key *crypto.KeyMaterial) (types.Amount, error) {
	k, err := balanceKey(key)
	if err != nil {
		return 0, err
	}
	amount, err := open(k, blob)
	zero(k)
	return amount, err
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
