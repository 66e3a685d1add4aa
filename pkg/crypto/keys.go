// Package crypto provides the wallet's key material and signing primitives.
package crypto

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/types"
)

// SeedSize is the length of an Ed25519 seed in bytes.
const SeedSize = 32

// ErrInvalidSeedLength is returned when a seed is not exactly 32 bytes.
var ErrInvalidSeedLength = errors.New("seed must be 32 bytes")

// KeyMaterial holds a wallet's Ed25519 seed and everything deterministically
// derived from it: the signing key pair and the network address. The seed is
// immutable for the lifetime of the session; Zero() destroys it.
type KeyMaterial struct {
	seed [SeedSize]byte
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
	addr types.Address
}

// FromSeed derives key material from a 32-byte Ed25519 seed.
func FromSeed(seed []byte) (*KeyMaterial, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidSeedLength, len(seed))
	}
	km := &KeyMaterial{}
	copy(km.seed[:], seed)
	km.priv = ed25519.NewKeyFromSeed(km.seed[:])
	km.pub = km.priv.Public().(ed25519.PublicKey)
	km.addr = types.AddressFromPubKey(km.pub)
	return km, nil
}

// Seed returns the raw 32-byte seed. The returned slice aliases the key
// material; callers must not modify it.
func (km *KeyMaterial) Seed() []byte {
	return km.seed[:]
}

// SecretKey returns the 64-byte expanded secret key (seed || public key).
func (km *KeyMaterial) SecretKey() []byte {
	return km.priv
}

// PublicKey returns the 32-byte Ed25519 public key.
func (km *KeyMaterial) PublicKey() []byte {
	return km.pub
}

// PublicKeyB64 returns the public key in the wire's base64 form.
func (km *KeyMaterial) PublicKeyB64() string {
	return base64.StdEncoding.EncodeToString(km.pub)
}

// SeedB64 returns the seed in the base64 form the node's private endpoints
// expect. Handle with the same care as the seed itself.
func (km *KeyMaterial) SeedB64() string {
	return base64.StdEncoding.EncodeToString(km.seed[:])
}

// Address returns the network address derived from the public key.
func (km *KeyMaterial) Address() types.Address {
	return km.addr
}

// Sign produces a 64-byte Ed25519 detached signature over payload.
func (km *KeyMaterial) Sign(payload []byte) []byte {
	return ed25519.Sign(km.priv, payload)
}

// Fingerprint returns a short BLAKE3-based identifier of the public key,
// used to label wallets in listings and session metadata.
func (km *KeyMaterial) Fingerprint() string {
	sum := blake3.Sum256(km.pub)
	return hex.EncodeToString(sum[:8])
}

// Zero destroys the seed and derived private key in memory.
// The key material must not be used afterwards.
func (km *KeyMaterial) Zero() {
	for i := range km.seed {
		km.seed[i] = 0
	}
	for i := range km.priv {
		km.priv[i] = 0
	}
}

// Verify checks a detached Ed25519 signature against a payload and a
// 32-byte public key. Returns false on any malformed input.
func Verify(pubKey, payload, sig []byte) bool {
	if len(pubKey) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey), payload, sig)
}
