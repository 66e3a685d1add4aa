package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/curve25519"
)

// X25519KeySize is the length of X25519 public and private keys.
const X25519KeySize = 32

// EphemeralKey is a one-shot X25519 key pair generated per private transfer.
type EphemeralKey struct {
	Private [X25519KeySize]byte
	Public  [X25519KeySize]byte
}

// GenerateEphemeral creates a fresh X25519 key pair from crypto/rand.
func GenerateEphemeral() (*EphemeralKey, error) {
	var ek EphemeralKey
	if _, err := rand.Read(ek.Private[:]); err != nil {
		return nil, fmt.Errorf("generate ephemeral key: %w", err)
	}
	clampScalar(ek.Private[:])
	pub, err := curve25519.X25519(ek.Private[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("derive ephemeral public key: %w", err)
	}
	copy(ek.Public[:], pub)
	return &ek, nil
}

// Zero destroys the ephemeral private scalar.
func (ek *EphemeralKey) Zero() {
	for i := range ek.Private {
		ek.Private[i] = 0
	}
}

// x25519Scalar converts an Ed25519 seed into the equivalent X25519 private
// scalar (RFC 8032 key expansion: first half of SHA-512(seed), clamped).
func x25519Scalar(seed []byte) [X25519KeySize]byte {
	h := sha512.Sum512(seed)
	var scalar [X25519KeySize]byte
	copy(scalar[:], h[:X25519KeySize])
	clampScalar(scalar[:])
	return scalar
}

// X25519PublicFromEd converts an Ed25519 public key to its X25519
// (Montgomery) form. Fails if the bytes are not a valid curve point.
func X25519PublicFromEd(edPub []byte) ([]byte, error) {
	p, err := new(edwards25519.Point).SetBytes(edPub)
	if err != nil {
		return nil, fmt.Errorf("invalid ed25519 public key: %w", err)
	}
	return p.BytesMontgomery(), nil
}

// SharedSecret computes the X25519 Diffie-Hellman secret between this
// wallet's long-term key and a peer X25519 public key (recipient side of a
// private transfer: peer is the sender's ephemeral key).
func (km *KeyMaterial) SharedSecret(peerX25519Pub []byte) ([]byte, error) {
	scalar := x25519Scalar(km.seed[:])
	secret, err := curve25519.X25519(scalar[:], peerX25519Pub)
	for i := range scalar {
		scalar[i] = 0
	}
	if err != nil {
		return nil, fmt.Errorf("x25519: %w", err)
	}
	return secret, nil
}

// SharedSecretWithEd computes the sender-side Diffie-Hellman secret between
// an ephemeral private key and a recipient's long-term Ed25519 public key.
func (ek *EphemeralKey) SharedSecretWithEd(recipientEdPub []byte) ([]byte, error) {
	mont, err := X25519PublicFromEd(recipientEdPub)
	if err != nil {
		return nil, err
	}
	secret, err := curve25519.X25519(ek.Private[:], mont)
	if err != nil {
		return nil, fmt.Errorf("x25519: %w", err)
	}
	return secret, nil
}

// clampScalar applies the X25519 private-scalar clamping in place.
func clampScalar(s []byte) {
	s[0] &= 248
	s[31] &= 127
	s[31] |= 64
}
