package types

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// AddressBodySize is the length of the decoded address body in bytes
// (a SHA-256 digest of the Ed25519 public key).
const AddressBodySize = 32

// Address prefix constants.
const (
	MainnetPrefix = "oct"
	TestnetPrefix = "toct"
)

// activePrefix is the address prefix used by String() and MarshalJSON().
// Set once at startup via SetAddressPrefix(). Default is mainnet.
var activePrefix = MainnetPrefix

// SetAddressPrefix sets the active address prefix (call once at startup).
func SetAddressPrefix(prefix string) {
	activePrefix = prefix
}

// GetAddressPrefix returns the currently active address prefix.
func GetAddressPrefix() string {
	return activePrefix
}

// Address represents a network address: SHA-256(ed25519 public key),
// rendered as the active prefix followed by the base58 digest.
type Address [AddressBodySize]byte

// AddressFromPubKey derives an address from a 32-byte Ed25519 public key.
func AddressFromPubKey(pubKey []byte) Address {
	return Address(sha256.Sum256(pubKey))
}

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the prefixed base58 address (e.g. "oct61RRV...").
func (a Address) String() string {
	return activePrefix + base58.Encode(a[:])
}

// Bytes returns a copy of the address body as a byte slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressBodySize)
	copy(b, a[:])
	return b
}

// MarshalJSON encodes the address as a prefixed base58 string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a prefixed base58 string into an address.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress parses a prefixed base58 address string.
// Both mainnet ("oct...") and testnet ("toct...") prefixes are accepted.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("empty address")
	}

	// Check testnet first: every "toct..." string also has no "oct" prefix
	// at position 0, but keeping the longer prefix first makes that explicit.
	var body string
	switch {
	case strings.HasPrefix(s, TestnetPrefix):
		body = s[len(TestnetPrefix):]
	case strings.HasPrefix(s, MainnetPrefix):
		body = s[len(MainnetPrefix):]
	default:
		return Address{}, fmt.Errorf("invalid address prefix: %q", s)
	}

	decoded, err := base58.Decode(body)
	if err != nil {
		return Address{}, fmt.Errorf("invalid base58 address: %w", err)
	}
	if len(decoded) != AddressBodySize {
		return Address{}, fmt.Errorf("address body must be %d bytes, got %d", AddressBodySize, len(decoded))
	}
	var a Address
	copy(a[:], decoded)
	return a, nil
}

// ValidAddress reports whether s parses as a network address.
func ValidAddress(s string) bool {
	_, err := ParseAddress(s)
	return err == nil
}
