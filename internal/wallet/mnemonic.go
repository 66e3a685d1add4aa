// Package wallet implements mnemonic key derivation and the encrypted
// on-disk keystore.
package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// ErrInvalidMnemonic is returned for a wrong word count, an unknown word,
// or a bad checksum.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// MnemonicEntropyBits is the entropy size for newly generated mnemonics
// (24 words).
const MnemonicEntropyBits = 256

// GenerateMnemonic creates a new 24-word BIP-39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks word count (12 or 24), word validity, and
// checksum.
func ValidateMnemonic(mnemonic string) error {
	words := len(strings.Fields(mnemonic))
	if words != 12 && words != 24 {
		return fmt.Errorf("%w: %d words (want 12 or 24)", ErrInvalidMnemonic, words)
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return fmt.Errorf("%w: bad word or checksum", ErrInvalidMnemonic)
	}
	return nil
}
