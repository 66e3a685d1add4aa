package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/crypto"
)

// BIP-44 derivation path constants.
// Full path: m/44'/345'/account'/change/index. The coin type has no
// SLIP-44 registration; 345 is the network's conventional value.
const (
	PurposeBIP44  = bip32.FirstHardenedChild + 44
	CoinTypeOctra = bip32.FirstHardenedChild + 345
)

// KeyFromMnemonic validates the mnemonic and deterministically derives the
// wallet's signing key material: BIP-39 seed, then the BIP-32 child at
// m/44'/345'/0'/0/index, whose 32-byte private scalar becomes the Ed25519
// seed.
func KeyFromMnemonic(mnemonic, passphrase string, index uint32) (*crypto.KeyMaterial, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	return KeyFromSeed(seed, index)
}

// KeyFromSeed derives the signing key at the given address index from a
// 64-byte BIP-39 seed.
func KeyFromSeed(seed []byte, index uint32) (*crypto.KeyMaterial, error) {
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}

	child := master
	for _, step := range []uint32{
		PurposeBIP44,
		CoinTypeOctra,
		bip32.FirstHardenedChild, // account 0
		0,                        // external chain
		index,
	} {
		child, err = child.NewChildKey(step)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", step, err)
		}
	}

	return crypto.FromSeed(privateScalar(child))
}

// privateScalar extracts the raw 32-byte private key from a bip32 key
// (the library stores private keys as 33 bytes with a leading 0x00).
func privateScalar(k *bip32.Key) []byte {
	raw := k.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}
