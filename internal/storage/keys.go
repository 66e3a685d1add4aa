package storage

import "bytes"

// Key prefixes. Session metadata and wallet entries share one store.
var (
	// PrefixWallet namespaces per-wallet metadata: "wallet/<name>".
	PrefixWallet = []byte("wallet/")

	// KeyActiveWallet holds the name of the active wallet.
	KeyActiveWallet = []byte("session/active")
)

// WalletKey builds the storage key for a wallet entry.
func WalletKey(name string) []byte {
	return append(append([]byte{}, PrefixWallet...), name...)
}

// WalletName extracts the wallet name from a storage key.
// Returns "" if the key is not a wallet key.
func WalletName(key []byte) string {
	if len(key) <= len(PrefixWallet) || !bytes.HasPrefix(key, PrefixWallet) {
		return ""
	}
	return string(key[len(PrefixWallet):])
}
