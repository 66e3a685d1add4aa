// derive_address.go prints the public key and address for a hex-encoded
// Ed25519 seed file.
// Usage: go run scripts/derive_address.go <seedfile>
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/crypto"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_address <seedfile>")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	seedHex := strings.TrimSpace(string(data))
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	key, err := crypto.FromSeed(seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer key.Zero()

	fmt.Printf("public key:  %s\n", hex.EncodeToString(key.PublicKey()))
	fmt.Printf("public b64:  %s\n", key.PublicKeyB64())
	fmt.Printf("address:     %s\n", key.Address())
	fmt.Printf("fingerprint: %s\n", key.Fingerprint())
}
