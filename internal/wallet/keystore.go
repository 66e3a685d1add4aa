package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/crypto"
)

// keystoreFile is the on-disk JSON format for an encrypted wallet.
// Only the 32-byte Ed25519 seed is sealed; address, public key, and
// fingerprint are derivable and stored in the clear for listing without a
// password prompt.
type keystoreFile struct {
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	SealedSeed  []byte    `json:"sealed_seed"`
	Address     string    `json:"address"`
	PublicKey   string    `json:"public_key"` // base64
	Fingerprint string    `json:"fingerprint"`
}

// Entry is the public metadata of a stored wallet.
type Entry struct {
	Name        string
	Address     string
	PublicKey   string
	Fingerprint string
	CreatedAt   time.Time
}

// Keystore manages encrypted wallet files in a directory.
type Keystore struct {
	path string
}

// NewKeystore creates a keystore that reads/writes to the given directory.
// The directory is created if it doesn't exist.
func NewKeystore(path string) (*Keystore, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}
	return &Keystore{path: path}, nil
}

func (ks *Keystore) walletPath(name string) string {
	return filepath.Join(ks.path, name+".wallet")
}

// Create seals the key material under a password and writes a new wallet
// file. Fails if a wallet with the same name exists.
func (ks *Keystore) Create(name string, key *crypto.KeyMaterial, password []byte, params KDFParams) error {
	path := ks.walletPath(name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("wallet %q already exists", name)
	}

	sealed, err := Seal(key.Seed(), password, params)
	if err != nil {
		return fmt.Errorf("seal seed: %w", err)
	}

	kf := keystoreFile{
		Version:     1,
		CreatedAt:   time.Now().UTC(),
		SealedSeed:  sealed,
		Address:     key.Address().String(),
		PublicKey:   key.PublicKeyB64(),
		Fingerprint: key.Fingerprint(),
	}
	return ks.writeFile(path, &kf)
}

// Load decrypts a wallet and returns its key material.
func (ks *Keystore) Load(name string, password []byte) (*crypto.KeyMaterial, error) {
	kf, err := ks.readFile(ks.walletPath(name))
	if err != nil {
		return nil, err
	}
	seed, err := Open(kf.SealedSeed, password)
	if err != nil {
		return nil, fmt.Errorf("decrypt wallet: %w", err)
	}
	key, err := crypto.FromSeed(seed)
	zeroBytes(seed)
	if err != nil {
		return nil, err
	}
	// Cross-check against the stored metadata so a corrupted file fails
	// loudly instead of signing with the wrong key.
	if kf.Address != "" && kf.Address != key.Address().String() {
		key.Zero()
		return nil, fmt.Errorf("wallet %q metadata does not match derived address", name)
	}
	return key, nil
}

// Info returns the public metadata of a wallet without decrypting it.
func (ks *Keystore) Info(name string) (*Entry, error) {
	kf, err := ks.readFile(ks.walletPath(name))
	if err != nil {
		return nil, err
	}
	return &Entry{
		Name:        name,
		Address:     kf.Address,
		PublicKey:   kf.PublicKey,
		Fingerprint: kf.Fingerprint,
		CreatedAt:   kf.CreatedAt,
	}, nil
}

// List returns the names of all wallet files in the keystore.
func (ks *Keystore) List() ([]string, error) {
	entries, err := os.ReadDir(ks.path)
	if err != nil {
		return nil, fmt.Errorf("read keystore dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if ext := filepath.Ext(name); ext == ".wallet" {
			names = append(names, name[:len(name)-len(ext)])
		}
	}
	return names, nil
}

// Delete removes a wallet file.
func (ks *Keystore) Delete(name string) error {
	path := ks.walletPath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("wallet %q not found", name)
	}
	return os.Remove(path)
}

func (ks *Keystore) writeFile(path string, kf *keystoreFile) error {
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal wallet: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write wallet: %w", err)
	}
	return nil
}

func (ks *Keystore) readFile(path string) (*keystoreFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	var kf keystoreFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse wallet: %w", err)
	}
	if kf.Version != 1 {
		return nil, fmt.Errorf("unsupported wallet version: %d", kf.Version)
	}
	return &kf, nil
}
