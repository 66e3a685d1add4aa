package privacy

import (
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"

	klog "github.com/uchiha0x/Octra-Wallet-Domain/internal/log"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/rpcclient"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/crypto"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/types"
)

// Service runs the private-balance operations against a node.
type Service struct {
	client *rpcclient.Client
	log    zerolog.Logger
}

// NewService creates a service over the given client.
func NewService(client *rpcclient.Client) *Service {
	return &Service{client: client, log: klog.Privacy}
}

// BalanceView is the decoded encrypted-balance snapshot, in micro-units.
// The encrypted part is only ever changed through Encrypt/Decrypt below,
// never by direct assignment.
type BalanceView struct {
	Public    types.Amount
	Encrypted types.Amount
	Total     types.Amount
}

// EncryptedBalance fetches the current snapshot for the wallet's address.
func (s *Service) EncryptedBalance(key *crypto.KeyMaterial) (*BalanceView, error) {
	res, err := s.client.ViewEncryptedBalance(key.Address().String(), key.SeedB64())
	if err != nil {
		return nil, fmt.Errorf("fetch encrypted balance: %w", err)
	}
	return &BalanceView{
		Public:    types.Amount(res.PublicRaw),
		Encrypted: types.Amount(res.EncryptedRaw),
		Total:     types.Amount(res.TotalRaw),
	}, nil
}

// Encrypt moves amount from the public into the encrypted balance. The
// network stores only the latest ciphertext per address, so the new total
// is computed from a fresh snapshot and re-encoded in full; the stored
// ciphertext is never patched in place.
func (s *Service) Encrypt(key *crypto.KeyMaterial, amount types.Amount) (string, error) {
	if amount == 0 {
		return "", fmt.Errorf("amount must be positive")
	}
	view, err := s.EncryptedBalance(key)
	if err != nil {
		return "", err
	}
	if amount > view.Public {
		return "", fmt.Errorf("%w: have %s, want %s", ErrInsufficientPublic, view.Public, amount)
	}

	blob, err := EncodeAmount(view.Encrypted+amount, key)
	if err != nil {
		return "", fmt.Errorf("encode new total: %w", err)
	}
	hash, err := s.client.EncryptBalance(rpcclient.BalanceCipherRequest{
		Address:       key.Address().String(),
		Amount:        amount.Micro(),
		PrivateKey:    key.SeedB64(),
		EncryptedData: base64.StdEncoding.EncodeToString(blob),
	})
	if err != nil {
		return "", fmt.Errorf("encrypt balance: %w", err)
	}

	s.log.Info().Str("tx_hash", hash).Str("amount", amount.String()).Msg("balance encrypted")
	return hash, nil
}

// Decrypt moves amount from the encrypted balance back to public. Fails
// with ErrInsufficientEncrypted when more is requested than is currently
// encrypted.
func (s *Service) Decrypt(key *crypto.KeyMaterial, amount types.Amount) (string, error) {
	if amount == 0 {
		return "", fmt.Errorf("amount must be positive")
	}
	view, err := s.EncryptedBalance(key)
	if err != nil {
		return "", err
	}
	if amount > view.Encrypted {
		return "", fmt.Errorf("%w: have %s, want %s", ErrInsufficientEncrypted, view.Encrypted, amount)
	}

	blob, err := EncodeAmount(view.Encrypted-amount, key)
	if err != nil {
		return "", fmt.Errorf("encode new total: %w", err)
	}
	hash, err := s.client.DecryptBalance(rpcclient.BalanceCipherRequest{
		Address:       key.Address().String(),
		Amount:        amount.Micro(),
		PrivateKey:    key.SeedB64(),
		EncryptedData: base64.StdEncoding.EncodeToString(blob),
	})
	if err != nil {
		return "", fmt.Errorf("decrypt balance: %w", err)
	}

	s.log.Info().Str("tx_hash", hash).Str("amount", amount.String()).Msg("balance decrypted")
	return hash, nil
}
