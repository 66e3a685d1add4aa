package privacy

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/uchiha0x/Octra-Wallet-Domain/internal/rpcclient"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/crypto"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/types"
)

// TransferReceipt is the sender-side result of a private transfer.
type TransferReceipt struct {
	TxHash       string
	EphemeralKey string // base64 X25519 public key used for this transfer
}

// Claimable is a pending transfer addressed to this wallet, with the
// locally decrypted amount when the ciphertext could be opened. The amount
// is advisory display data; the node reports the authoritative value on
// claim.
type Claimable struct {
	Transfer    rpcclient.PendingTransfer
	Amount      types.Amount
	AmountKnown bool
}

// CreateTransfer sends a hidden-amount transfer. The public transaction
// carries a zero amount; the real value travels as a ciphertext under a
// key agreed between a fresh ephemeral X25519 key and the recipient's
// long-term public key.
//
// Fails with ErrRecipientKeyMissing, before any further network call, when
// the recipient has never published a public key.
func (s *Service) CreateTransfer(key *crypto.KeyMaterial, to types.Address, amount types.Amount) (*TransferReceipt, error) {
	if amount == 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	pk, err := s.client.PublicKeyOf(to.String())
	if err != nil {
		return nil, fmt.Errorf("fetch recipient key: %w", err)
	}
	if !pk.HasPublicKey {
		return nil, fmt.Errorf("%s: %w", to, ErrRecipientKeyMissing)
	}
	recipientPub, err := base64.StdEncoding.DecodeString(pk.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("decode recipient key: %w", err)
	}

	eph, err := crypto.GenerateEphemeral()
	if err != nil {
		return nil, err
	}
	defer eph.Zero()

	secret, err := eph.SharedSecretWithEd(recipientPub)
	if err != nil {
		return nil, fmt.Errorf("derive shared secret: %w", err)
	}
	k, err := transferKey(secret)
	zero(secret)
	if err != nil {
		return nil, err
	}
	blob, err := seal(k, amount)
	zero(k)
	if err != nil {
		return nil, fmt.Errorf("encrypt amount: %w", err)
	}

	res, err := s.client.PrivateTransfer(rpcclient.PrivateTransferRequest{
		From:           key.Address().String(),
		To:             to.String(),
		Amount:         amount.Micro(),
		FromPrivateKey: key.SeedB64(),
		ToPublicKey:    pk.PublicKey,
		EphemeralKey:   base64.StdEncoding.EncodeToString(eph.Public[:]),
		EncryptedData:  base64.StdEncoding.EncodeToString(blob),
	})
	if err != nil {
		return nil, fmt.Errorf("submit private transfer: %w", err)
	}

	s.log.Info().
		Str("tx_hash", res.TxHash).
		Str("to", to.String()).
		Msg("private transfer submitted")

	return &TransferReceipt{TxHash: res.TxHash, EphemeralKey: res.EphemeralKey}, nil
}

// ListClaimable fetches transfers addressed to this wallet and decrypts
// each amount for display. Transfers are processed independently: a decode
// failure for one degrades that entry to "amount unknown" and never aborts
// the listing of the others.
func (s *Service) ListClaimable(key *crypto.KeyMaterial) ([]Claimable, error) {
	pending, err := s.client.PendingPrivateTransfers(key.Address().String(), key.SeedB64())
	if err != nil {
		return nil, fmt.Errorf("fetch pending transfers: %w", err)
	}

	out := make([]Claimable, 0, len(pending))
	for _, p := range pending {
		c := Claimable{Transfer: p}
		if amount, err := s.decryptTransfer(key, p); err != nil {
			s.log.Debug().Err(err).Str("transfer_id", p.ID).Msg("cannot decrypt transfer amount")
		} else {
			c.Amount = amount
			c.AmountKnown = true
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Service) decryptTransfer(key *crypto.KeyMaterial, p rpcclient.PendingTransfer) (types.Amount, error) {
	ephPub, err := base64.StdEncoding.DecodeString(p.EphemeralKey)
	if err != nil {
		return 0, fmt.Errorf("decode ephemeral key: %w", err)
	}
	blob, err := base64.StdEncoding.DecodeString(p.Ciphertext)
	if err != nil {
		return 0, fmt.Errorf("decode ciphertext: %w", err)
	}
	secret, err := key.SharedSecret(ephPub)
	if err != nil {
		return 0, fmt.Errorf("derive shared secret: %w", err)
	}
	k, err := transferKey(secret)
	zero(secret)
	if err != nil {
		return 0, err
	}
	amount, err := open(k, blob)
	zero(k)
	return amount, err
}

// Claim asks the node to credit the referenced transfer into this wallet's
// encrypted balance. Claiming is idempotent at the protocol level: a
// transfer consumed by an earlier claim fails with ErrAlreadyClaimed
// instead of double-crediting. The returned amount is the node's
// authoritative credited value.
func (s *Service) Claim(key *crypto.KeyMaterial, transferID string) (types.Amount, error) {
	res, err := s.client.ClaimPrivateTransfer(rpcclient.ClaimRequest{
		RecipientAddress: key.Address().String(),
		PrivateKey:       key.SeedB64(),
		TransferID:       transferID,
	})
	if err != nil {
		var apiErr *rpcclient.APIError
		if errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Body), "already claimed") {
			return 0, fmt.Errorf("transfer %s: %w", transferID, ErrAlreadyClaimed)
		}
		return 0, fmt.Errorf("claim transfer %s: %w", transferID, err)
	}

	s.log.Info().Str("transfer_id", transferID).Uint64("amount", res.Amount).Msg("transfer claimed")
	return types.Amount(res.Amount), nil
}
