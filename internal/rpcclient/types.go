package rpcclient

import (
	"encoding/json"
)

// BalanceResult is the response of GET /balance/{address}. The balance is
// a display-unit decimal the node may encode as either string or number.
type BalanceResult struct {
	Balance json.Number `json:"balance"`
	Nonce   uint64      `json:"nonce"` // confirmed transaction count
}

// TxStatus distinguishes staged (pending) from confirmed transactions.
type TxStatus int

const (
	TxConfirmed TxStatus = iota
	TxStaged
)

// LedgerTx is a transaction as reported by the node, either from the
// staging pool or from confirmed history. The discriminant is computed
// once at the deserialization boundary: the node attaches a stage_status
// field to staged entries only.
type LedgerTx struct {
	Status      TxStatus
	From        string
	To          string
	Amount      json.Number
	Nonce       uint64
	Hash        string
	Timestamp   float64
	StageStatus string // only meaningful when Status == TxStaged
}

type ledgerTxJSON struct {
	From        string      `json:"from"`
	To          string      `json:"to"`
	Amount      json.Number `json:"amount"`
	Nonce       uint64      `json:"nonce"`
	Hash        string      `json:"hash"`
	Timestamp   float64     `json:"timestamp"`
	StageStatus *string     `json:"stage_status"`
}

// UnmarshalJSON decodes a node transaction and selects the staged vs
// confirmed variant from the presence of stage_status.
func (t *LedgerTx) UnmarshalJSON(data []byte) error {
	var j ledgerTxJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*t = LedgerTx{
		Status:    TxConfirmed,
		From:      j.From,
		To:        j.To,
		Amount:    j.Amount,
		Nonce:     j.Nonce,
		Hash:      j.Hash,
		Timestamp: j.Timestamp,
	}
	if j.StageStatus != nil {
		t.Status = TxStaged
		t.StageStatus = *j.StageStatus
	}
	return nil
}

type stagingResult struct {
	StagedTransactions []LedgerTx `json:"staged_transactions"`
}

// AddressInfo is the response of GET /address/{address}.
type AddressInfo struct {
	Address      string      `json:"address"`
	Balance      json.Number `json:"balance"`
	Nonce        uint64      `json:"nonce"`
	HasPublicKey bool        `json:"has_public_key"`
	Transactions []LedgerTx  `json:"recent_transactions"`
}

// PublicKeyResult is the response of GET /public_key/{address}.
type PublicKeyResult struct {
	PublicKey    string `json:"public_key"` // base64
	HasPublicKey bool   `json:"has_public_key"`
}

// EncryptedBalanceResult is the response of GET /view_encrypted_balance.
// The string fields are display values ("<number> <symbol>"); the raw
// fields are integer micro-units.
type EncryptedBalanceResult struct {
	PublicBalance    string `json:"public_balance"`
	EncryptedBalance string `json:"encrypted_balance"`
	TotalBalance     string `json:"total_balance"`
	PublicRaw        uint64 `json:"public_balance_raw"`
	EncryptedRaw     uint64 `json:"encrypted_balance_raw"`
	TotalRaw         uint64 `json:"total_balance_raw"`
	EncryptedData    string `json:"encrypted_data"` // base64 ciphertext
}

// BalanceCipherRequest is the body of POST /encrypt_balance and
// POST /decrypt_balance.
type BalanceCipherRequest struct {
	Address       string `json:"address"`
	Amount        string `json:"amount"` // micro-units, decimal string
	PrivateKey    string `json:"private_key"`
	EncryptedData string `json:"encrypted_data"` // fresh ciphertext for the new total
}

type txHashResult struct {
	TxHash string `json:"tx_hash"`
}

// PrivateTransferRequest is the body of POST /private_transfer.
type PrivateTransferRequest struct {
	From           string `json:"from"`
	To             string `json:"to"`
	Amount         string `json:"amount"`
	FromPrivateKey string `json:"from_private_key"`
	ToPublicKey    string `json:"to_public_key"`
	EphemeralKey   string `json:"ephemeral_key,omitempty"`  // base64 X25519 public
	EncryptedData  string `json:"encrypted_data,omitempty"` // base64 amount ciphertext
}

// PrivateTransferResult is the response of POST /private_transfer.
type PrivateTransferResult struct {
	TxHash       string `json:"tx_hash"`
	EphemeralKey string `json:"ephemeral_key"`
}

// PendingTransfer is one entry of GET /pending_private_transfers.
type PendingTransfer struct {
	ID           string `json:"id"`
	Sender       string `json:"sender"`
	Recipient    string `json:"recipient"`
	EphemeralKey string `json:"ephemeral_key"` // base64 X25519 public
	Ciphertext   string `json:"encrypted_data"`
	Epoch        uint64 `json:"epoch_id"`
}

type pendingTransfersResult struct {
	PendingTransfers []PendingTransfer `json:"pending_transfers"`
}

// ClaimRequest is the body of POST /claim_private_transfer.
type ClaimRequest struct {
	RecipientAddress string `json:"recipient_address"`
	PrivateKey       string `json:"private_key"`
	TransferID       string `json:"transfer_id"`
}

// ClaimResult is the response of POST /claim_private_transfer. The amount
// is the authoritative credited value in micro-units.
type ClaimResult struct {
	Amount uint64 `json:"amount"`
}

// DomainRecord is a ".oct" domain registration.
type DomainRecord struct {
	Domain  string `json:"domain"`
	Address string `json:"address"`
	TxHash  string `json:"tx_hash,omitempty"`
}

type domainsResult struct {
	Domains []DomainRecord `json:"domains"`
}

// RegisterDomainRequest is the body of POST /register_domain.
type RegisterDomainRequest struct {
	Domain     string `json:"domain"`
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
}
