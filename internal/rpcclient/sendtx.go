package rpcclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/tx"
)

// SendTx submits a signed transaction. The node answers either with JSON
// {"status":"accepted","tx_hash":...} or with the legacy text form
// "OK <64-hex-hash>"; both are accepted. Any other body is a failure
// carrying the body as detail.
func (c *Client) SendTx(t *tx.Transaction) (string, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("marshal transaction: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.base+"/send-tx", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	data, err := c.do(req)
	if err != nil {
		return "", err
	}

	var res struct {
		Status string `json:"status"`
		TxHash string `json:"tx_hash"`
	}
	if err := json.Unmarshal(data, &res); err == nil && res.Status == "accepted" && res.TxHash != "" {
		return res.TxHash, nil
	}

	body := strings.TrimSpace(string(data))
	if rest, ok := strings.CutPrefix(body, "OK"); ok {
		hash := strings.TrimSpace(rest)
		if len(hash) == 64 {
			return hash, nil
		}
	}
	return "", fmt.Errorf("unexpected send-tx response: %s", body)
}
