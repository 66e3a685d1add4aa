// Package rpcclient provides an HTTP client for the node's REST API.
package rpcclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	klog "github.com/uchiha0x/Octra-Wallet-Domain/internal/log"
)

// DefaultTimeout is the fixed per-request timeout. Timeouts surface as
// ordinary retryable errors, not a distinct protocol state.
const DefaultTimeout = 10 * time.Second

// privateKeyHeader authenticates requests to the node's private-balance
// endpoints.
const privateKeyHeader = "X-Private-Key"

// Client is a REST client for a node endpoint.
type Client struct {
	base string
	http *http.Client
}

// New creates a client targeting the given base URL.
func New(base string) *Client {
	return NewWithTimeout(base, DefaultTimeout)
}

// NewWithTimeout creates a client with a custom HTTP timeout.
func NewWithTimeout(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is returned when the node responds outside the 2xx range.
// The response body is carried verbatim as the error detail.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Body)
}

// Retryable reports whether the failure is transient (server-side).
func (e *APIError) Retryable() bool {
	return e.Status >= 500
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(path string, header map[string]string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	data, err := c.do(req)
	if err != nil {
		return err
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// post performs a POST request with a JSON body and decodes the JSON
// response into out.
func (c *Client) post(path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	data, err := c.do(req)
	if err != nil {
		return err
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// do executes the request and returns the response body, converting non-2xx
// statuses into *APIError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	klog.RPC.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}

// Balance fetches the public balance and confirmed transaction count.
func (c *Client) Balance(address string) (*BalanceResult, error) {
	var res BalanceResult
	if err := c.get("/balance/"+url.PathEscape(address), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Staging fetches the network's pending-transaction pool.
func (c *Client) Staging() ([]LedgerTx, error) {
	var res stagingResult
	if err := c.get("/staging", nil, &res); err != nil {
		return nil, err
	}
	return res.StagedTransactions, nil
}

// AddressInfo fetches account metadata for an address.
func (c *Client) AddressInfo(address string) (*AddressInfo, error) {
	var res AddressInfo
	if err := c.get("/address/"+url.PathEscape(address), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PublicKeyOf fetches the on-chain public key registered for an address.
func (c *Client) PublicKeyOf(address string) (*PublicKeyResult, error) {
	var res PublicKeyResult
	if err := c.get("/public_key/"+url.PathEscape(address), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ViewEncryptedBalance fetches the encrypted-balance snapshot for an
// address. The private key authenticates the view.
func (c *Client) ViewEncryptedBalance(address, privateKeyB64 string) (*EncryptedBalanceResult, error) {
	header := map[string]string{privateKeyHeader: privateKeyB64}
	var res EncryptedBalanceResult
	if err := c.get("/view_encrypted_balance/"+url.PathEscape(address), header, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// EncryptBalance asks the node to move public balance into the encrypted
// balance, replacing the stored ciphertext with the provided one.
func (c *Client) EncryptBalance(req BalanceCipherRequest) (string, error) {
	var res txHashResult
	if err := c.post("/encrypt_balance", req, &res); err != nil {
		return "", err
	}
	return res.TxHash, nil
}

// DecryptBalance asks the node to move encrypted balance back to public.
func (c *Client) DecryptBalance(req BalanceCipherRequest) (string, error) {
	var res txHashResult
	if err := c.post("/decrypt_balance", req, &res); err != nil {
		return "", err
	}
	return res.TxHash, nil
}

// PrivateTransfer submits a hidden-amount transfer.
func (c *Client) PrivateTransfer(req PrivateTransferRequest) (*PrivateTransferResult, error) {
	var res PrivateTransferResult
	if err := c.post("/private_transfer", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PendingPrivateTransfers lists transfers addressed to the given address
// that have not been claimed yet.
func (c *Client) PendingPrivateTransfers(address, privateKeyB64 string) ([]PendingTransfer, error) {
	header := map[string]string{privateKeyHeader: privateKeyB64}
	var res pendingTransfersResult
	if err := c.get("/pending_private_transfers?address="+url.QueryEscape(address), header, &res); err != nil {
		return nil, err
	}
	return res.PendingTransfers, nil
}

// ClaimPrivateTransfer asks the node to credit a pending transfer into the
// recipient's encrypted balance.
func (c *Client) ClaimPrivateTransfer(req ClaimRequest) (*ClaimResult, error) {
	var res ClaimResult
	if err := c.post("/claim_private_transfer", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ResolveDomain looks up the address a ".oct" domain points at.
func (c *Client) ResolveDomain(name string) (*DomainRecord, error) {
	var res DomainRecord
	if err := c.get("/resolve_domain/"+url.PathEscape(name), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DomainsByAddress lists the domains registered to an address.
func (c *Client) DomainsByAddress(address string) ([]DomainRecord, error) {
	var res domainsResult
	if err := c.get("/domains_by_address/"+url.PathEscape(address), nil, &res); err != nil {
		return nil, err
	}
	return res.Domains, nil
}

// RegisterDomain registers a ".oct" domain for an address.
func (c *Client) RegisterDomain(req RegisterDomainRequest) (string, error) {
	var res txHashResult
	if err := c.post("/register_domain", req, &res); err != nil {
		return "", err
	}
	return res.TxHash, nil
}
