package rpcclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/tx"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestBalance(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/balance/oct123" {
			t.Errorf("path = %s, want /balance/oct123", r.URL.Path)
		}
		fmt.Fprint(w, `{"balance":"12.345678","nonce":5}`)
	})

	res, err := c.Balance("oct123")
	if err != nil {
		t.Fatalf("Balance() error: %v", err)
	}
	if res.Balance.String() != "12.345678" {
		t.Errorf("balance = %s, want 12.345678", res.Balance)
	}
	if res.Nonce != 5 {
		t.Errorf("nonce = %d, want 5", res.Nonce)
	}
}

func TestBalance_NumericBalance(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"balance":12.5,"nonce":1}`)
	})
	res, err := c.Balance("oct123")
	if err != nil {
		t.Fatalf("Balance() error: %v", err)
	}
	if res.Balance.String() != "12.5" {
		t.Errorf("balance = %s, want 12.5", res.Balance)
	}
}

func TestAPIError(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "address not found", http.StatusNotFound)
	})

	_, err := c.Balance("octmissing")
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.Status)
	}
	if apiErr.Body != "address not found" {
		t.Errorf("body = %q, want %q", apiErr.Body, "address not found")
	}
	if apiErr.Retryable() {
		t.Error("404 should not be retryable")
	}
}

func TestAPIError_Retryable(t *testing.T) {
	if !(&APIError{Status: 500}).Retryable() {
		t.Error("500 should be retryable")
	}
	if !(&APIError{Status: 503}).Retryable() {
		t.Error("503 should be retryable")
	}
	if (&APIError{Status: 400}).Retryable() {
		t.Error("400 should not be retryable")
	}
}

func TestStaging_TaggedUnion(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"staged_transactions":[
			{"from":"octA","to":"octB","amount":"100","nonce":6,"hash":"h1","stage_status":"pending"},
			{"from":"octA","to":"octC","amount":"200","nonce":7,"hash":"h2"}
		]}`)
	})

	txs, err := c.Staging()
	if err != nil {
		t.Fatalf("Staging() error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	if txs[0].Status != TxStaged {
		t.Errorf("tx with stage_status should be staged, got %v", txs[0].Status)
	}
	if txs[0].StageStatus != "pending" {
		t.Errorf("stage status = %s, want pending", txs[0].StageStatus)
	}
	if txs[1].Status != TxConfirmed {
		t.Errorf("tx without stage_status should be confirmed, got %v", txs[1].Status)
	}
}

func TestLedgerTx_EmptyStageStatus(t *testing.T) {
	// An explicit empty stage_status still marks the entry as staged; only
	// the field's absence means confirmed.
	var lt LedgerTx
	if err := json.Unmarshal([]byte(`{"from":"a","stage_status":""}`), &lt); err != nil {
		t.Fatalf("UnmarshalJSON() error: %v", err)
	}
	if lt.Status != TxStaged {
		t.Errorf("status = %v, want staged", lt.Status)
	}
}

func TestSendTx_JSONResponse(t *testing.T) {
	hash := "a1b2c3"
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send-tx" {
			t.Errorf("path = %s, want /send-tx", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s, want application/json", ct)
		}
		var body tx.Transaction
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if body.From != "octA" || body.Nonce != 3 {
			t.Errorf("unexpected transaction body: %+v", body)
		}
		fmt.Fprintf(w, `{"status":"accepted","tx_hash":"%s"}`, hash)
	})

	got, err := c.SendTx(&tx.Transaction{From: "octA", To: "octB", Amount: "1", Nonce: 3, OU: "1"})
	if err != nil {
		t.Fatalf("SendTx() error: %v", err)
	}
	if got != hash {
		t.Errorf("hash = %s, want %s", got, hash)
	}
}

func TestSendTx_TextResponse(t *testing.T) {
	hash := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "OK %s\n", hash)
	})

	got, err := c.SendTx(&tx.Transaction{From: "a", To: "b", Amount: "1", Nonce: 1, OU: "1"})
	if err != nil {
		t.Fatalf("SendTx() error: %v", err)
	}
	if got != hash {
		t.Errorf("hash = %s, want %s", got, hash)
	}
}

func TestSendTx_Malformed(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK nothex")
	})
	if _, err := c.SendTx(&tx.Transaction{From: "a", To: "b", Amount: "1", Nonce: 1, OU: "1"}); err == nil {
		t.Error("malformed hash should be rejected")
	}
}

func TestSendTx_Rejected(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid signature", http.StatusBadRequest)
	})
	_, err := c.SendTx(&tx.Transaction{From: "a", To: "b", Amount: "1", Nonce: 1, OU: "1"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Body != "invalid signature" {
		t.Errorf("body = %q, want %q", apiErr.Body, "invalid signature")
	}
}

func TestViewEncryptedBalance_Header(t *testing.T) {
	key := "c2VlZA=="
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Private-Key"); got != key {
			t.Errorf("X-Private-Key = %q, want %q", got, key)
		}
		fmt.Fprint(w, `{"public_balance":"5.0 OCT","public_balance_raw":5000000,
			"encrypted_balance":"2.0 OCT","encrypted_balance_raw":2000000,
			"total_balance":"7.0 OCT","total_balance_raw":7000000,
			"encrypted_data":"YmxvYg=="}`)
	})

	res, err := c.ViewEncryptedBalance("octA", key)
	if err != nil {
		t.Fatalf("ViewEncryptedBalance() error: %v", err)
	}
	if res.PublicRaw != 5_000_000 || res.EncryptedRaw != 2_000_000 || res.TotalRaw != 7_000_000 {
		t.Errorf("raw balances = %d/%d/%d", res.PublicRaw, res.EncryptedRaw, res.TotalRaw)
	}
	if res.EncryptedData != "YmxvYg==" {
		t.Errorf("encrypted data = %s", res.EncryptedData)
	}
}

func TestPendingPrivateTransfers(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got != "octA" {
			t.Errorf("address query = %s, want octA", got)
		}
		if r.Header.Get("X-Private-Key") == "" {
			t.Error("missing X-Private-Key header")
		}
		fmt.Fprint(w, `{"pending_transfers":[
			{"id":"t1","sender":"octB","recipient":"octA","ephemeral_key":"ZWs=","encrypted_data":"Y3Q=","epoch_id":12}
		]}`)
	})

	transfers, err := c.PendingPrivateTransfers("octA", "a2V5")
	if err != nil {
		t.Fatalf("PendingPrivateTransfers() error: %v", err)
	}
	if len(transfers) != 1 {
		t.Fatalf("got %d transfers, want 1", len(transfers))
	}
	pt := transfers[0]
	if pt.ID != "t1" || pt.Sender != "octB" || pt.Epoch != 12 {
		t.Errorf("unexpected transfer: %+v", pt)
	}
}

func TestResolveDomain(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resolve_domain/alice.oct" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"domain":"alice.oct","address":"octA"}`)
	})

	rec, err := c.ResolveDomain("alice.oct")
	if err != nil {
		t.Fatalf("ResolveDomain() error: %v", err)
	}
	if rec.Address != "octA" {
		t.Errorf("address = %s, want octA", rec.Address)
	}
}

func TestNewWithTimeout_Defaults(t *testing.T) {
	c := NewWithTimeout("http://localhost:8080/", 0)
	if c.http.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", c.http.Timeout, DefaultTimeout)
	}
	if c.base != "http://localhost:8080" {
		t.Errorf("base = %s, trailing slash should be trimmed", c.base)
	}
}
