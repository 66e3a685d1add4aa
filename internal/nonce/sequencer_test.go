package nonce

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uchiha0x/Octra-Wallet-Domain/internal/rpcclient"
)

type nodeStub struct {
	balanceStatus int
	balanceBody   string
	stagingStatus int
	stagingBody   string
}

func (n *nodeStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/staging":
			if n.stagingStatus != 0 {
				http.Error(w, "staging unavailable", n.stagingStatus)
				return
			}
			fmt.Fprint(w, n.stagingBody)
		default:
			if n.balanceStatus != 0 {
				http.Error(w, "balance unavailable", n.balanceStatus)
				return
			}
			fmt.Fprint(w, n.balanceBody)
		}
	}
}

func testSequencer(t *testing.T, stub *nodeStub) *Sequencer {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	return New(rpcclient.New(srv.URL))
}

func TestNextNonce(t *testing.T) {
	tests := []struct {
		name    string
		stub    nodeStub
		address string
		want    uint64
	}{
		{
			name: "no pending",
			stub: nodeStub{
				balanceBody: `{"balance":"10","nonce":5}`,
				stagingBody: `{"staged_transactions":[]}`,
			},
			address: "octA",
			want:    6,
		},
		{
			name: "own pending ahead of confirmed",
			stub: nodeStub{
				balanceBody: `{"balance":"10","nonce":5}`,
				stagingBody: `{"staged_transactions":[
					{"from":"octA","nonce":6,"stage_status":"pending"},
					{"from":"octA","nonce":7,"stage_status":"pending"}
				]}`,
			},
			address: "octA",
			want:    8,
		},
		{
			name: "other senders ignored",
			stub: nodeStub{
				balanceBody: `{"balance":"10","nonce":5}`,
				stagingBody: `{"staged_transactions":[
					{"from":"octB","nonce":99,"stage_status":"pending"}
				]}`,
			},
			address: "octA",
			want:    6,
		},
		{
			name: "stale pending below confirmed",
			stub: nodeStub{
				balanceBody: `{"balance":"10","nonce":5}`,
				stagingBody: `{"staged_transactions":[
					{"from":"octA","nonce":3,"stage_status":"pending"}
				]}`,
			},
			address: "octA",
			want:    6,
		},
		{
			name: "staging failure degrades to confirmed count",
			stub: nodeStub{
				balanceBody:   `{"balance":"10","nonce":5}`,
				stagingStatus: http.StatusInternalServerError,
			},
			address: "octA",
			want:    6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSequencer(t, &tt.stub)
			got, err := s.NextNonce(tt.address)
			if err != nil {
				t.Fatalf("NextNonce() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NextNonce() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextNonce_BalanceFailureFatal(t *testing.T) {
	s := testSequencer(t, &nodeStub{
		balanceStatus: http.StatusInternalServerError,
		stagingBody:   `{"staged_transactions":[]}`,
	})
	if _, err := s.NextNonce("octA"); err == nil {
		t.Fatal("balance failure should fail the whole call")
	}
}
