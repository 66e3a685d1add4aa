// Package submit sends ordered transaction lists in fixed-size concurrent
// batches.
package submit

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	klog "github.com/uchiha0x/Octra-Wallet-Domain/internal/log"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/rpcclient"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/crypto"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/tx"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/types"
)

// BatchSize is the number of transactions submitted concurrently per batch.
const BatchSize = 5

// batchPause is the pacing delay between batches.
const batchPause = 50 * time.Millisecond

// Recipient is one entry of an ordered multi-send.
type Recipient struct {
	Address types.Address
	Amount  types.Amount
	Message string
}

// Result is the per-item outcome of SubmitAll, in input order.
type Result struct {
	Recipient types.Address
	Amount    types.Amount
	Nonce     uint64
	Hash      string
	Err       error
}

// Success reports whether the item was accepted by the node.
func (r Result) Success() bool {
	return r.Err == nil
}

// Submitter submits signed transactions through the RPC client. It holds no
// mutable state between calls; everything a submission needs is passed in.
type Submitter struct {
	client *rpcclient.Client
	log    zerolog.Logger
}

// New creates a submitter over the given client.
func New(client *rpcclient.Client) *Submitter {
	return &Submitter{client: client, log: klog.Submit}
}

// SubmitAll sends one transaction per recipient. Nonces are assigned
// sequentially from startingNonce before any network call, so the intended
// chain order is fixed up front: recipient i gets startingNonce + i,
// strictly increasing and gap-free. Transactions go out in batches of
// BatchSize; within a batch all submissions run concurrently and all
// outcomes are awaited before the next batch starts, with a fixed pause
// between batches.
//
// A failed item never aborts or retries its siblings; its nonce is simply
// consumed. Callers that want to re-send must fetch a fresh nonce range.
// Input validation happens for the whole list before the first nonce is
// assigned or any network call is made.
func (s *Submitter) SubmitAll(recipients []Recipient, startingNonce uint64, key *crypto.KeyMaterial) ([]Result, error) {
	if len(recipients) == 0 {
		return nil, nil
	}
	if startingNonce == 0 {
		return nil, fmt.Errorf("starting nonce must be positive")
	}
	for i, r := range recipients {
		if r.Address.IsZero() {
			return nil, fmt.Errorf("recipient %d: empty address", i)
		}
		if r.Amount == 0 {
			return nil, fmt.Errorf("recipient %d: amount must be positive", i)
		}
		if utf8.RuneCountInString(r.Message) > tx.MaxMessageLen {
			return nil, fmt.Errorf("recipient %d: message too long", i)
		}
	}

	from := key.Address()
	results := make([]Result, len(recipients))

	for start := 0; start < len(recipients); start += BatchSize {
		if start > 0 {
			time.Sleep(batchPause)
		}
		end := start + BatchSize
		if end > len(recipients) {
			end = len(recipients)
		}

		// Build and sign the whole batch synchronously so every item holds
		// its nonce before anything reaches the network.
		batch := make([]*tx.Transaction, end-start)
		for i := start; i < end; i++ {
			r := recipients[i]
			n := startingNonce + uint64(i)
			results[i] = Result{Recipient: r.Address, Amount: r.Amount, Nonce: n}
			t, err := tx.Build(from, r.Address, r.Amount, n, key, r.Message)
			if err != nil {
				results[i].Err = err
				continue
			}
			batch[i-start] = t
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			if results[i].Err != nil {
				continue
			}
			wg.Add(1)
			go func(idx int, t *tx.Transaction) {
				defer wg.Done()
				hash, err := s.client.SendTx(t)
				if err != nil {
					results[idx].Err = err
					return
				}
				results[idx].Hash = hash
			}(i, batch[i-start])
		}
		wg.Wait()

		s.log.Debug().
			Int("batch_start", start).
			Int("batch_size", end-start).
			Msg("batch submitted")
	}

	ok := 0
	for _, r := range results {
		if r.Success() {
			ok++
		}
	}
	s.log.Info().
		Int("total", len(results)).
		Int("accepted", ok).
		Uint64("starting_nonce", startingNonce).
		Msg("multi-send complete")

	return results, nil
}
