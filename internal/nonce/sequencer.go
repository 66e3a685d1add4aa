// Package nonce computes the next usable nonce for an address.
package nonce

import (
	"fmt"

	"github.com/rs/zerolog"

	klog "github.com/uchiha0x/Octra-Wallet-Domain/internal/log"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/rpcclient"
)

// Sequencer derives the next nonce from the confirmed transaction count and
// the address's own transactions still in the staging pool. The staging read
// is what prevents nonce reuse when sending in quick succession before
// confirmation.
type Sequencer struct {
	client *rpcclient.Client
	log    zerolog.Logger
}

// New creates a sequencer over the given client.
func New(client *rpcclient.Client) *Sequencer {
	return &Sequencer{client: client, log: klog.Wallet}
}

// NextNonce returns max(confirmedCount, max own pending nonce) + 1.
//
// The confirmed-count fetch is mandatory; if it fails the whole call fails.
// The staging fetch is best-effort: on failure the sequencer degrades to the
// confirmed count alone and logs a warning. The result is never cached;
// callers must re-fetch on every submission cycle because pending nonces
// change as transactions confirm.
func (s *Sequencer) NextNonce(address string) (uint64, error) {
	bal, err := s.client.Balance(address)
	if err != nil {
		return 0, fmt.Errorf("fetch balance for %s: %w", address, err)
	}
	next := bal.Nonce

	staged, err := s.client.Staging()
	if err != nil {
		s.log.Warn().Err(err).Str("address", address).
			Msg("staging fetch failed, falling back to confirmed count")
	} else {
		for _, t := range staged {
			if t.From == address && t.Nonce > next {
				next = t.Nonce
			}
		}
	}

	return next + 1, nil
}
