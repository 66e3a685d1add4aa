// Package domain registers and resolves ".oct" domain names.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	klog "github.com/uchiha0x/Octra-Wallet-Domain/internal/log"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/rpcclient"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/crypto"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/types"
)

// ErrDomainTaken means the name is already registered to some address.
var ErrDomainTaken = errors.New("domain already registered")

// ErrDomainNotFound means the name resolves to nothing.
var ErrDomainNotFound = errors.New("domain not found")

// Registrar performs domain operations against a node.
type Registrar struct {
	client *rpcclient.Client
	log    zerolog.Logger
}

// New creates a registrar over the given client.
func New(client *rpcclient.Client) *Registrar {
	return &Registrar{client: client, log: klog.Domain}
}

// Register claims a ".oct" name for the wallet's address. The name is
// validated locally before any network call.
func (r *Registrar) Register(key *crypto.KeyMaterial, name string) (string, error) {
	normalized, err := types.ParseDomain(name)
	if err != nil {
		return "", err
	}

	hash, err := r.client.RegisterDomain(rpcclient.RegisterDomainRequest{
		Domain:     normalized,
		Address:    key.Address().String(),
		PrivateKey: key.SeedB64(),
	})
	if err != nil {
		var apiErr *rpcclient.APIError
		if errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Body), "already registered") {
			return "", fmt.Errorf("%s: %w", normalized, ErrDomainTaken)
		}
		return "", fmt.Errorf("register %s: %w", normalized, err)
	}

	r.log.Info().Str("domain", normalized).Str("tx_hash", hash).Msg("domain registered")
	return hash, nil
}

// Resolve returns the address a domain points at.
func (r *Registrar) Resolve(name string) (types.Address, error) {
	normalized, err := types.ParseDomain(name)
	if err != nil {
		return types.Address{}, err
	}

	rec, err := r.client.ResolveDomain(normalized)
	if err != nil {
		var apiErr *rpcclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 404 {
			return types.Address{}, fmt.Errorf("%s: %w", normalized, ErrDomainNotFound)
		}
		return types.Address{}, fmt.Errorf("resolve %s: %w", normalized, err)
	}
	return types.ParseAddress(rec.Address)
}

// List returns the domains registered to an address.
func (r *Registrar) List(address types.Address) ([]string, error) {
	recs, err := r.client.DomainsByAddress(address.String())
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	names := make([]string, 0, len(recs))
	for _, rec := range recs {
		names = append(names, rec.Domain)
	}
	return names, nil
}

// ResolveRecipient accepts either a raw address or a ".oct" domain and
// returns the address to send to.
func (r *Registrar) ResolveRecipient(s string) (types.Address, error) {
	if addr, err := types.ParseAddress(s); err == nil {
		return addr, nil
	}
	if types.ValidDomain(s) {
		return r.Resolve(s)
	}
	return types.Address{}, fmt.Errorf("not an address or .oct domain: %q", s)
}
