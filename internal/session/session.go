// Package session holds the explicit wallet-session state: the persisted
// wallet list, the active-wallet pointer, and an event channel that
// replaces ambient cross-tab storage side effects.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	klog "github.com/uchiha0x/Octra-Wallet-Domain/internal/log"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/storage"
)

// EventKind labels a session change.
type EventKind int

const (
	EventAdded EventKind = iota
	EventRemoved
	EventSwitched
	EventTeardown
)

// Event notifies subscribers of a session change.
type Event struct {
	Kind   EventKind
	Wallet string // wallet name; empty for EventTeardown
}

// Listener receives session events. Listeners run synchronously on the
// mutating call; they must not call back into the manager.
type Listener func(Event)

// WalletRef is one entry of the persisted wallet list.
type WalletRef struct {
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Fingerprint string    `json:"fingerprint"`
	AddedAt     time.Time `json:"added_at"`
}

// Manager owns the session state. All mutation goes through its methods;
// there is no ambient global. Concurrent use from multiple goroutines is
// safe, but two independent processes still race on nonces (the store's
// directory lock only protects the metadata itself).
type Manager struct {
	mu        sync.Mutex
	db        storage.DB
	listeners map[int]Listener
	nextID    int
	log       zerolog.Logger
}

// Init opens a session over the given store.
func Init(db storage.DB) *Manager {
	return &Manager{
		db:        db,
		listeners: make(map[int]Listener),
		log:       klog.Session,
	}
}

// Add records a wallet in the session list.
func (m *Manager) Add(ref WalletRef) error {
	if ref.Name == "" {
		return fmt.Errorf("empty wallet name")
	}
	if ref.AddedAt.IsZero() {
		ref.AddedAt = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := storage.WalletKey(ref.Name)
	if ok, err := m.db.Has(key); err != nil {
		return fmt.Errorf("check wallet %q: %w", ref.Name, err)
	} else if ok {
		return fmt.Errorf("wallet %q already in session", ref.Name)
	}

	data, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("marshal wallet ref: %w", err)
	}
	if err := m.db.Put(key, data); err != nil {
		return fmt.Errorf("store wallet ref: %w", err)
	}

	m.notify(Event{Kind: EventAdded, Wallet: ref.Name})
	m.log.Info().Str("wallet", ref.Name).Str("address", ref.Address).Msg("wallet added to session")
	return nil
}

// Remove drops a wallet from the session list. Removing the active wallet
// clears the active pointer.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := storage.WalletKey(name)
	if ok, err := m.db.Has(key); err != nil {
		return fmt.Errorf("check wallet %q: %w", name, err)
	} else if !ok {
		return fmt.Errorf("wallet %q not in session", name)
	}
	if err := m.db.Delete(key); err != nil {
		return fmt.Errorf("remove wallet ref: %w", err)
	}

	if active, _ := m.activeLocked(); active == name {
		if err := m.db.Delete(storage.KeyActiveWallet); err != nil {
			return fmt.Errorf("clear active wallet: %w", err)
		}
	}

	m.notify(Event{Kind: EventRemoved, Wallet: name})
	return nil
}

// SwitchActive points the session at a different wallet.
func (m *Manager) SwitchActive(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ok, err := m.db.Has(storage.WalletKey(name)); err != nil {
		return fmt.Errorf("check wallet %q: %w", name, err)
	} else if !ok {
		return fmt.Errorf("wallet %q not in session", name)
	}
	if err := m.db.Put(storage.KeyActiveWallet, []byte(name)); err != nil {
		return fmt.Errorf("set active wallet: %w", err)
	}

	m.notify(Event{Kind: EventSwitched, Wallet: name})
	return nil
}

// Active returns the active wallet name, or "" when none is set.
func (m *Manager) Active() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeLocked()
}

func (m *Manager) activeLocked() (string, error) {
	v, err := m.db.Get(storage.KeyActiveWallet)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// List returns all wallets in the session.
func (m *Manager) List() ([]WalletRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var refs []WalletRef
	err := m.db.ForEach(storage.PrefixWallet, func(_, value []byte) error {
		var ref WalletRef
		if err := json.Unmarshal(value, &ref); err != nil {
			return fmt.Errorf("parse wallet ref: %w", err)
		}
		refs = append(refs, ref)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// Subscribe registers a listener and returns its unsubscribe function.
func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Teardown ends the session: notifies subscribers and closes the store.
// Key material held by callers must be zeroed by them; the manager never
// holds seeds.
func (m *Manager) Teardown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notify(Event{Kind: EventTeardown})
	m.listeners = make(map[int]Listener)
	return m.db.Close()
}

func (m *Manager) notify(ev Event) {
	for _, fn := range m.listeners {
		fn(ev)
	}
}
