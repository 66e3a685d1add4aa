package session

import (
	"testing"

	"github.com/uchiha0x/Octra-Wallet-Domain/internal/storage"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	return Init(storage.NewMemory())
}

func ref(name string) WalletRef {
	return WalletRef{Name: name, Address: "oct" + name, Fingerprint: "fp-" + name}
}

func TestAddListRemove(t *testing.T) {
	m := testManager(t)

	if err := m.Add(ref("alpha")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := m.Add(ref("beta")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	refs, err := m.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("got %d wallets, want 2", len(refs))
	}
	for _, r := range refs {
		if r.AddedAt.IsZero() {
			t.Errorf("wallet %s: AddedAt should be stamped", r.Name)
		}
	}

	if err := m.Remove("alpha"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	refs, err = m.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(refs) != 1 || refs[0].Name != "beta" {
		t.Errorf("List() after remove = %v", refs)
	}
}

func TestAdd_Validation(t *testing.T) {
	m := testManager(t)
	if err := m.Add(WalletRef{}); err == nil {
		t.Error("empty name should be rejected")
	}
	if err := m.Add(ref("alpha")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := m.Add(ref("alpha")); err == nil {
		t.Error("duplicate name should be rejected")
	}
}

func TestRemove_Missing(t *testing.T) {
	m := testManager(t)
	if err := m.Remove("nope"); err == nil {
		t.Error("removing an unknown wallet should fail")
	}
}

func TestSwitchActive(t *testing.T) {
	m := testManager(t)
	if err := m.Add(ref("alpha")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := m.Add(ref("beta")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	active, err := m.Active()
	if err != nil {
		t.Fatalf("Active() error: %v", err)
	}
	if active != "" {
		t.Errorf("fresh session active = %q, want empty", active)
	}

	if err := m.SwitchActive("alpha"); err != nil {
		t.Fatalf("SwitchActive() error: %v", err)
	}
	if active, _ = m.Active(); active != "alpha" {
		t.Errorf("active = %q, want alpha", active)
	}

	if err := m.SwitchActive("beta"); err != nil {
		t.Fatalf("SwitchActive() error: %v", err)
	}
	if active, _ = m.Active(); active != "beta" {
		t.Errorf("active = %q, want beta", active)
	}

	if err := m.SwitchActive("nope"); err == nil {
		t.Error("switching to an unknown wallet should fail")
	}
}

func TestRemove_ClearsActive(t *testing.T) {
	m := testManager(t)
	if err := m.Add(ref("alpha")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := m.SwitchActive("alpha"); err != nil {
		t.Fatalf("SwitchActive() error: %v", err)
	}
	if err := m.Remove("alpha"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	active, err := m.Active()
	if err != nil {
		t.Fatalf("Active() error: %v", err)
	}
	if active != "" {
		t.Errorf("active = %q, want empty after removing the active wallet", active)
	}
}

func TestSubscribe(t *testing.T) {
	m := testManager(t)

	var events []Event
	unsubscribe := m.Subscribe(func(ev Event) {
		events = append(events, ev)
	})

	if err := m.Add(ref("alpha")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := m.SwitchActive("alpha"); err != nil {
		t.Fatalf("SwitchActive() error: %v", err)
	}
	if err := m.Remove("alpha"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	want := []Event{
		{Kind: EventAdded, Wallet: "alpha"},
		{Kind: EventSwitched, Wallet: "alpha"},
		{Kind: EventRemoved, Wallet: "alpha"},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, ev := range events {
		if ev != want[i] {
			t.Errorf("events[%d] = %+v, want %+v", i, ev, want[i])
		}
	}

	unsubscribe()
	if err := m.Add(ref("beta")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if len(events) != len(want) {
		t.Error("unsubscribed listener should not receive events")
	}
}

func TestTeardown(t *testing.T) {
	m := testManager(t)
	if err := m.Add(ref("alpha")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	var sawTeardown bool
	m.Subscribe(func(ev Event) {
		if ev.Kind == EventTeardown {
			sawTeardown = true
		}
	})

	if err := m.Teardown(); err != nil {
		t.Fatalf("Teardown() error: %v", err)
	}
	if !sawTeardown {
		t.Error("subscribers should see the teardown event")
	}
}
