package cart

import (
	"testing"
	"time"
)

func TestManagerReturnsSameEnginePerUser(t *testing.T) {
	m := NewManager(newFakeStore(), time.Hour)
	defer m.Close()

	first := m.ForUser(1)
	second := m.ForUser(1)
	other := m.ForUser(2)

	if first != second {
		t.Fatalf("expected the same engine instance for one user")
	}
	if first == other {
		t.Fatalf("expected distinct engines per user")
	}
}

func TestManagerSweepPersistsAndEvicts(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, time.Hour)
	defer m.Close()

	engine := m.ForUser(7)
	engine.AddItem(pizzaCandidate(), 2)

	m.sweep(time.Now().Add(2 * time.Hour))

	if _, ok, _ := store.Get(t.Context(), UserKey(7)); !ok {
		t.Fatalf("expected evicted engine to persist its snapshot")
	}

	restored := m.ForUser(7)
	if restored == engine {
		t.Fatalf("expected a fresh engine after eviction")
	}
	if restored.TotalItems() != 2 {
		t.Fatalf("expected restored cart with 2 items, got %d", restored.TotalItems())
	}
}
