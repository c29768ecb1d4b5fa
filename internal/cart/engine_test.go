package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

type fakeStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.data[key]
	return payload, ok, nil
}

func (s *fakeStore) Set(_ context.Context, key, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = payload
	return nil
}

func (s *fakeStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store unavailable")
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("store unavailable")
}

func (failingStore) Remove(context.Context, string) error {
	return errors.New("store unavailable")
}

func money(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func pizzaCandidate() Candidate {
	return Candidate{
		ProductID:   "p1",
		ProductType: "pizza",
		Size:        "medium",
		UnitPrice:   money("40"),
		Toppings: []ToppingSelection{
			{ToppingID: "mozzarella", Name: "Mozzarella", Price: money("5"), Quantity: 1},
		},
	}
}

func TestAddItemMergesIdenticalConfigurations(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	e.AddItem(pizzaCandidate(), 1)
	e.AddItem(pizzaCandidate(), 2)
	e.AddItem(pizzaCandidate(), 3)

	if e.Len() != 1 {
		t.Fatalf("expected 1 line item, got %d", e.Len())
	}
	if e.TotalItems() != 6 {
		t.Fatalf("expected total items 6, got %d", e.TotalItems())
	}
}

func TestAddItemToppingOrderIrrelevant(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	first := pizzaCandidate()
	first.Toppings = []ToppingSelection{
		{ToppingID: "mozzarella", Price: money("5"), Quantity: 1},
		{ToppingID: "olives", Price: money("3"), Quantity: 2},
	}
	second := pizzaCandidate()
	second.Toppings = []ToppingSelection{
		{ToppingID: "olives", Price: money("3"), Quantity: 2},
		{ToppingID: "mozzarella", Price: money("5"), Quantity: 1},
	}

	e.AddItem(first, 1)
	e.AddItem(second, 1)

	if e.Len() != 1 {
		t.Fatalf("expected topping order not to affect identity, got %d line items", e.Len())
	}
	if e.LineItems()[0].Quantity != 2 {
		t.Fatalf("expected merged quantity 2, got %d", e.LineItems()[0].Quantity)
	}
}

func TestAddItemToppingQuantityDistinguishes(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	single := pizzaCandidate()
	double := pizzaCandidate()
	double.Toppings = []ToppingSelection{
		{ToppingID: "mozzarella", Price: money("5"), Quantity: 2},
	}

	e.AddItem(single, 1)
	e.AddItem(double, 1)

	if e.Len() != 2 {
		t.Fatalf("expected distinct line items for different topping quantities, got %d", e.Len())
	}
}

func TestAddItemZeroQuantityToppingNotStored(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	plain := pizzaCandidate()
	plain.Toppings = nil

	ghost := pizzaCandidate()
	ghost.Toppings = []ToppingSelection{
		{ToppingID: "mozzarella", Price: money("5"), Quantity: 0},
	}

	e.AddItem(plain, 1)
	e.AddItem(ghost, 1)

	if e.Len() != 1 {
		t.Fatalf("zero-quantity topping should be dropped before identity check, got %d line items", e.Len())
	}
	if len(e.LineItems()[0].Toppings) != 0 {
		t.Fatalf("expected no stored toppings, got %+v", e.LineItems()[0].Toppings)
	}
}

func TestAddItemCustomizationsAffectIdentity(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	spicy := pizzaCandidate()
	spicy.Customizations = map[string]string{"spice": "hot"}
	mild := pizzaCandidate()
	mild.Customizations = map[string]string{"spice": "mild"}

	e.AddItem(spicy, 1)
	e.AddItem(mild, 1)
	e.AddItem(spicy, 1)

	if e.Len() != 2 {
		t.Fatalf("expected customizations to split configurations, got %d line items", e.Len())
	}
	if e.TotalItems() != 3 {
		t.Fatalf("expected total items 3, got %d", e.TotalItems())
	}
}

func TestAddItemClampsNonPositiveQuantity(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	e.AddItem(pizzaCandidate(), 0)
	e.AddItem(pizzaCandidate(), -5)

	if e.Len() != 1 {
		t.Fatalf("expected 1 line item, got %d", e.Len())
	}
	if e.TotalItems() != 2 {
		t.Fatalf("expected clamp to 1 per add, got total %d", e.TotalItems())
	}
}

func TestTotalsConcreteScenario(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	e.AddItem(pizzaCandidate(), 1)
	if e.Len() != 1 || e.TotalItems() != 1 {
		t.Fatalf("unexpected cart after first add: len=%d items=%d", e.Len(), e.TotalItems())
	}
	if !e.TotalPrice().Equal(money("45")) {
		t.Fatalf("expected total 45, got %s", e.TotalPrice())
	}

	e.AddItem(pizzaCandidate(), 2)
	if e.Len() != 1 {
		t.Fatalf("expected identical config to merge, got %d line items", e.Len())
	}
	if e.TotalItems() != 3 {
		t.Fatalf("expected total items 3, got %d", e.TotalItems())
	}
	if !e.TotalPrice().Equal(money("135")) {
		t.Fatalf("expected total 135, got %s", e.TotalPrice())
	}

	plain := pizzaCandidate()
	plain.Toppings = nil
	e.AddItem(plain, 1)
	if e.Len() != 2 {
		t.Fatalf("expected 2 line items, got %d", e.Len())
	}
	if e.TotalItems() != 4 {
		t.Fatalf("expected total items 4, got %d", e.TotalItems())
	}
	if !e.TotalPrice().Equal(money("175")) {
		t.Fatalf("expected total 175, got %s", e.TotalPrice())
	}
}

func TestToppingQuantityMultipliesIntoLineTotal(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	candidate := pizzaCandidate()
	candidate.Toppings = []ToppingSelection{
		{ToppingID: "mozzarella", Price: money("5"), Quantity: 2},
		{ToppingID: "olives", Price: money("2.50"), Quantity: 1},
	}
	e.AddItem(candidate, 3)

	// (40 + 5*2 + 2.50) * 3 = 157.50
	if !e.TotalPrice().Equal(money("157.50")) {
		t.Fatalf("expected total 157.50, got %s", e.TotalPrice())
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	first := pizzaCandidate()
	second := pizzaCandidate()
	second.Size = "large"
	second.UnitPrice = money("50")
	third := pizzaCandidate()
	third.Size = "family"
	third.UnitPrice = money("60")

	e.AddItem(first, 1)
	e.AddItem(second, 1)
	e.AddItem(third, 1)

	e.UpdateQuantity(1, 0)
	if e.Len() != 2 {
		t.Fatalf("expected second line removed, got %d line items", e.Len())
	}
	items := e.LineItems()
	if items[0].Size != "medium" || items[1].Size != "family" {
		t.Fatalf("expected remaining lines to keep order, got %s then %s", items[0].Size, items[1].Size)
	}

	e.UpdateQuantity(0, -5)
	if e.Len() != 1 {
		t.Fatalf("expected negative quantity to remove, got %d line items", e.Len())
	}
	if e.LineItems()[0].Size != "family" {
		t.Fatalf("unexpected remaining line: %+v", e.LineItems()[0])
	}
}

func TestUpdateQuantityReplacesValue(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	e.AddItem(pizzaCandidate(), 1)
	e.UpdateQuantity(0, 7)

	if e.TotalItems() != 7 {
		t.Fatalf("expected quantity 7, got %d", e.TotalItems())
	}
}

func TestIndexOutOfRangeIsNoop(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	e.AddItem(pizzaCandidate(), 1)

	e.UpdateQuantity(5, 2)
	e.UpdateQuantity(-1, 2)
	e.RemoveItem(5)
	e.RemoveItem(-1)

	if e.Len() != 1 || e.TotalItems() != 1 {
		t.Fatalf("out-of-range operations must not change the cart: len=%d items=%d", e.Len(), e.TotalItems())
	}
}

func TestClearIsIdempotent(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	e.AddItem(pizzaCandidate(), 3)
	e.Clear()
	e.Clear()

	if e.Len() != 0 {
		t.Fatalf("expected empty cart, got %d line items", e.Len())
	}
	if e.TotalItems() != 0 {
		t.Fatalf("expected total items 0, got %d", e.TotalItems())
	}
	if !e.TotalPrice().Equal(decimal.Zero) {
		t.Fatalf("expected total price 0, got %s", e.TotalPrice())
	}
}

func TestRoundTripPersistence(t *testing.T) {
	store := newFakeStore()
	e := NewEngine("cart:42", store)

	withExtras := pizzaCandidate()
	withExtras.Toppings = []ToppingSelection{
		{ToppingID: "olives", Name: "Olives", Price: money("3"), Quantity: 2},
		{ToppingID: "mozzarella", Name: "Mozzarella", Price: money("5"), Quantity: 1},
	}
	withExtras.Customizations = map[string]string{"crust": "thin"}
	e.AddItem(withExtras, 2)

	pasta := Candidate{
		ProductID:   "pasta-1",
		ProductType: "pasta",
		UnitPrice:   money("35.50"),
	}
	e.AddItem(pasta, 1)

	e.persistSnapshot()
	e.Close()

	restored := NewEngine("cart:42", store)
	defer restored.Close()

	original := e.LineItems()
	got := restored.LineItems()
	if len(got) != len(original) {
		t.Fatalf("expected %d line items after restore, got %d", len(original), len(got))
	}
	for i := range original {
		if !sameConfiguration(original[i], got[i]) {
			t.Fatalf("restored line %d differs: %+v vs %+v", i, original[i], got[i])
		}
		if got[i].Quantity != original[i].Quantity {
			t.Fatalf("restored quantity differs at %d: %d vs %d", i, got[i].Quantity, original[i].Quantity)
		}
		if !got[i].UnitPrice.Equal(original[i].UnitPrice) {
			t.Fatalf("restored unit price differs at %d: %s vs %s", i, got[i].UnitPrice, original[i].UnitPrice)
		}
		for j := range original[i].Toppings {
			if got[i].Toppings[j].Name != original[i].Toppings[j].Name ||
				!got[i].Toppings[j].Price.Equal(original[i].Toppings[j].Price) {
				t.Fatalf("restored topping differs at %d/%d", i, j)
			}
		}
	}
	if !restored.TotalPrice().Equal(e.TotalPrice()) {
		t.Fatalf("expected restored total %s, got %s", e.TotalPrice(), restored.TotalPrice())
	}
}

func TestClearRemovesStoredKey(t *testing.T) {
	store := newFakeStore()
	e := NewEngine("cart:42", store)
	defer e.Close()

	e.AddItem(pizzaCandidate(), 1)
	e.persistSnapshot()
	if _, ok, _ := store.Get(context.Background(), "cart:42"); !ok {
		t.Fatalf("expected stored snapshot before clear")
	}

	e.Clear()
	e.persistSnapshot()
	if _, ok, _ := store.Get(context.Background(), "cart:42"); ok {
		t.Fatalf("expected stored key removed after clear")
	}

	restored := NewEngine("cart:42", store)
	defer restored.Close()
	if restored.Len() != 0 {
		t.Fatalf("expected restore-after-clear to be empty, got %d line items", restored.Len())
	}
}

func TestRestoreCorruptPayloadStartsEmpty(t *testing.T) {
	store := newFakeStore()
	if err := store.Set(context.Background(), "cart:42", "{not json"); err != nil {
		t.Fatalf("seed store failed: %v", err)
	}

	e := NewEngine("cart:42", store)
	defer e.Close()
	if e.Len() != 0 {
		t.Fatalf("expected empty cart on corrupt payload, got %d line items", e.Len())
	}
}

func TestStoreFailureDoesNotAffectState(t *testing.T) {
	e := NewEngine("cart:42", failingStore{})
	defer e.Close()

	e.AddItem(pizzaCandidate(), 2)
	e.persistSnapshot()

	if e.TotalItems() != 2 {
		t.Fatalf("in-memory state must survive store failure, got %d items", e.TotalItems())
	}
}

func TestLineItemsSnapshotIsIsolated(t *testing.T) {
	e := NewEngine("cart:test", nil)
	defer e.Close()

	e.AddItem(pizzaCandidate(), 1)
	snapshot := e.LineItems()
	snapshot[0].Quantity = 99
	snapshot[0].Toppings[0].Quantity = 99

	if e.TotalItems() != 1 {
		t.Fatalf("mutating the snapshot must not affect the cart, got %d items", e.TotalItems())
	}
	if e.LineItems()[0].Toppings[0].Quantity != 1 {
		t.Fatalf("mutating snapshot toppings must not affect the cart")
	}
}
