package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nurbakyt/cafepos/internal/domain"
	"github.com/nurbakyt/cafepos/internal/interfaces"
)

type memCatalogRepo struct {
	items   []*domain.MenuItem
	loadErr error
	saveErr error
	saves   int
}

func (r *memCatalogRepo) LoadItems(ctx context.Context) ([]*domain.MenuItem, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	out := make([]*domain.MenuItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *memCatalogRepo) SaveItems(ctx context.Context, items []*domain.MenuItem) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.items = make([]*domain.MenuItem, len(items))
	copy(r.items, items)
	r.saves++
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(action, message string, details map[string]interface{})             {}
func (nopLogger) Debug(action, message string, details map[string]interface{})            {}
func (nopLogger) Error(action, message string, details map[string]interface{}, err error) {}

var _ interfaces.CatalogRepository = (*memCatalogRepo)(nil)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(&memCatalogRepo{}, nopLogger{})
}

func food(t *testing.T, name string, price int64) *domain.MenuItem {
	t.Helper()
	item, err := domain.NewFood(name, decimal.NewFromInt(price), domain.FoodAttrs{
		Cuisine: "Italian", Spice: domain.SpiceMild,
	})
	if err != nil {
		t.Fatalf("NewFood: %v", err)
	}
	return item
}

func drink(t *testing.T, name string, price int64) *domain.MenuItem {
	t.Helper()
	item, err := domain.NewDrink(name, decimal.NewFromInt(price), domain.DrinkAttrs{
		Temperature: domain.TempCold, VolumeML: 330,
	})
	if err != nil {
		t.Fatalf("NewDrink: %v", err)
	}
	return item
}

func TestAdd_RejectsDuplicateNames(t *testing.T) {
	m := newTestManager(t)
	if err := m.Add(food(t, "Pizza", 400)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// Duplicate detection is case-insensitive.
	if err := m.Add(food(t, "PIZZA", 500)); !errors.Is(err, domain.ErrDuplicateItem) {
		t.Errorf("expected ErrDuplicateItem, got %v", err)
	}
	if len(m.Items()) != 1 {
		t.Errorf("expected 1 item, got %d", len(m.Items()))
	}
}

func TestFind_CaseInsensitive(t *testing.T) {
	m := newTestManager(t)
	m.Add(drink(t, "Cold Brew", 180))

	if _, ok := m.Find("cold brew"); !ok {
		t.Error("expected lowercase lookup to succeed")
	}
	if _, ok := m.Find("  COLD BREW "); !ok {
		t.Error("expected trimmed uppercase lookup to succeed")
	}
	if _, ok := m.Find("Espresso"); ok {
		t.Error("expected miss for unknown item")
	}
}

func TestAvailableAndByCategory(t *testing.T) {
	m := newTestManager(t)
	m.Add(food(t, "Pizza", 400))
	m.Add(drink(t, "Cola", 60))
	m.SetAvailability("Pizza", false)

	avail := m.Available()
	if len(avail) != 1 || avail[0].Name != "Cola" {
		t.Errorf("expected only Cola available, got %v", avail)
	}

	foods := m.ByCategory(domain.KindFood)
	if len(foods) != 1 || foods[0].Name != "Pizza" {
		t.Errorf("expected Pizza in food category, got %v", foods)
	}
	drinks := m.ByCategory(domain.KindDrink)
	if len(drinks) != 1 || drinks[0].Name != "Cola" {
		t.Errorf("expected Cola in drink category, got %v", drinks)
	}
}

func TestSetPrice(t *testing.T) {
	m := newTestManager(t)
	m.Add(drink(t, "Cola", 60))

	if err := m.SetPrice("cola", decimal.NewFromInt(75)); err != nil {
		t.Fatalf("SetPrice: %v", err)
	}
	item, _ := m.Find("Cola")
	if !item.Price.Equal(decimal.NewFromInt(75)) {
		t.Errorf("expected price 75, got %s", item.Price)
	}

	if err := m.SetPrice("Fanta", decimal.NewFromInt(10)); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	m := newTestManager(t)
	m.Add(drink(t, "Cola", 60))

	if !m.Remove("COLA") {
		t.Error("expected removal to succeed")
	}
	if m.Remove("Cola") {
		t.Error("expected second removal to report miss")
	}
	if len(m.Items()) != 0 {
		t.Errorf("expected empty catalog, got %d items", len(m.Items()))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := &memCatalogRepo{}
	m := NewManager(repo, nopLogger{})
	m.Add(food(t, "Pizza", 400))
	m.Add(drink(t, "Cola", 60))

	if err := m.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewManager(repo, nopLogger{})
	if err := reloaded.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// The same set of names, prices and categories must come back.
	for _, want := range m.Items() {
		got, ok := reloaded.Find(want.Name)
		if !ok {
			t.Fatalf("expected %q after round trip", want.Name)
		}
		if !got.Price.Equal(want.Price) {
			t.Errorf("%s: expected price %s, got %s", want.Name, want.Price, got.Price)
		}
		if got.Kind != want.Kind {
			t.Errorf("%s: expected kind %s, got %s", want.Name, want.Kind, got.Kind)
		}
	}
}

func TestLoad_SeedsEmptyStore(t *testing.T) {
	repo := &memCatalogRepo{}
	m := NewManager(repo, nopLogger{})

	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Items()) == 0 {
		t.Fatal("expected default menu to be seeded")
	}
	if repo.saves != 1 {
		t.Errorf("expected seeded menu to be saved back, saves=%d", repo.saves)
	}
	if len(m.ByCategory(domain.KindFood)) == 0 || len(m.ByCategory(domain.KindDrink)) == 0 {
		t.Error("expected both categories in the default menu")
	}
}

func TestPersistenceErrorsAreWrapped(t *testing.T) {
	repo := &memCatalogRepo{saveErr: errors.New("disk full")}
	m := NewManager(repo, nopLogger{})
	m.Add(drink(t, "Cola", 60))

	err := m.Save(context.Background())
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
	// In-memory state keeps working after a failed save.
	if _, ok := m.Find("Cola"); !ok {
		t.Error("expected catalog state intact after failed save")
	}
}
