package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nurbakyt/cafepos/internal/adapter/logger"
	"github.com/nurbakyt/cafepos/internal/domain"
	"github.com/nurbakyt/cafepos/internal/interfaces"
)

// Manager owns the set of purchasable items. Lookups are
// case-insensitive on name; iteration order is insertion order.
type Manager struct {
	items  []*domain.MenuItem
	index  map[string]*domain.MenuItem
	repo   interfaces.CatalogRepository
	logger logger.Logger
}

func NewManager(repo interfaces.CatalogRepository, lgr logger.Logger) *Manager {
	return &Manager{
		index:  make(map[string]*domain.MenuItem),
		repo:   repo,
		logger: lgr,
	}
}

// Load replaces the in-memory set with the persisted one. An empty
// store is seeded with the default menu and saved back.
func (m *Manager) Load(ctx context.Context) error {
	items, err := m.repo.LoadItems(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	m.items = nil
	m.index = make(map[string]*domain.MenuItem)
	for _, item := range items {
		if err := m.Add(item); err != nil {
			m.logger.Error("catalog_load_skip", "Skipping invalid stored item", map[string]interface{}{"item": item.Name}, err)
		}
	}

	if len(m.items) == 0 {
		m.seedDefaults()
		if err := m.Save(ctx); err != nil {
			return err
		}
		m.logger.Info("catalog_seeded", "Seeded default menu", map[string]interface{}{"items": len(m.items)})
	}
	return nil
}

// Save snapshots the current set through the repository.
func (m *Manager) Save(ctx context.Context) error {
	if err := m.repo.SaveItems(ctx, m.Items()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Add registers a new item. Adding a second item under an existing
// name (case-insensitive) is rejected.
func (m *Manager) Add(item *domain.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	key := nameKey(item.Name)
	if _, exists := m.index[key]; exists {
		return domain.ErrDuplicateItem
	}
	m.index[key] = item
	m.items = append(m.items, item)
	return nil
}

// Remove deletes an item by name, reporting whether it existed.
func (m *Manager) Remove(name string) bool {
	key := nameKey(name)
	item, ok := m.index[key]
	if !ok {
		return false
	}
	delete(m.index, key)
	for i, it := range m.items {
		if it == item {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	return true
}

func (m *Manager) Find(name string) (*domain.MenuItem, bool) {
	item, ok := m.index[nameKey(name)]
	return item, ok
}

func (m *Manager) Items() []*domain.MenuItem {
	out := make([]*domain.MenuItem, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager) Available() []*domain.MenuItem {
	var out []*domain.MenuItem
	for _, item := range m.items {
		if item.Available {
			out = append(out, item)
		}
	}
	return out
}

func (m *Manager) ByCategory(kind domain.ItemKind) []*domain.MenuItem {
	var out []*domain.MenuItem
	for _, item := range m.items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

// SetPrice edits an item price. The change is immediately visible to
// pending orders referencing the item.
func (m *Manager) SetPrice(name string, price decimal.Decimal) error {
	item, ok := m.Find(name)
	if !ok {
		return domain.ErrItemNotFound
	}
	return item.SetPrice(price)
}

func (m *Manager) SetAvailability(name string, available bool) error {
	item, ok := m.Find(name)
	if !ok {
		return domain.ErrItemNotFound
	}
	item.Available = available
	return nil
}

func (m *Manager) seedDefaults() {
	defaults := []*domain.MenuItem{
		mustFood("Kacchi Biryani", 320, domain.FoodAttrs{Cuisine: "Bangladeshi", Spice: domain.SpiceMedium}),
		mustFood("Beef Tehari", 250, domain.FoodAttrs{Cuisine: "Bangladeshi", Spice: domain.SpiceHot}),
		mustFood("Margherita Pizza", 450, domain.FoodAttrs{Cuisine: "Italian", Spice: domain.SpiceMild, Vegetarian: true}),
		mustFood("Chicken Chow Mein", 280, domain.FoodAttrs{Cuisine: "Chinese", Spice: domain.SpiceMedium}),
		mustDrink("Coffee", 120, domain.DrinkAttrs{Temperature: domain.TempHot, VolumeML: 250}),
		mustDrink("Masala Tea", 60, domain.DrinkAttrs{Temperature: domain.TempHot, VolumeML: 200}),
		mustDrink("Cold Brew", 180, domain.DrinkAttrs{Temperature: domain.TempCold, VolumeML: 330}),
		mustDrink("Mango Lassi", 150, domain.DrinkAttrs{Temperature: domain.TempCold, VolumeML: 300}),
	}
	for _, item := range defaults {
		m.index[nameKey(item.Name)] = item
		m.items = append(m.items, item)
	}
}

func mustFood(name string, price int64, attrs domain.FoodAttrs) *domain.MenuItem {
	item, err := domain.NewFood(name, decimal.NewFromInt(price), attrs)
	if err != nil {
		panic(err)
	}
	return item
}

func mustDrink(name string, price int64, attrs domain.DrinkAttrs) *domain.MenuItem {
	item, err := domain.NewDrink(name, decimal.NewFromInt(price), attrs)
	if err != nil {
		panic(err)
	}
	return item
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
