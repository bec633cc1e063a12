package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nurbakyt/cafepos/internal/domain"
)

// CatalogRepository persists the full menu as a snapshot; every save
// rewrites the stored set.
type CatalogRepository interface {
	LoadItems(ctx context.Context) ([]*domain.MenuItem, error)
	SaveItems(ctx context.Context, items []*domain.MenuItem) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByName(ctx context.Context, name string) (*domain.Customer, error)
	ListAll(ctx context.Context) ([]*domain.Customer, error)
	UpdateStats(ctx context.Context, customer *domain.Customer) error
}

// ItemCount is one row of the popularity aggregate.
type ItemCount struct {
	Name  string
	Units int
}

// OrderRepository is write-mostly: orders are saved at confirmation
// and only read back as aggregates for reporting.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	PopularItems(ctx context.Context, limit int) ([]ItemCount, error)
}
