package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurbakyt/cafepos/internal/domain"
	"github.com/nurbakyt/cafepos/internal/interfaces"
)

type customerRepository struct {
	db DB
}

func NewCustomerRepository(db DB) interfaces.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, age, gender, phone, email,
		                       registered_at, total_orders, total_spent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		customer.ID.String(), customer.Name, customer.Age, customer.Gender,
		customer.Phone, customer.Email, customer.RegisteredAt,
		customer.TotalOrders, customer.TotalSpent.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) FindByName(ctx context.Context, name string) (*domain.Customer, error) {
	query := `
		SELECT id::text, name, age, gender, phone, email,
		       registered_at, total_orders, total_spent::text
		FROM customers
		WHERE lower(name) = lower($1)
	`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	return customer, nil
}

func (r *customerRepository) ListAll(ctx context.Context) ([]*domain.Customer, error) {
	query := `
		SELECT id::text, name, age, gender, phone, email,
		       registered_at, total_orders, total_spent::text
		FROM customers
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	return customers, nil
}

// UpdateStats writes back the cumulative order count and spend after a
// confirmation.
func (r *customerRepository) UpdateStats(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers
		SET total_orders = $1, total_spent = $2
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query,
		customer.TotalOrders, customer.TotalSpent.String(), customer.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update customer stats: %w", err)
	}
	return nil
}

func scanCustomer(row Row) (*domain.Customer, error) {
	var (
		customer domain.Customer
		id       string
		spent    string
	)
	if err := row.Scan(
		&id, &customer.Name, &customer.Age, &customer.Gender,
		&customer.Phone, &customer.Email, &customer.RegisteredAt,
		&customer.TotalOrders, &spent,
	); err != nil {
		return nil, err
	}

	var err error
	customer.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid stored customer id: %w", err)
	}
	customer.TotalSpent, err = decimal.NewFromString(spent)
	if err != nil {
		return nil, fmt.Errorf("invalid stored spend: %w", err)
	}
	return &customer, nil
}
