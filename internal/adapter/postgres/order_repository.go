package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurbakyt/cafepos/internal/domain"
	"github.com/nurbakyt/cafepos/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

// Save inserts the order and its lines transactionally. Confirmed
// orders persist the subtotal, discount and total frozen at
// confirmation, so the stored row always reconciles.
func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var customerName *string
	if order.Customer != nil {
		customerName = &order.Customer.Name
	}

	query := `
		INSERT INTO orders (id, customer_name, status, discount_percent,
		                    subtotal, discount, total, instructions,
		                    created_at, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := tx.Exec(ctx, query,
		order.ID.String(), customerName, string(order.Status()), order.DiscountPercent(),
		order.BilledSubtotal().String(), order.DiscountAmount().String(), order.Total().String(),
		order.Instructions, order.CreatedAt, order.ConfirmedAt(),
	); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_lines (order_id, item_name, quantity, unit_price,
		                         line_total, instructions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, line := range order.Lines() {
		if _, err := tx.Exec(ctx, lineQuery,
			order.ID.String(), line.Item.Name, line.Quantity, line.Item.Price.String(),
			line.LineTotal().String(), line.Instructions, time.Now(),
		); err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// TotalRevenue sums persisted totals over confirmed and completed
// orders.
func (r *orderRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)::text
		FROM orders
		WHERE status IN ('confirmed', 'completed')
	`

	var raw string
	if err := r.db.QueryRow(ctx, query).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute revenue: %w", err)
	}

	revenue, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid stored revenue: %w", err)
	}
	return revenue, nil
}

// PopularItems returns item names with summed quantities across
// confirmed and completed orders, descending; ties keep the order the
// item first appeared.
func (r *orderRepository) PopularItems(ctx context.Context, limit int) ([]interfaces.ItemCount, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidLimit
	}

	query := `
		SELECT l.item_name, SUM(l.quantity)::int AS units
		FROM order_lines l
		JOIN orders o ON o.id = l.order_id
		WHERE o.status IN ('confirmed', 'completed')
		GROUP BY l.item_name
		ORDER BY units DESC, MIN(l.id) ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular items: %w", err)
	}
	defer rows.Close()

	var counts []interfaces.ItemCount
	for rows.Next() {
		var c interfaces.ItemCount
		if err := rows.Scan(&c.Name, &c.Units); err != nil {
			return nil, fmt.Errorf("failed to scan popularity row: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, nil
}
