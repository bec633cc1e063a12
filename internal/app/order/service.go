package order

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurbakyt/cafepos/internal/adapter/logger"
	"github.com/nurbakyt/cafepos/internal/domain"
	"github.com/nurbakyt/cafepos/internal/interfaces"
)

// Service orchestrates order lifecycle and aggregate reporting across
// every order created during the process lifetime. Orders are never
// physically deleted; cancelled ones stay in the list.
type Service struct {
	orders    []*domain.Order
	repo      interfaces.OrderRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
}

func NewService(repo interfaces.OrderRepository, publisher interfaces.MessagePublisher, lgr logger.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    lgr,
	}
}

// CreateOrder registers a new pending order for the customer.
func (s *Service) CreateOrder(customer *domain.Customer) (*domain.Order, error) {
	if customer == nil {
		return nil, domain.ErrMissingCustomer
	}
	order := domain.NewOrder(customer)
	s.orders = append(s.orders, order)

	s.logger.Debug("order_created", "Order created", map[string]interface{}{
		"order_id": order.ID.String(),
		"customer": customer.Name,
	})
	return order, nil
}

// AddItem is a thin validating wrapper over Order.AddLine.
func (s *Service) AddItem(order *domain.Order, item *domain.MenuItem, quantity int) error {
	if order == nil {
		return fmt.Errorf("order cannot be nil")
	}
	if item == nil {
		return domain.ErrItemNotFound
	}
	return order.AddLine(item, quantity)
}

// RemoveLastItem undoes the most recent unit addition.
func (s *Service) RemoveLastItem(order *domain.Order) bool {
	if order == nil {
		return false
	}
	return order.UndoLastUnit()
}

func (s *Service) ApplyDiscount(order *domain.Order, percent float64) error {
	if order == nil {
		return fmt.Errorf("order cannot be nil")
	}
	return order.SetDiscountPercent(percent)
}

// ConfirmOrder confirms the order, persists it and publishes the
// receipt event. Persistence or publish failures are reported as
// ErrPersistence but never roll back the in-memory confirmation; the
// core keeps operating in memory.
func (s *Service) ConfirmOrder(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("order cannot be nil")
	}
	if err := order.Confirm(); err != nil {
		return err
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, order); err != nil {
			s.logger.Error("order_save_failed", "Failed to persist confirmed order", map[string]interface{}{
				"order_id": order.ID.String(),
			}, err)
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
	}

	if s.publisher != nil {
		msg := buildConfirmedMessage(order)
		if err := s.publisher.PublishOrderConfirmed(ctx, msg); err != nil {
			s.logger.Error("receipt_publish_failed", "Failed to publish receipt event", map[string]interface{}{
				"order_id": order.ID.String(),
			}, err)
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
	}

	s.logger.Info("order_confirmed", "Order confirmed", map[string]interface{}{
		"order_id": order.ID.String(),
		"total":    order.Total().StringFixed(2),
	})
	return nil
}

func (s *Service) CancelOrder(order *domain.Order) {
	if order == nil {
		return
	}
	order.Cancel()
	s.logger.Debug("order_cancelled", "Order cancelled", map[string]interface{}{
		"order_id": order.ID.String(),
	})
}

// AllOrders returns every order in creation order.
func (s *Service) AllOrders() []*domain.Order {
	out := make([]*domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// OrderHistory returns the customer's orders of any status, in
// creation order.
func (s *Service) OrderHistory(customer *domain.Customer) ([]*domain.Order, error) {
	if customer == nil {
		return nil, domain.ErrMissingCustomer
	}
	var out []*domain.Order
	for _, o := range s.orders {
		if o.Customer != nil && o.Customer.ID == customer.ID {
			out = append(out, o)
		}
	}
	return out, nil
}

// TotalRevenue sums totals over confirmed and completed orders.
func (s *Service) TotalRevenue(orders []*domain.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		if o.CountsForRevenue() {
			sum = sum.Add(o.Total())
		}
	}
	return sum
}

// MostPopularItems counts summed quantities per item name across
// confirmed and completed orders, descending. Ties keep the order the
// item name was first encountered.
func (s *Service) MostPopularItems(orders []*domain.Order, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidLimit
	}

	counts := make(map[string]int)
	var names []string
	for _, o := range orders {
		if !o.CountsForRevenue() {
			continue
		}
		for _, line := range o.Lines() {
			name := line.Item.Name
			if _, seen := counts[name]; !seen {
				names = append(names, name)
			}
			counts[name] += line.Quantity
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})

	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

func (s *Service) OrdersByStatus(status domain.Status) []*domain.Order {
	var out []*domain.Order
	for _, o := range s.orders {
		if o.Status() == status {
			out = append(out, o)
		}
	}
	return out
}

// OrdersBetween returns orders created in [start, end], inclusive on
// both calendar days.
func (s *Service) OrdersBetween(start, end time.Time) ([]*domain.Order, error) {
	if start.After(end) {
		return nil, fmt.Errorf("start date cannot be after end date")
	}
	var out []*domain.Order
	for _, o := range s.orders {
		if !o.CreatedAt.Before(start) && !o.CreatedAt.After(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

// CustomerStatistics summarises a customer's history with the service.
type CustomerStatistics struct {
	TotalOrders       int
	TotalSpent        decimal.Decimal
	AverageOrderValue decimal.Decimal
	Tier              domain.Tier
	DiscountRate      decimal.Decimal
}

func (s *Service) CustomerStatistics(customer *domain.Customer) (CustomerStatistics, error) {
	if customer == nil {
		return CustomerStatistics{}, domain.ErrMissingCustomer
	}

	history, _ := s.OrderHistory(customer)
	stats := CustomerStatistics{
		TotalOrders:  len(history),
		TotalSpent:   customer.TotalSpent,
		Tier:         customer.Tier(),
		DiscountRate: customer.DiscountRate(),
	}

	if len(history) > 0 {
		sum := decimal.Zero
		for _, o := range history {
			sum = sum.Add(o.Total())
		}
		stats.AverageOrderValue = sum.Div(decimal.NewFromInt(int64(len(history))))
	}
	return stats, nil
}

func buildConfirmedMessage(order *domain.Order) interfaces.OrderConfirmedMessage {
	msg := interfaces.OrderConfirmedMessage{
		OrderID:      order.ID.String(),
		Subtotal:     order.BilledSubtotal(),
		Discount:     order.DiscountAmount(),
		Total:        order.Total(),
		Instructions: order.Instructions,
	}
	if order.Customer != nil {
		msg.CustomerName = order.Customer.Name
		msg.CustomerTier = string(order.Customer.Tier())
	}
	if at := order.ConfirmedAt(); at != nil {
		msg.ConfirmedAt = *at
	}
	for _, line := range order.Lines() {
		msg.Lines = append(msg.Lines, interfaces.ReceiptLine{
			Name:         line.Item.Name,
			Details:      line.Item.Details(),
			Quantity:     line.Quantity,
			LineTotal:    line.LineTotal(),
			Instructions: line.Instructions,
		})
	}
	return msg
}
