package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ReceiptLine struct {
	Name         string          `json:"name"`
	Details      string          `json:"details"`
	Quantity     int             `json:"quantity"`
	LineTotal    decimal.Decimal `json:"line_total"`
	Instructions string          `json:"instructions,omitempty"`
}

// OrderConfirmedMessage carries everything a receipt printer needs;
// totals are the values frozen at confirmation.
type OrderConfirmedMessage struct {
	OrderID      string          `json:"order_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	CustomerTier string          `json:"customer_tier,omitempty"`
	Lines        []ReceiptLine   `json:"lines"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	Instructions string          `json:"instructions,omitempty"`
	ConfirmedAt  time.Time       `json:"confirmed_at"`
}

type MessagePublisher interface {
	PublishOrderConfirmed(ctx context.Context, msg OrderConfirmedMessage) error
}

type MessageConsumer interface {
	ConsumeReceipts(ctx context.Context, handler ReceiptHandler) error
}

type ReceiptHandler func(ctx context.Context, body []byte) error
