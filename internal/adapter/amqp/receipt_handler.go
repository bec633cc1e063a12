package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nurbakyt/cafepos/internal/adapter/logger"
	"github.com/nurbakyt/cafepos/internal/adapter/receipt"
	"github.com/nurbakyt/cafepos/internal/interfaces"
)

// ReceiptHandler turns confirmed-order events into printed receipts.
type ReceiptHandler struct {
	renderer *receipt.Renderer
	logger   logger.Logger
}

func NewReceiptHandler(renderer *receipt.Renderer, lgr logger.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		renderer: renderer,
		logger:   lgr,
	}
}

func (h *ReceiptHandler) HandleReceipt(ctx context.Context, body []byte) error {
	var msg interfaces.OrderConfirmedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse receipt event", nil, err)
		return err
	}

	h.logger.Debug("receipt_received", "Received confirmed order", map[string]interface{}{
		"order_id": msg.OrderID,
		"total":    msg.Total.StringFixed(2),
	})

	fmt.Println(h.renderer.RenderConfirmed(msg))
	return nil
}
