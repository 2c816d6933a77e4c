package trade

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/domain/trade"
)

// OrderActivityHandler writes the order activity feed suppliers and vendors
// follow: one structured log entry per placed order and per status change.
type OrderActivityHandler struct {
	logger *zap.Logger
}

// NewOrderActivityHandler creates a new OrderActivityHandler
func NewOrderActivityHandler(logger *zap.Logger) *OrderActivityHandler {
	return &OrderActivityHandler{logger: logger.Named("order-activity")}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderActivityHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderPlaced, trade.EventTypeOrderStatusChanged}
}

// Handle records one activity entry for the event
func (h *OrderActivityHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		h.logger.Info("New order for supplier",
			zap.String("order_id", e.OrderID.String()),
			zap.String("supplier_id", e.SupplierID.String()),
			zap.String("vendor_id", e.VendorID.String()),
			zap.Int("items", e.ItemCount),
			zap.String("total_amount", e.TotalAmount.StringFixed(2)),
		)
	case *trade.OrderStatusChangedEvent:
		h.logger.Info("Order status changed",
			zap.String("order_id", e.OrderID.String()),
			zap.String("from", string(e.From)),
			zap.String("to", string(e.To)),
			zap.String("changed_by", e.ChangedBy.String()),
			zap.String("role", e.ByRole.String()),
		)
	default:
		return fmt.Errorf("unexpected event type %T", event)
	}
	return nil
}

var _ shared.EventHandler = (*OrderActivityHandler)(nil)
