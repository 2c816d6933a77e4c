package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/domain/trade"
)

func TestOrderActivityHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewOrderActivityHandler(zap.New(core))

	assert.ElementsMatch(t,
		[]string{trade.EventTypeOrderPlaced, trade.EventTypeOrderStatusChanged},
		h.EventTypes())

	vendorID, supplierID := uuid.New(), uuid.New()
	order, err := trade.NewOrder(vendorID, supplierID)
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), decimal.NewFromInt(2), decimal.RequireFromString("12.5"))
	require.NoError(t, err)
	require.NoError(t, order.Place())

	require.NoError(t, h.Handle(context.Background(), trade.NewOrderPlacedEvent(order)))

	entries := logs.FilterMessage("New order for supplier").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, supplierID.String(), fields["supplier_id"])
	assert.Equal(t, int64(1), fields["items"])
	assert.Equal(t, "25.00", fields["total_amount"])

	supplier := identity.NewActor(supplierID, "fresh_farms", identity.RoleSupplier)
	changed := trade.NewOrderStatusChangedEvent(order, trade.OrderStatusPending, supplier)
	require.NoError(t, h.Handle(context.Background(), changed))
	assert.Equal(t, 1, logs.FilterMessage("Order status changed").Len())
}

type otherEvent struct{ shared.BaseDomainEvent }

func TestOrderActivityHandler_UnknownEvent(t *testing.T) {
	h := NewOrderActivityHandler(zap.NewNop())
	err := h.Handle(context.Background(), &otherEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("Other", "Other", uuid.New()),
	})
	assert.Error(t, err)
}
