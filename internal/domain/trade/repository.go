package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Place writes the order header and all of its items in one transaction.
	// The header is inserted with a zero total, then the items in line order,
	// then the total is updated. Any failure rolls everything back.
	Place(ctx context.Context, order *Order) error

	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// UpdateStatus saves a status change using optimistic locking on version.
	// Returns shared.ErrConcurrencyConflict when the stored version moved on.
	UpdateStatus(ctx context.Context, order *Order) error
}

// OrderViewReader reads the denormalized order views. Both lists are ordered by
// order date descending, then id descending.
type OrderViewReader interface {
	// ListBySupplier returns every order received by the supplier
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]OrderView, error)

	// ListByVendor returns every order placed by the vendor
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]OrderView, error)

	// FindByID returns a single order view
	FindByID(ctx context.Context, orderID uuid.UUID) (*OrderView, error)
}
