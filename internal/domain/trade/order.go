package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusAccepted   OrderStatus = "Accepted"
	OrderStatusDispatched OrderStatus = "Dispatched"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus converts a raw string into an OrderStatus, ignoring case
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range []OrderStatus{OrderStatusPending, OrderStatusAccepted, OrderStatusDispatched, OrderStatusDelivered, OrderStatusCancelled} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown order status '%s'", s))
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusDispatched, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status for the given role
func (s OrderStatus) CanTransitionTo(target OrderStatus, role identity.Role) bool {
	if role == identity.RoleVendor {
		return s == OrderStatusPending && target == OrderStatusCancelled
	}
	if role != identity.RoleSupplier {
		return false
	}
	switch s {
	case OrderStatusPending:
		return target == OrderStatusAccepted || target == OrderStatusCancelled
	case OrderStatusAccepted:
		return target == OrderStatusDispatched || target == OrderStatusCancelled
	case OrderStatusDispatched:
		return target == OrderStatusDelivered
	}
	return false
}

// OrderItem is a line of an order. PriceAtOrder is a snapshot and is never updated.
type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	LineNo       int
	Quantity     decimal.Decimal
	PriceAtOrder decimal.Decimal
	CreatedAt    time.Time
}

// Total returns quantity x price_at_order
func (i *OrderItem) Total() decimal.Decimal {
	return i.Quantity.Mul(i.PriceAtOrder)
}

// Order is the order aggregate root. An order always has exactly one supplier.
type Order struct {
	shared.BaseAggregateRoot
	VendorID    uuid.UUID
	SupplierID  uuid.UUID
	OrderDate   time.Time
	Status      OrderStatus
	TotalAmount decimal.Decimal
	Items       []OrderItem
}

// NewOrder creates a pending order with no items
func NewOrder(vendorID, supplierID uuid.UUID) (*Order, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}

	root := shared.NewBaseAggregateRoot()
	return &Order{
		BaseAggregateRoot: root,
		VendorID:          vendorID,
		SupplierID:        supplierID,
		OrderDate:         root.CreatedAt,
		Status:            OrderStatusPending,
		TotalAmount:       decimal.Zero,
		Items:             make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line using the next line number and updates the total.
// Only allowed while the order is pending.
func (o *Order) AddItem(productID uuid.UUID, quantity, priceAtOrder decimal.Decimal) (*OrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !shared.WithinPlaces(quantity, shared.QuantityPlaces) || quantity.GreaterThanOrEqual(shared.MaxQuantity) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity is out of range or too precise")
	}
	if !priceAtOrder.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}
	if !shared.WithinPlaces(priceAtOrder, shared.PricePlaces) || priceAtOrder.GreaterThanOrEqual(shared.MaxPricePerUnit) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price is out of range or too precise")
	}

	o.Items = append(o.Items, OrderItem{
		ID:           uuid.New(),
		OrderID:      o.ID,
		ProductID:    productID,
		LineNo:       len(o.Items),
		Quantity:     quantity,
		PriceAtOrder: priceAtOrder,
		CreatedAt:    time.Now(),
	})
	o.TotalAmount = o.TotalAmount.Add(o.Items[len(o.Items)-1].Total())
	o.UpdatedAt = time.Now()

	return &o.Items[len(o.Items)-1], nil
}

// ComputeTotal returns the sum of all item totals
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Total())
	}
	return total
}

// Place finalizes a newly built order and records the OrderPlaced event
func (o *Order) Place() error {
	if len(o.Items) == 0 {
		return ErrEmptyCart
	}
	o.TotalAmount = o.ComputeTotal()
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return nil
}

// IsParty reports whether the actor is the order's vendor or supplier
func (o *Order) IsParty(actor *identity.Actor) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case identity.RoleVendor:
		return actor.UserID == o.VendorID
	case identity.RoleSupplier:
		return actor.UserID == o.SupplierID
	}
	return false
}

// Transition moves the order to a new status on behalf of the actor.
// The version is incremented for optimistic locking.
func (o *Order) Transition(actor *identity.Actor, to OrderStatus) error {
	if !o.IsParty(actor) {
		return shared.NewDomainError("FORBIDDEN", "Only the order's vendor or supplier can change its status")
	}
	if !to.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown order status '%s'", to))
	}
	if !o.Status.CanTransitionTo(to, actor.Role) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change order from %s to %s", o.Status, to))
	}

	from := o.Status
	o.Status = to
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, actor))

	return nil
}
