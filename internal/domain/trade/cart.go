package trade

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetmart/backend/internal/domain/shared"
)

// Order placement errors
var (
	ErrEmptyCart         = shared.NewDomainError("EMPTY_CART", "No order data provided")
	ErrMixedSupplierCart = shared.NewDomainError("MIXED_SUPPLIER_CART", "All items in an order must come from the same supplier")
	ErrNotVendor         = shared.NewDomainError("UNAUTHORIZED", "Unauthorized or not a vendor")
	ErrStorageFailure    = shared.NewDomainError("STORAGE_FAILURE", "Error placing order")
	ErrListingNotFound   = shared.NewDomainError("LISTING_NOT_FOUND", "Product is not listed by this supplier")
	ErrPriceChanged      = shared.NewDomainError("PRICE_CHANGED", "Price has changed since the product was added to the cart")
)

// CartLine is one line of a submitted cart
type CartLine struct {
	ProductID    uuid.UUID
	SupplierID   uuid.UUID
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
}

// Validate checks the line in isolation. index is the line's position in the cart.
func (l CartLine) Validate(index int) error {
	if l.ProductID == uuid.Nil {
		return invalidLine(index, "product_id is required")
	}
	if l.SupplierID == uuid.Nil {
		return invalidLine(index, "supplier_id is required")
	}
	if !l.Quantity.IsPositive() {
		return invalidLine(index, "quantity must be greater than zero")
	}
	if !shared.WithinPlaces(l.Quantity, shared.QuantityPlaces) {
		return invalidLine(index, fmt.Sprintf("quantity must have at most %d decimal places", shared.QuantityPlaces))
	}
	if l.Quantity.GreaterThanOrEqual(shared.MaxQuantity) {
		return invalidLine(index, "quantity must be less than "+shared.MaxQuantity.String())
	}
	if !l.PricePerUnit.IsPositive() {
		return invalidLine(index, "price_per_unit must be greater than zero")
	}
	if !shared.WithinPlaces(l.PricePerUnit, shared.PricePlaces) {
		return invalidLine(index, fmt.Sprintf("price_per_unit must have at most %d decimal places", shared.PricePlaces))
	}
	if l.PricePerUnit.GreaterThanOrEqual(shared.MaxPricePerUnit) {
		return invalidLine(index, "price_per_unit must be less than "+shared.MaxPricePerUnit.String())
	}
	return nil
}

func invalidLine(index int, msg string) error {
	return shared.NewDomainError("INVALID_PAYLOAD", fmt.Sprintf("Item %d: %s", index+1, msg))
}

// Cart is an ordered sequence of lines submitted by a vendor
type Cart []CartLine

// Validate checks emptiness, each line, and that all lines share one supplier
func (c Cart) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCart
	}
	for i, line := range c {
		if err := line.Validate(i); err != nil {
			return err
		}
	}
	if _, err := c.Supplier(); err != nil {
		return err
	}
	return nil
}

// Supplier returns the supplier of the first line, failing if any line names another
func (c Cart) Supplier() (uuid.UUID, error) {
	if len(c) == 0 {
		return uuid.Nil, ErrEmptyCart
	}
	supplierID := c[0].SupplierID
	for _, line := range c[1:] {
		if line.SupplierID != supplierID {
			return uuid.Nil, ErrMixedSupplierCart
		}
	}
	return supplierID, nil
}

// ProductIDs returns the distinct product IDs in cart order
func (c Cart) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(c))
	ids := make([]uuid.UUID, 0, len(c))
	for _, line := range c {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}
