package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetmart/backend/internal/domain/shared"
)

// SupplierProduct is a supplier's listing of a product with its price and stock.
// There is at most one listing per (supplier, product).
type SupplierProduct struct {
	shared.BaseEntity
	SupplierID   uuid.UUID
	ProductID    uuid.UUID
	PricePerUnit decimal.Decimal
	Stock        decimal.Decimal
}

// NewSupplierProduct creates a new listing
func NewSupplierProduct(supplierID, productID uuid.UUID, pricePerUnit, stock decimal.Decimal) (*SupplierProduct, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !pricePerUnit.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per unit must be positive")
	}
	if !shared.WithinPlaces(pricePerUnit, shared.PricePlaces) || pricePerUnit.GreaterThanOrEqual(shared.MaxPricePerUnit) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per unit is out of range or has too many decimal places")
	}
	if stock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &SupplierProduct{
		BaseEntity:   shared.NewBaseEntity(),
		SupplierID:   supplierID,
		ProductID:    productID,
		PricePerUnit: pricePerUnit,
		Stock:        stock,
	}, nil
}

// InStock reports whether the listing has any stock left
func (l *SupplierProduct) InStock() bool {
	return l.Stock.IsPositive()
}

// Listing is the denormalized browse view of a SupplierProduct joined with
// its product and supplier.
type Listing struct {
	ListingID        uuid.UUID
	SupplierID       uuid.UUID
	SupplierName     string
	ShopBusinessName string
	Locality         string
	ContactNumber    string
	ProductID        uuid.UUID
	ProductName      string
	Unit             string
	Category         string
	PricePerUnit     decimal.Decimal
	Stock            decimal.Decimal
}
