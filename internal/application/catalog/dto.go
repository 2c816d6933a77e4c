package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetmart/backend/internal/domain/catalog"
	"github.com/streetmart/backend/internal/domain/identity"
)

// BrowseFilter narrows the listing browse
type BrowseFilter struct {
	Category   string
	SupplierID *uuid.UUID
}

// ListingResponse is a supplier listing as shown on the vendor dashboard
type ListingResponse struct {
	ListingID        uuid.UUID       `json:"listing_id"`
	SupplierID       uuid.UUID       `json:"supplier_id"`
	SupplierName     string          `json:"supplier_name"`
	ShopBusinessName string          `json:"shop_business_name"`
	Locality         string          `json:"locality"`
	ContactNumber    string          `json:"contact_number"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Unit             string          `json:"unit"`
	Category         string          `json:"category"`
	PricePerUnit     decimal.Decimal `json:"price_per_unit"`
	Stock            decimal.Decimal `json:"stock"`
	InStock          bool            `json:"in_stock"`
	ImageURL         string          `json:"image_url"`
}

// SupplierResponse is a supplier in the browse sidebar
type SupplierResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	ShopBusinessName string    `json:"shop_business_name"`
	Locality         string    `json:"locality"`
	ContactNumber    string    `json:"contact_number"`
}

// ToListingResponse converts a domain listing. imageURL is resolved by the caller.
func ToListingResponse(l catalog.Listing, imageURL string) ListingResponse {
	return ListingResponse{
		ListingID:        l.ListingID,
		SupplierID:       l.SupplierID,
		SupplierName:     l.SupplierName,
		ShopBusinessName: l.ShopBusinessName,
		Locality:         l.Locality,
		ContactNumber:    l.ContactNumber,
		ProductID:        l.ProductID,
		ProductName:      l.ProductName,
		Unit:             l.Unit,
		Category:         l.Category,
		PricePerUnit:     l.PricePerUnit,
		Stock:            l.Stock,
		InStock:          l.Stock.IsPositive(),
		ImageURL:         imageURL,
	}
}

// ToSupplierResponse converts a supplier user
func ToSupplierResponse(u *identity.User) SupplierResponse {
	return SupplierResponse{
		ID:               u.ID,
		Name:             u.DisplayNameOrUsername(),
		ShopBusinessName: u.ShopBusinessName,
		Locality:         u.Locality,
		ContactNumber:    u.ContactNumber,
	}
}
