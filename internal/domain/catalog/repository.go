package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *Product) error

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByName finds a product by its unique name
	FindByName(ctx context.Context, name string) (*Product, error)

	// ListCategories returns the distinct categories, sorted
	ListCategories(ctx context.Context) ([]string, error)
}

// ListingFilter narrows the browse view
type ListingFilter struct {
	Category   string
	SupplierID *uuid.UUID
}

// ListingRepository defines the interface for supplier listing persistence
type ListingRepository interface {
	// Create creates a new listing. Returns shared.ErrAlreadyExists for a duplicate (supplier, product).
	Create(ctx context.Context, listing *SupplierProduct) error

	// FindBySupplierAndProduct finds a single listing
	FindBySupplierAndProduct(ctx context.Context, supplierID, productID uuid.UUID) (*SupplierProduct, error)

	// FindBySupplierAndProducts returns the supplier's listings for the given products, keyed by product ID.
	// Products the supplier does not list are absent from the map.
	FindBySupplierAndProducts(ctx context.Context, supplierID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]*SupplierProduct, error)

	// Browse returns listings joined with product and supplier, ordered by
	// business name then product name
	Browse(ctx context.Context, filter ListingFilter) ([]Listing, error)
}
