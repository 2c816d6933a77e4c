package catalog

import (
	"strings"

	"github.com/streetmart/backend/internal/domain/shared"
)

// Product is a global catalog entry. No supplier owns a product; suppliers list it
// with their own price and stock through a SupplierProduct.
type Product struct {
	shared.BaseEntity
	Name     string
	Unit     string
	Category string
}

// NewProduct creates a new product
func NewProduct(name, unit, category string) (*Product, error) {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	category = strings.TrimSpace(category)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 100 characters")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Unit:       unit,
		Category:   category,
	}, nil
}
