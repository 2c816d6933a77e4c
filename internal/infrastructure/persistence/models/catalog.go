package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetmart/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product entity.
type ProductModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_products_name"`
	Unit     string `gorm:"type:varchar(20);not null"`
	Category string `gorm:"type:varchar(50);not null;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Unit:       m.Unit,
		Category:   m.Category,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{Name: p.Name, Unit: p.Unit, Category: p.Category}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// SupplierProductModel is the persistence model for a supplier listing.
type SupplierProductModel struct {
	BaseModel
	SupplierID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_products_pair,priority:1"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_products_pair,priority:2;index"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Stock        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Supplier     *UserModel      `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	Product      *ProductModel   `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (SupplierProductModel) TableName() string {
	return "supplier_products"
}

// ToDomain converts the persistence model to a domain SupplierProduct.
func (m *SupplierProductModel) ToDomain() *catalog.SupplierProduct {
	return &catalog.SupplierProduct{
		BaseEntity:   m.BaseModel.ToDomain(),
		SupplierID:   m.SupplierID,
		ProductID:    m.ProductID,
		PricePerUnit: m.PricePerUnit,
		Stock:        m.Stock,
	}
}

// SupplierProductModelFromDomain creates a persistence model from a domain SupplierProduct.
func SupplierProductModelFromDomain(l *catalog.SupplierProduct) *SupplierProductModel {
	m := &SupplierProductModel{
		SupplierID:   l.SupplierID,
		ProductID:    l.ProductID,
		PricePerUnit: l.PricePerUnit,
		Stock:        l.Stock,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}
