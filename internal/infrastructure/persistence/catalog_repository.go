package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/streetmart/backend/internal/domain/catalog"
	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts a new product
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	if err := r.db.WithContext(ctx).Create(models.ProductModelFromDomain(product)).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Product '%s' already exists", product.Name))
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a product by its unique name
func (r *GormProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// ListCategories returns the distinct categories, sorted
func (r *GormProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Distinct("category").Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GormListingRepository implements catalog.ListingRepository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// Create inserts a new listing
func (r *GormListingRepository) Create(ctx context.Context, listing *catalog.SupplierProduct) error {
	if err := r.db.WithContext(ctx).Create(models.SupplierProductModelFromDomain(listing)).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewDomainError("ALREADY_EXISTS", "Supplier already lists this product")
		}
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

// FindBySupplierAndProduct finds a single listing
func (r *GormListingRepository) FindBySupplierAndProduct(ctx context.Context, supplierID, productID uuid.UUID) (*catalog.SupplierProduct, error) {
	var model models.SupplierProductModel
	if err := r.db.WithContext(ctx).
		First(&model, "supplier_id = ? AND product_id = ?", supplierID, productID).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindBySupplierAndProducts returns the supplier's listings for the given products, keyed by product ID
func (r *GormListingRepository) FindBySupplierAndProducts(ctx context.Context, supplierID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]*catalog.SupplierProduct, error) {
	result := make(map[uuid.UUID]*catalog.SupplierProduct, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var rows []models.SupplierProductModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND product_id IN ?", supplierID, productIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].ProductID] = rows[i].ToDomain()
	}
	return result, nil
}

type listingRow struct {
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

// Browse returns listings joined with product and supplier
func (r *GormListingRepository) Browse(ctx context.Context, filter catalog.ListingFilter) ([]catalog.Listing, error) {
	query := r.db.WithContext(ctx).
		Table("supplier_products AS sp").
		Select(`sp.id AS listing_id, sp.supplier_id, u.name AS supplier_name, u.shop_business_name,
			u.locality, u.contact_number, sp.product_id, p.name AS product_name, p.unit, p.category,
			sp.price_per_unit, sp.stock`).
		Joins("JOIN users u ON u.id = sp.supplier_id").
		Joins("JOIN products p ON p.id = sp.product_id")

	if filter.Category != "" {
		query = query.Where("p.category = ?", filter.Category)
	}
	if filter.SupplierID != nil {
		query = query.Where("sp.supplier_id = ?", *filter.SupplierID)
	}

	var rows []listingRow
	if err := query.Order("u.shop_business_name ASC").Order("p.name ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	listings := make([]catalog.Listing, len(rows))
	for i, row := range rows {
		listings[i] = catalog.Listing(row)
	}
	return listings, nil
}
