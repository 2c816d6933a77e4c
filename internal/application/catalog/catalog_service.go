// Package catalog serves the vendor-facing browse of supplier listings.
package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/streetmart/backend/internal/domain/catalog"
	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/shared"
)

// ImageStorage turns an image key into a URL the browser can load
type ImageStorage interface {
	URL(ctx context.Context, key string) (string, error)
}

// CatalogService reads categories, suppliers and listings
type CatalogService struct {
	productRepo catalog.ProductRepository
	listingRepo catalog.ListingRepository
	userRepo    identity.UserRepository
	images      ImageStorage
	logger      *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	productRepo catalog.ProductRepository,
	listingRepo catalog.ListingRepository,
	userRepo identity.UserRepository,
	images ImageStorage,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		images:      images,
		logger:      logger,
	}
}

// ListCategories returns the distinct product categories, sorted
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load categories")
	}
	return categories, nil
}

// ListSuppliers returns every supplier, ordered by business name
func (s *CatalogService) ListSuppliers(ctx context.Context) ([]SupplierResponse, error) {
	users, err := s.userRepo.FindByRole(ctx, identity.RoleSupplier)
	if err != nil {
		s.logger.Error("Failed to list suppliers", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load suppliers")
	}
	out := make([]SupplierResponse, len(users))
	for i, u := range users {
		out[i] = ToSupplierResponse(u)
	}
	return out, nil
}

// BrowseListings returns supplier listings with their product image URL.
// An image that cannot be resolved leaves ImageURL empty rather than failing the page.
func (s *CatalogService) BrowseListings(ctx context.Context, filter BrowseFilter) ([]ListingResponse, error) {
	listings, err := s.listingRepo.Browse(ctx, catalog.ListingFilter{
		Category:   filter.Category,
		SupplierID: filter.SupplierID,
	})
	if err != nil {
		s.logger.Error("Failed to browse listings", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load products")
	}

	urls := make(map[string]string)
	out := make([]ListingResponse, len(listings))
	for i, l := range listings {
		key := catalog.ImageKey(l.ProductName, l.Category)
		url, ok := urls[key]
		if !ok {
			url, err = s.images.URL(ctx, key)
			if err != nil {
				s.logger.Warn("Failed to resolve product image",
					zap.String("key", key),
					zap.Error(err),
				)
				url = ""
			}
			urls[key] = url
		}
		out[i] = ToListingResponse(l, url)
	}
	return out, nil
}
