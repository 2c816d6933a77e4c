// Package seed loads the demo marketplace: vendors, suppliers, the product
// catalog and supplier listings. Running it twice is a no-op.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/streetmart/backend/internal/domain/catalog"
	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/infrastructure/persistence"
)

// Result counts the rows inserted by a run.
type Result struct {
	Users    int
	Products int
	Listings int
}

// Seeder writes the demo data set.
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a Seeder over db.
func New(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, logger: logger}
}

// Run inserts whatever part of the demo data is missing, in one transaction.
// Existing usernames, product names and (supplier, product) pairs are kept as is.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := persistence.NewGormUserRepository(tx)
		products := persistence.NewGormProductRepository(tx)
		listings := persistence.NewGormListingRepository(tx)

		userIDs, err := s.seedUsers(ctx, users, res)
		if err != nil {
			return err
		}
		productIDs, err := s.seedProducts(ctx, products, res)
		if err != nil {
			return err
		}
		return s.seedListings(ctx, listings, userIDs, productIDs, res)
	})
	if err != nil {
		s.logger.Error("Seeding failed, rolled back", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Seed complete",
		zap.Int("users_created", res.Users),
		zap.Int("products_created", res.Products),
		zap.Int("listings_created", res.Listings),
	)
	return res, nil
}

func (s *Seeder) seedUsers(ctx context.Context, repo identity.UserRepository, res *Result) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID, len(demoUsers))
	for _, u := range demoUsers {
		existing, err := repo.FindByUsername(ctx, u.Username)
		if err == nil {
			ids[u.Username] = existing.ID
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("lookup user %s: %w", u.Username, err)
		}

		user, err := identity.NewUser(u.Username, DemoPassword, u.Role, u.Profile)
		if err != nil {
			return nil, fmt.Errorf("build user %s: %w", u.Username, err)
		}
		if err := repo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user %s: %w", u.Username, err)
		}
		ids[u.Username] = user.ID
		res.Users++
	}
	return ids, nil
}

func (s *Seeder) seedProducts(ctx context.Context, repo catalog.ProductRepository, res *Result) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID, len(demoProducts))
	for _, p := range demoProducts {
		existing, err := repo.FindByName(ctx, p.Name)
		if err == nil {
			ids[p.Name] = existing.ID
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("lookup product %s: %w", p.Name, err)
		}

		product, err := catalog.NewProduct(p.Name, p.Unit, p.Category)
		if err != nil {
			return nil, fmt.Errorf("build product %s: %w", p.Name, err)
		}
		if err := repo.Create(ctx, product); err != nil {
			return nil, fmt.Errorf("create product %s: %w", p.Name, err)
		}
		ids[p.Name] = product.ID
		res.Products++
	}
	return ids, nil
}

func (s *Seeder) seedListings(ctx context.Context, repo catalog.ListingRepository, userIDs, productIDs map[string]uuid.UUID, res *Result) error {
	for _, l := range demoListings {
		supplierID, ok := userIDs[l.Supplier]
		if !ok {
			return fmt.Errorf("listing references unknown supplier %s", l.Supplier)
		}
		productID, ok := productIDs[l.Product]
		if !ok {
			return fmt.Errorf("listing references unknown product %s", l.Product)
		}

		_, err := repo.FindBySupplierAndProduct(ctx, supplierID, productID)
		if err == nil {
			s.logger.Debug("Skipping existing listing",
				zap.String("supplier", l.Supplier),
				zap.String("product", l.Product),
			)
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("lookup listing %s/%s: %w", l.Supplier, l.Product, err)
		}

		listing, err := catalog.NewSupplierProduct(supplierID, productID,
			decimal.RequireFromString(l.Price),
			decimal.RequireFromString(l.Stock),
		)
		if err != nil {
			return fmt.Errorf("build listing %s/%s: %w", l.Supplier, l.Product, err)
		}
		if err := repo.Create(ctx, listing); err != nil {
			return fmt.Errorf("create listing %s/%s: %w", l.Supplier, l.Product, err)
		}
		res.Listings++
	}
	return nil
}
