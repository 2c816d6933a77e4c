package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/streetmart/backend/internal/domain/catalog"
	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/infrastructure/config"
)

// newMockGorm creates a gorm DB on the postgres dialect backed by sqlmock
func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

// newSQLiteDatabase creates a migrated in-memory database
func newSQLiteDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.AutoMigrate())
	return db
}

// fixture holds a small marketplace: one vendor, two suppliers, three products
type fixture struct {
	vendor    *identity.User
	supplierA *identity.User
	supplierB *identity.User
	potato    *catalog.Product
	onion     *catalog.Product
	milk      *catalog.Product
}

func newUser(t *testing.T, username string, role identity.Role, business string) *identity.User {
	t.Helper()
	// bcrypt at cost 12 is slow; the hash is never checked here
	return &identity.User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      "x",
		Role:              role,
		Profile: identity.Profile{
			Name:             username,
			ShopBusinessName: business,
			Locality:         "Sector 5",
			ContactNumber:    "9876543210",
		},
	}
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()
	users := NewGormUserRepository(db)
	products := NewGormProductRepository(db)
	listings := NewGormListingRepository(db)

	f := fixture{
		vendor:    newUser(t, "raju_chaat", identity.RoleVendor, "Raju Chaat Corner"),
		supplierA: newUser(t, "fresh_farm", identity.RoleSupplier, "Fresh Farm Produce"),
		supplierB: newUser(t, "bharat_dairy", identity.RoleSupplier, "Bharat Dairy"),
	}
	for _, u := range []*identity.User{f.vendor, f.supplierA, f.supplierB} {
		require.NoError(t, users.Create(ctx, u))
	}

	mk := func(name, unit, category string) *catalog.Product {
		p, err := catalog.NewProduct(name, unit, category)
		require.NoError(t, err)
		require.NoError(t, products.Create(ctx, p))
		return p
	}
	f.potato = mk("Potato", "kg", "Vegetables")
	f.onion = mk("Onion", "kg", "Vegetables")
	f.milk = mk("Milk", "liter", "Dairy")

	list := func(s *identity.User, p *catalog.Product, price string) {
		l, err := catalog.NewSupplierProduct(s.ID, p.ID, decimal.RequireFromString(price), decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, listings.Create(ctx, l))
	}
	list(f.supplierA, f.potato, "25")
	list(f.supplierA, f.onion, "30")
	list(f.supplierB, f.milk, "55.5")

	return f
}
