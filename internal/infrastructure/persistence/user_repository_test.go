package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/shared"
)

func TestGormUserRepository(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormUserRepository(db.DB)
	ctx := context.Background()

	user := newUser(t, "raju_chaat", identity.RoleVendor, "Raju Chaat Corner")
	require.NoError(t, repo.Create(ctx, user))

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "raju_chaat", found.Username)
		assert.Equal(t, identity.RoleVendor, found.Role)
		assert.Equal(t, "Raju Chaat Corner", found.ShopBusinessName)
		assert.Equal(t, 1, found.Version)
	})

	t.Run("find by username ignores case", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "  RAJU_Chaat ")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("exists by username", func(t *testing.T) {
		exists, err := repo.ExistsByUsername(ctx, "Raju_Chaat")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := newUser(t, "raju_chaat", identity.RoleSupplier, "Other")
		err := repo.Create(ctx, dup)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.Contains(t, err.Error(), "User 'raju_chaat' is already registered.")
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_FindByRole(t *testing.T) {
	db := newSQLiteDatabase(t)
	seedFixture(t, db.DB)
	repo := NewGormUserRepository(db.DB)

	suppliers, err := repo.FindByRole(context.Background(), identity.RoleSupplier)
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	assert.Equal(t, "Bharat Dairy", suppliers[0].ShopBusinessName)
	assert.Equal(t, "Fresh Farm Produce", suppliers[1].ShopBusinessName)

	vendors, err := repo.FindByRole(context.Background(), identity.RoleVendor)
	require.NoError(t, err)
	assert.Len(t, vendors, 1)
}
