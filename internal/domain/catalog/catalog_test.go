package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct(" Potato ", "kg", "Vegetables")
	require.NoError(t, err)
	assert.Equal(t, "Potato", p.Name)
	assert.Equal(t, "kg", p.Unit)
	assert.Equal(t, "Vegetables", p.Category)
	assert.NotEqual(t, uuid.Nil, p.ID)

	tests := []struct {
		name, pName, unit, category string
	}{
		{"empty name", "", "kg", "Vegetables"},
		{"empty unit", "Potato", " ", "Vegetables"},
		{"empty category", "Potato", "kg", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.pName, tt.unit, tt.category)
			assert.Error(t, err)
		})
	}
}

func TestNewSupplierProduct(t *testing.T) {
	supplierID, productID := uuid.New(), uuid.New()

	l, err := NewSupplierProduct(supplierID, productID, decimal.NewFromInt(25), decimal.RequireFromString("100.5"))
	require.NoError(t, err)
	assert.True(t, l.PricePerUnit.Equal(decimal.NewFromInt(25)))
	assert.True(t, l.InStock())

	_, err = NewSupplierProduct(uuid.Nil, productID, decimal.NewFromInt(25), decimal.Zero)
	assert.Error(t, err)
	_, err = NewSupplierProduct(supplierID, uuid.Nil, decimal.NewFromInt(25), decimal.Zero)
	assert.Error(t, err)
	_, err = NewSupplierProduct(supplierID, productID, decimal.Zero, decimal.Zero)
	assert.Error(t, err)
	_, err = NewSupplierProduct(supplierID, productID, decimal.NewFromInt(1), decimal.NewFromInt(-1))
	assert.Error(t, err)
	_, err = NewSupplierProduct(supplierID, productID, decimal.RequireFromString("24.999"), decimal.Zero)
	assert.Error(t, err)

	paise, err := NewSupplierProduct(supplierID, productID, decimal.RequireFromString("24.50"), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "24.5", paise.PricePerUnit.String())

	empty, err := NewSupplierProduct(supplierID, productID, decimal.NewFromInt(1), decimal.Zero)
	require.NoError(t, err)
	assert.False(t, empty.InStock())
}
