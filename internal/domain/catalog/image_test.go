package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageKey(t *testing.T) {
	tests := []struct {
		product  string
		category string
		want     string
	}{
		{"Potato", "Vegetables", "potato.png"},
		{"Red Chilli Powder", "Spices", "red-chilli-powder.png"},
		{"Carrot", "Vegetables", "vegetables.png"},
		{"Ghee", "Oil & Butter", "oil-butter.png"},
		{"Mystery Box", "Misc", "default.png"},
		{"  Milk ", "Dairy", "milk.png"},
	}
	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageKey(tt.product, tt.category))
		})
	}
}

func TestSlugs(t *testing.T) {
	assert.Equal(t, "chefs-special", ProductSlug("Chef's Special"))
	assert.Equal(t, "packing-material", CategorySlug("Packing Material"))
}
