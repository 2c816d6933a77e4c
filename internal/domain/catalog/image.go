package catalog

import "strings"

// DefaultImageKey is used when neither the product nor its category has an image
const DefaultImageKey = "default.png"

var productImages = setOf(
	"potato", "onion", "tomato", "milk", "paneer", "cooking-oil", "butter",
	"red-chilli-powder", "turmeric-powder", "paper-plates", "disposable-cups",
	"tomato-ketchup", "banana", "green-chilli", "coriander", "cauliflower",
	"cabbage", "spinach", "brinjal", "apple", "orange", "chilli-sauce",
	"soy-sauce", "cumin-seeds", "garam-masala", "food-containers", "napkins",
	"serving-spoons", "tray",
)

var categoryImages = setOf(
	"vegetables", "fruits", "sauces", "spices", "oil-butter", "packing-material",
	"serving-material", "dairy", "grain-flour", "herb",
)

func setOf(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}

// ProductSlug turns "Red Chilli Powder" into "red-chilli-powder"
func ProductSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "'", "")
	return strings.ReplaceAll(s, " ", "-")
}

// CategorySlug turns "Oil & Butter" into "oil-butter"
func CategorySlug(category string) string {
	s := strings.ToLower(strings.TrimSpace(category))
	s = strings.ReplaceAll(s, " & ", "-")
	return strings.ReplaceAll(s, " ", "-")
}

// ImageKey picks the product's own image, then its category's, then the default
func ImageKey(productName, category string) string {
	if slug := ProductSlug(productName); hasKey(productImages, slug) {
		return slug + ".png"
	}
	if slug := CategorySlug(category); hasKey(categoryImages, slug) {
		return slug + ".png"
	}
	return DefaultImageKey
}

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
