package seed

import "github.com/streetmart/backend/internal/domain/identity"

// DemoPassword is the password of every seeded account.
const DemoPassword = "password123"

type userSeed struct {
	Username string
	Role     identity.Role
	Profile  identity.Profile
}

type productSeed struct {
	Name     string
	Unit     string
	Category string
}

type listingSeed struct {
	Supplier string
	Product  string
	Price    string
	Stock    string
}

var demoUsers = []userSeed{
	{"vendor1", identity.RoleVendor, identity.Profile{Name: "Rohan Singh", ShopBusinessName: "Rohan's Vada Pav", Locality: "Dadar Market", ContactNumber: "9876543210"}},
	{"supplier1", identity.RoleSupplier, identity.Profile{Name: "Amit Sharma", ShopBusinessName: "Fresh Veggies Co.", Locality: "Dadar Wholesale", ContactNumber: "9988776655"}},
	{"vendor2", identity.RoleVendor, identity.Profile{Name: "Priya Patel", ShopBusinessName: "Priya Snacks", Locality: "Churchgate", ContactNumber: "9123456789"}},
	{"supplier2", identity.RoleSupplier, identity.Profile{Name: "Sunil Kumar", ShopBusinessName: "Spice World", Locality: "Crawford Market", ContactNumber: "9012345678"}},
	{"supplier3", identity.RoleSupplier, identity.Profile{Name: "Meena Devi", ShopBusinessName: "Green Grocers", Locality: "Sion Koliwada", ContactNumber: "9554433221"}},
	{"supplier4", identity.RoleSupplier, identity.Profile{Name: "Rajesh Gupta", ShopBusinessName: "Dairy Delights", Locality: "Andheri East", ContactNumber: "9667788990"}},
	{"supplier5", identity.RoleSupplier, identity.Profile{Name: "Kartik Singh", ShopBusinessName: "Pak N Serve", Locality: "Lower Parel", ContactNumber: "9778899001"}},
	{"supplier6", identity.RoleSupplier, identity.Profile{Name: "Lata Rao", ShopBusinessName: "Sauce Master", Locality: "Bandra West", ContactNumber: "9112233445"}},
}

var demoProducts = []productSeed{
	{"Potato", "kg", "Vegetables"},
	{"Onion", "kg", "Vegetables"},
	{"Tomato", "kg", "Vegetables"},
	{"Green Chilli", "kg", "Vegetables"},
	{"Coriander", "bunch", "Vegetables"},
	{"Cauliflower", "kg", "Vegetables"},
	{"Cabbage", "kg", "Vegetables"},
	{"Spinach", "kg", "Vegetables"},
	{"Brinjal", "kg", "Vegetables"},

	{"Banana", "dozen", "Fruits"},
	{"Apple", "kg", "Fruits"},
	{"Orange", "kg", "Fruits"},

	{"Tomato Ketchup", "bottle", "Sauces"},
	{"Chilli Sauce", "bottle", "Sauces"},
	{"Soy Sauce", "bottle", "Sauces"},

	{"Red Chilli Powder", "kg", "Spices"},
	{"Turmeric Powder", "kg", "Spices"},
	{"Cumin Seeds", "kg", "Spices"},
	{"Garam Masala", "kg", "Spices"},

	{"Cooking Oil", "liter", "Oil & Butter"},
	{"Ghee", "kg", "Oil & Butter"},
	{"Butter", "kg", "Oil & Butter"},

	{"Milk", "liter", "Dairy"},
	{"Paneer", "kg", "Dairy"},

	{"Paper Plates", "pack", "Packing Material"},
	{"Disposable Cups", "pack", "Packing Material"},
	{"Food Containers", "pack", "Packing Material"},
	{"Napkins", "pack", "Packing Material"},

	{"Serving Spoons", "piece", "Serving Material"},
	{"Tray", "piece", "Serving Material"},
}

var demoListings = []listingSeed{
	{"supplier1", "Potato", "25", "100"},
	{"supplier1", "Onion", "30", "150"},
	{"supplier1", "Tomato", "40", "80"},
	{"supplier1", "Green Chilli", "60", "50"},
	{"supplier1", "Coriander", "10", "200"},
	{"supplier1", "Spinach", "25", "70"},

	{"supplier2", "Cooking Oil", "120", "50"},
	{"supplier2", "Red Chilli Powder", "250", "30"},
	{"supplier2", "Turmeric Powder", "180", "40"},
	{"supplier2", "Cumin Seeds", "90", "60"},
	{"supplier2", "Garam Masala", "300", "25"},

	{"supplier3", "Cauliflower", "35", "90"},
	{"supplier3", "Cabbage", "20", "110"},
	{"supplier3", "Banana", "45", "10"},
	{"supplier3", "Apple", "150", "30"},
	{"supplier3", "Orange", "80", "50"},
	{"supplier3", "Brinjal", "30", "60"},

	{"supplier4", "Milk", "65", "200"},
	{"supplier4", "Paneer", "320", "40"},
	{"supplier4", "Ghee", "550", "20"},
	{"supplier4", "Butter", "480", "50"},

	{"supplier5", "Paper Plates", "80", "50"},
	{"supplier5", "Disposable Cups", "60", "70"},
	{"supplier5", "Food Containers", "150", "30"},
	{"supplier5", "Napkins", "40", "100"},
	{"supplier5", "Serving Spoons", "120", "20"},

	{"supplier6", "Tomato Ketchup", "90", "60"},
	{"supplier6", "Chilli Sauce", "85", "55"},
	{"supplier6", "Soy Sauce", "75", "45"},
}
