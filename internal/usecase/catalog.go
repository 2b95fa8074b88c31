package usecase

import (
	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/shopspring/decimal"
)

type sampleProduct struct {
	code, name, description, price, category string
}

var sampleProducts = []sampleProduct{
	{"F001", "Margherita Pizza", "Classic pizza with tomato sauce, mozzarella, and basil", "12.99", "Pizza"},
	{"F002", "Chicken Burger", "Grilled chicken breast with lettuce, tomato, and mayo", "9.99", "Burgers"},
	{"F003", "Caesar Salad", "Fresh romaine lettuce with caesar dressing and croutons", "8.99", "Salads"},
	{"F004", "Spaghetti Carbonara", "Creamy pasta with bacon, eggs, and parmesan cheese", "14.99", "Pasta"},
	{"F005", "Fish & Chips", "Beer-battered fish with crispy fries", "13.99", "Seafood"},
	{"F006", "Vegetable Stir Fry", "Mixed vegetables with teriyaki sauce and rice", "10.99", "Asian"},
	{"F007", "BBQ Ribs", "Slow-cooked ribs with BBQ sauce and coleslaw", "18.99", "BBQ"},
	{"F008", "Chocolate Cake", "Rich chocolate cake with chocolate frosting", "6.99", "Desserts"},
}

// SampleProducts is the starter catalogue. It seeds an empty database and backs the
// menu while the product table cannot be read. Each call returns fresh values.
func SampleProducts() []*domain.Product {
	products := make([]*domain.Product, len(sampleProducts))
	for i, p := range sampleProducts {
		products[i] = &domain.Product{
			Code:        p.code,
			Name:        p.name,
			Description: p.description,
			Price:       decimal.RequireFromString(p.price),
			Category:    p.category,
			IsActive:    true,
		}
	}
	return products
}
