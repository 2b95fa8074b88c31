package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	Code        string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch carries the fields of a partial product update; nil means unchanged.
type ProductPatch struct {
	Code        *string
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Category    *string
	IsActive    *bool
}

// NormalizeCode upper-cases a human-entered product code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type ProductRepository interface {
	ListProducts(ctx context.Context, includeInactive bool) ([]*Product, error)
	GetProductByCode(ctx context.Context, code string) (*Product, error)
	GetProductByID(ctx context.Context, productID string) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) error
	UpdateProduct(ctx context.Context, productID string, patch ProductPatch) (*Product, error)
	SoftDeleteProduct(ctx context.Context, productID string) error
	UpsertProducts(ctx context.Context, products []*Product) error
}
