package request

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	IsActive    *bool           `json:"is_active"`
}

// UpdateProductRequest is a partial update; absent fields stay unchanged.
type UpdateProductRequest struct {
	Code        *string          `json:"code"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Category    *string          `json:"category"`
	IsActive    *bool            `json:"is_active"`
}
