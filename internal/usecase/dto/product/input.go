package productdto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Code        string          `validate:"required,max=32"`
	Name        string          `validate:"required,max=200"`
	Description string          `validate:"max=2000"`
	Price       decimal.Decimal `validate:"-"`
	ImageURL    string          `validate:"omitempty,url"`
	Category    string          `validate:"max=100"`
	IsActive    *bool
}

type UpdateProductInput struct {
	Code        *string          `validate:"omitempty,min=1,max=32"`
	Name        *string          `validate:"omitempty,min=1,max=200"`
	Description *string          `validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `validate:"-"`
	ImageURL    *string          `validate:"omitempty,url"`
	Category    *string          `validate:"omitempty,max=100"`
	IsActive    *bool
}
