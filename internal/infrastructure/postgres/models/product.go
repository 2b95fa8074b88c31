package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductModel struct {
	ID          string          `gorm:"primaryKey;type:uuid"`
	Code        string          `gorm:"uniqueIndex;not null"`
	Name        string          `gorm:"not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	ImageURL    string
	Category    string
	IsActive    bool `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductModel) TableName() string {
	return "products"
}
