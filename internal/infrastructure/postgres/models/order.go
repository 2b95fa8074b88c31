package models

import (
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderModel struct {
	ID                    string             `gorm:"primaryKey;type:uuid"`
	OrderNumber           string             `gorm:"uniqueIndex;not null"`
	CustomerID            string             `gorm:"type:uuid;index"`
	Customer              CustomerModel      `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	MessengerID           string             `gorm:"index"`
	DeliveryAddress       string             `gorm:"type:text"`
	CustomerPhone         string
	CustomerName          string
	TotalAmount           decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	Currency              string             `gorm:"type:varchar(3);not null;default:'USD'"`
	OrderStatus           domain.OrderStatus `gorm:"index:idx_orders_status_created;not null;default:'pending'"`
	PaymentStatus         string             `gorm:"not null;default:'pending'"`
	PaymentMethod         string             `gorm:"not null;default:'cash_on_delivery'"`
	Notes                 string             `gorm:"type:text"`
	EstimatedDeliveryTime *time.Time
	DeliveredAt           *time.Time
	CreatedAt             time.Time `gorm:"index:idx_orders_status_created"`
	UpdatedAt             time.Time
	Items                 []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

func (OrderModel) TableName() string {
	return "orders"
}

type OrderItemModel struct {
	ID          string          `gorm:"primaryKey;type:uuid"`
	OrderID     string          `gorm:"type:uuid;not null;index"`
	ProductID   *string         `gorm:"type:uuid"`
	ProductCode string          `gorm:"not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

type OrderStatusHistoryModel struct {
	ID        string             `gorm:"primaryKey;type:uuid"`
	OrderID   string             `gorm:"type:uuid;not null;index"`
	Status    domain.OrderStatus `gorm:"not null"`
	Notes     string             `gorm:"type:text"`
	ChangedBy string
	CreatedAt time.Time
}

func (OrderStatusHistoryModel) TableName() string {
	return "order_status_history"
}
