package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]struct{}{
	StatusPending:        {},
	StatusConfirmed:      {},
	StatusPreparing:      {},
	StatusOutForDelivery: {},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// Valid reports whether s belongs to the closed set of order statuses.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

const (
	PaymentMethodCashOnDelivery = "cash_on_delivery"
	DefaultCurrency             = "USD"
	DefaultCartCurrency         = "THB"
	DeliveryEstimate            = 45 * time.Minute
	StatusChangedByAdmin        = "admin"
)

type Order struct {
	ID                    string
	OrderNumber           string
	CustomerID            string
	MessengerID           string
	DeliveryAddress       string
	CustomerPhone         string
	CustomerName          string
	TotalAmount           decimal.Decimal
	Currency              string
	Status                OrderStatus
	PaymentStatus         PaymentStatus
	PaymentMethod         string
	Notes                 string
	EstimatedDeliveryTime time.Time
	DeliveredAt           *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Items                 []OrderItem
}

type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   *string
	ProductCode string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
}

// LineTotal is unit price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type OrderStatusHistory struct {
	ID        string
	OrderID   string
	Status    OrderStatus
	Notes     string
	ChangedBy string
	CreatedAt time.Time
}

// CustomerContact is what the bot knows about the buyer when it places an order.
type CustomerContact struct {
	MessengerID string
	Phone       string
	Address     string
	Name        string
}

type OrderFilter struct {
	Status OrderStatus
}

type OrderStats struct {
	TotalOrders   int64
	TodayOrders   int64
	PendingOrders int64
	TotalRevenue  decimal.Decimal
}

// OrderAmount is the projection used by the daily sales report.
type OrderAmount struct {
	CreatedAt   time.Time
	TotalAmount decimal.Decimal
}

type TopProduct struct {
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}
