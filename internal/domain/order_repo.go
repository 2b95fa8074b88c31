package domain

import (
	"context"
	"time"
)

type OrderRepository interface {
	// CreateOrder stores the customer, the order and its items as one unit.
	CreateOrder(ctx context.Context, order *Order, contact CustomerContact) error
	UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus, note string) (*Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	GetOrders(ctx context.Context, filter OrderFilter) ([]*Order, error)
	// CountOrders counts orders with the given status (any when empty) created at or after since (any when zero).
	CountOrders(ctx context.Context, status OrderStatus, since time.Time) (int64, error)
	DeliveredOrdersSince(ctx context.Context, since time.Time) ([]OrderAmount, error)
	DeliveredOrderItems(ctx context.Context) ([]OrderItem, error)
}
