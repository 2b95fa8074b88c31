package domain

import (
	"context"
	"time"
)

type Customer struct {
	ID          string
	MessengerID string
	Phone       string
	Address     string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CustomerRepository interface {
	FindOrCreateCustomer(ctx context.Context, contact CustomerContact) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
}
