package orderdto

import (
	"github.com/shopspring/decimal"
)

const (
	SourceBot  = "bot"
	SourceCart = "cart"
)

// PlaceOrderInput is everything the conversation collected. Totals are not part of it;
// they are always computed from the items.
type PlaceOrderInput struct {
	MessengerID     string
	DeliveryAddress string
	CustomerPhone   string
	CustomerName    string
	Currency        string
	Notes           string
	Source          string
	Items           []ItemInput
}

type ItemInput struct {
	ProductID *string
	Code      string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

type UpdateStatusInput struct {
	OrderID string
	Status  string
	Note    string
}
