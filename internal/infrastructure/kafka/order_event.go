package publisher

import (
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
)

// OrderEvent is published on the order topic after every create and status change.
type OrderEvent struct {
	EventType   domain.ChangeType  `json:"event_type"`
	OrderID     string             `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	MessengerID string             `json:"messenger_id"`
	Status      domain.OrderStatus `json:"status"`
	TotalAmount string             `json:"total_amount"`
	Currency    string             `json:"currency"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

func NewOrderEvent(eventType domain.ChangeType, order *domain.Order) OrderEvent {
	return OrderEvent{
		EventType:   eventType,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		MessengerID: order.MessengerID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount.StringFixed(2),
		Currency:    order.Currency,
		OccurredAt:  time.Now().UTC(),
	}
}

// OrderFailureEvent carries an order the store refused, so an operator can re-enter it by hand.
type OrderFailureEvent struct {
	ParticipantID   string              `json:"participant_id"`
	Cause           domain.FailureCause `json:"cause"`
	Error           string              `json:"error"`
	DeliveryAddress string              `json:"delivery_address"`
	CustomerPhone   string              `json:"customer_phone"`
	Items           []FailedItem        `json:"items"`
	TotalAmount     string              `json:"total_amount"`
	Currency        string              `json:"currency"`
	OccurredAt      time.Time           `json:"occurred_at"`
}

type FailedItem struct {
	Code      string `json:"code,omitempty"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}
