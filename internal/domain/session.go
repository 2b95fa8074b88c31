package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ConversationStep string

const (
	StepStart           ConversationStep = "start"
	StepAwaitingAddress ConversationStep = "awaiting_address"
	StepAwaitingPhone   ConversationStep = "awaiting_phone"
	StepCompleted       ConversationStep = "completed"
)

// Session is the in-progress order of one participant. It never reaches the database.
type Session struct {
	ParticipantID string           `json:"participant_id"`
	Step          ConversationStep `json:"step"`
	Address       string           `json:"address,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	SelectedItem  *SelectedItem    `json:"selected_item,omitempty"`
	Cart          *Cart            `json:"cart,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func NewSession(participantID string) *Session {
	return &Session{
		ParticipantID: participantID,
		Step:          StepStart,
		UpdatedAt:     time.Now(),
	}
}

type SelectedItem struct {
	ProductID   string          `json:"product_id,omitempty"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

type Cart struct {
	Items    []CartItem `json:"items"`
	Currency string     `json:"currency"`
	Note     string     `json:"note,omitempty"`
	Source   string     `json:"source,omitempty"`
}

type CartItem struct {
	Code      string          `json:"code,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (c CartItem) Subtotal() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

type SessionStore interface {
	// Get returns ErrSessionNotFound when the participant has no live session.
	Get(ctx context.Context, participantID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, participantID string) error
}
