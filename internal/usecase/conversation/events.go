package conversation

import "github.com/shopspring/decimal"

// Message is the part of an inbound chat message the bot reacts to.
type Message struct {
	Text           string
	HasAttachments bool
}

// CartEvent is a pre-assembled order delivered outside the page messaging channel.
type CartEvent struct {
	ParticipantID string        `validate:"required"`
	Products      []CartProduct `validate:"required,min=1,dive"`
	Note          string
	Source        string
}

type CartProduct struct {
	Code      string
	Name      string          `validate:"required"`
	Quantity  int             `validate:"gt=0"`
	UnitPrice decimal.Decimal `validate:"-"`
	Currency  string
}
