package webhook

import "github.com/shopspring/decimal"

const (
	ObjectPage    = "page"
	FieldSendCart = "send_cart"
)

// Envelope covers both shapes the webhook receives: page messaging events
// (Object set) and field change events such as send_cart (Field set).
type Envelope struct {
	Object string        `json:"object"`
	Entry  []Entry       `json:"entry"`
	Field  string        `json:"field"`
	Value  *CartEnvelope `json:"value"`
}

type Entry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

type Party struct {
	ID string `json:"id"`
}

type MessagingEvent struct {
	Sender    Party     `json:"sender"`
	Recipient Party     `json:"recipient"`
	Timestamp int64     `json:"timestamp"`
	Message   *Message  `json:"message"`
	Postback  *Postback `json:"postback"`
}

type Message struct {
	MID         string       `json:"mid"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

type Attachment struct {
	Type string `json:"type"`
}

type Postback struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

type CartEnvelope struct {
	Sender    Party     `json:"sender"`
	Recipient Party     `json:"recipient"`
	Order     CartOrder `json:"order"`
}

type CartOrder struct {
	Products []CartProduct `json:"products"`
	Note     string        `json:"note"`
	Source   string        `json:"source"`
}

type CartProduct struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
}
