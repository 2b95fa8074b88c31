package domain

import "context"

// OutboundMessage is the message payload sent back to a participant.
type OutboundMessage struct {
	Text string `json:"text"`
}

// Dispatcher delivers one reply. Failures are the dispatcher's to log; callers never see them.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipientID string, msg OutboundMessage)
}
