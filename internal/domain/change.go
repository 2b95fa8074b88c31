package domain

import (
	"context"
	"encoding/json"
	"time"
)

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// OrderChange is one row-level change of the orders table. New and Old hold the row as the
// database rendered it; Old is empty for inserts and New is empty for deletes.
type OrderChange struct {
	Type       ChangeType      `json:"eventType"`
	Schema     string          `json:"schema"`
	Table      string          `json:"table"`
	New        json.RawMessage `json:"new,omitempty"`
	Old        json.RawMessage `json:"old,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type OrderChangeCallback func(change OrderChange)

// OrderChangeSource produces changes until ctx is cancelled.
type OrderChangeSource interface {
	Run(ctx context.Context, emit OrderChangeCallback) error
}
