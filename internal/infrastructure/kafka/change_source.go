package publisher

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
)

// KafkaChangeSource turns order events from the order topic into order changes.
type KafkaChangeSource struct {
	subscriber domain.SubscriberPort
	topic      string
	groupID    string
	logger     *slog.Logger
}

func NewKafkaChangeSource(subscriber domain.SubscriberPort, topic, groupID string, logger *slog.Logger) *KafkaChangeSource {
	return &KafkaChangeSource{subscriber: subscriber, topic: topic, groupID: groupID, logger: logger}
}

func (s *KafkaChangeSource) Run(ctx context.Context, emit domain.OrderChangeCallback) error {
	msgs, err := s.subscriber.Subscribe(s.topic, s.groupID)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			change, err := ChangeFromEvent(msg.Value)
			if err != nil {
				s.logger.Warn("skipping malformed order event", slog.String("error", err.Error()))
				continue
			}
			emit(change)
		}
	}
}

func ChangeFromEvent(raw []byte) (domain.OrderChange, error) {
	var event OrderEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return domain.OrderChange{}, err
	}
	changeType := event.EventType
	if changeType == "" {
		changeType = domain.ChangeUpdate
	}
	return domain.OrderChange{
		Type:       changeType,
		Schema:     "public",
		Table:      "orders",
		New:        json.RawMessage(raw),
		OccurredAt: event.OccurredAt,
	}, nil
}
