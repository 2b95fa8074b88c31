package publisher

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

var _ domain.SubscriberPort = (*DefaultKafkaSubscriber)(nil)

type DefaultKafkaSubscriber struct {
	brokers []string
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewDefaultKafkaSubscriber(brokers []string) *DefaultKafkaSubscriber {
	ctx, cancel := context.WithCancel(context.Background())
	return &DefaultKafkaSubscriber{brokers: brokers, ctx: ctx, cancel: cancel}
}

// Subscribe starts a group reader; the channel is closed when the reader fails or Close is called.
func (k *DefaultKafkaSubscriber) Subscribe(topic, groupID string) (<-chan domain.Message, error) {
	if len(k.brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	out := make(chan domain.Message)
	go func() {
		defer reader.Close()
		defer close(out)
		for {
			m, err := reader.ReadMessage(k.ctx)
			if err != nil {
				return
			}
			select {
			case out <- domain.Message{Key: m.Key, Value: m.Value}:
			case <-k.ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (k *DefaultKafkaSubscriber) Close() {
	k.cancel()
}
