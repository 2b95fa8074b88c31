package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

const writeTimeout = 10 * time.Second

var _ domain.PublisherPort = (*DefaultKafkaPublisher)(nil)

type DefaultKafkaPublisher struct {
	writer *kafka.Writer
}

func NewDefaultKafkaPublisher(brokers []string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
	}
}

func (k *DefaultKafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	km := make([]kafka.Message, 0, len(msgs))
	now := time.Now()
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  now,
			Topic: topic,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := k.writer.WriteMessages(ctx, km...); err != nil {
		return fmt.Errorf("failed to write messages to %s: %w", topic, err)
	}
	return nil
}

// PublishOrderEvent keys the message by order id so every change of one order lands on one partition.
func (k *DefaultKafkaPublisher) PublishOrderEvent(topic string, event OrderEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.Publish(topic, domain.Message{Key: []byte(event.OrderID), Value: v})
}

func (k *DefaultKafkaPublisher) PublishOrderFailure(topic string, event OrderFailureEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.Publish(topic, domain.Message{Key: []byte(event.ParticipantID), Value: v})
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}
