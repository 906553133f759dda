package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/IBM/sarama"

	"service-delivery-slots/internal/service/booking"
)

// Producer publishes reservation events to a Kafka topic.
type Producer struct {
	sp    sarama.SyncProducer
	topic string
}

// NewProducer creates a Kafka reservation event producer.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	// не стартую если у кафки нет настроек
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true

	sp, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: new sync producer: %w", err)
	}

	return &Producer{sp: sp, topic: topic}, nil
}

// Publish sends one reservation event, keyed by slot id so events for the
// same slot stay ordered within a partition.
func (p *Producer) Publish(ctx context.Context, ev booking.Event) error {
	if p == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(FromDomain(ev))
	if err != nil {
		return fmt.Errorf("kafka: marshal reservation event: %w", err)
	}

	_, _, err = p.sp.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(ev.SlotID, 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("kafka: send reservation event: %w", err)
	}
	return nil
}

// Close shuts the underlying producer down.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.sp.Close()
}
