package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-delivery-slots/internal/config"
	"service-delivery-slots/internal/logx"
	"service-delivery-slots/internal/service/booking"
	"service-delivery-slots/internal/transport/kafka"
)

type eventsIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"event_publish_retries_total"`
}

// newEventPublisher builds the Kafka event pipeline. A nil publisher means
// events are disabled; the booking service treats that as a no-op.
func newEventPublisher(in eventsIn) (booking.EventPublisher, *kafka.Producer, error) {
	producer, err := kafka.NewProducer(in.Cfg.Kafka.Brokers, in.Cfg.Kafka.Topic)
	if err != nil {
		return nil, nil, err
	}
	if producer == nil {
		return nil, nil, nil
	}

	retrying := kafka.NewRetryingPublisher(producer, in.Logger, in.Retries, kafka.RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    time.Second,
	})
	return retrying, producer, nil
}

func registerEvents(container *dig.Container) error {
	return provideAll(container, newEventPublisher)
}
