package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-delivery-slots/internal/metrics"
)

func registerMetrics(container *dig.Container) error {
	named := map[string]func() prometheus.Counter{
		"reservations_committed_total": metrics.NewReservationsCommittedTotal,
		"reservation_conflicts_total":  metrics.NewReservationConflictsTotal,
		"rate_limit_exceeded_total":    metrics.NewRateLimitExceededTotal,
		"event_publish_retries_total":  metrics.NewEventPublishRetriesTotal,
	}
	for name, ctor := range named {
		ctor := ctor
		provider := func() prometheus.Counter { return registered(ctor()) }
		if err := container.Provide(provider, dig.Name(name)); err != nil {
			return fmt.Errorf("provide counter %s: %w", name, err)
		}
	}
	return nil
}

// registered puts the counter into the default registry; if a previous
// container build already did, the existing collector is reused.
func registered(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return c
}
