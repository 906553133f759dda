package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewReservationsCommittedTotal returns a Prometheus counter for successfully committed reservations
func NewReservationsCommittedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reservations_committed_total",
		Help: "Total number of successfully committed slot reservations",
	})
}

// NewReservationConflictsTotal returns a Prometheus counter for reservation attempts lost to a race
func NewReservationConflictsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reservation_conflicts_total",
		Help: "Total number of reservation attempts rejected because the slot was already taken",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewEventPublishRetriesTotal returns a Prometheus counter for reservation event publish retries
func NewEventPublishRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "event_publish_retries_total",
		Help: "Total number of retry attempts performed by the reservation event publisher",
	})
}
