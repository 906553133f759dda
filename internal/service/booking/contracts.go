package booking

import (
	"context"
	"time"

	"service-delivery-slots/internal/domain"
)

type methodRegistry interface {
	Get(code string) (domain.MethodInfo, error)
	ValidateDate(method domain.Method, date, today time.Time) error
}

type slotResolver interface {
	SlotByID(id int64) (domain.TimeSlot, error)
}

type reservationLedger interface {
	TryCommit(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// EventPublisher delivers reservation events to the audit stream.
// Implementations must be safe to call with a nil-valued receiver.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

type counter interface {
	Inc()
}
