package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"service-delivery-slots/internal/apperr"
	"service-delivery-slots/internal/domain"
	"service-delivery-slots/internal/logx"
)

// Service is the booking coordinator: the only write path to the ledger.
// It turns a reservation request into exactly one of success, conflict or
// invalid request. Conflict is terminal; the service never retries, the
// caller is expected to re-fetch the slot listing instead.
type Service struct {
	registry         methodRegistry
	resolver         slotResolver
	ledger           reservationLedger
	events           EventPublisher
	commits          counter
	conflicts        counter
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates a booking coordinator.
func NewService(registry methodRegistry, resolver slotResolver, ledger reservationLedger, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		registry:         registry,
		resolver:         resolver,
		ledger:           ledger,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// WithEvents attaches a reservation event publisher.
func (s *Service) WithEvents(pub EventPublisher) *Service {
	if pub != nil {
		s.events = pub
	}
	return s
}

// WithCounters attaches commit/conflict metrics counters.
func (s *Service) WithCounters(commits, conflicts counter) *Service {
	s.commits = commits
	s.conflicts = conflicts
	return s
}

// Reserve validates the request, then performs the atomic check-and-commit
// against the ledger. Callers racing on the same slot id get exactly one
// success; everyone else gets apperr.ErrConflict.
func (s *Service) Reserve(ctx context.Context, code string, date time.Time, slotID int64) (*domain.Reservation, error) {
	method, err := s.registry.Get(code)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.registry.ValidateDate(method.Code, date, now); err != nil {
		return nil, err
	}

	slot, err := s.resolver.SlotByID(slotID)
	if err != nil {
		return nil, err
	}
	if slot.Method != method.Code || !slot.Date.Equal(domain.DateOnly(date)) {
		return nil, fmt.Errorf("slot %d does not belong to %s on %s: %w",
			slotID, method.Code, domain.DateOnly(date).Format(time.DateOnly), apperr.ErrInvalid)
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	committed, err := s.ledger.TryCommit(ctx, &domain.Reservation{
		SlotID:    slot.ID,
		Method:    slot.Method,
		Date:      slot.Date,
		Start:     slot.Start,
		End:       slot.End,
		CreatedAt: now,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			if s.conflicts != nil {
				s.conflicts.Inc()
			}
			s.logger.Info("slot already reserved",
				logx.String("event", "reservation_conflict"),
				logx.Int64("slot_id", slotID),
			)
		}
		return nil, err
	}

	if s.commits != nil {
		s.commits.Inc()
	}
	s.publishCommitted(ctx, committed)

	s.logger.Info("slot reserved",
		logx.String("event", "reservation_committed"),
		logx.Int64("reservation_id", committed.ID),
		logx.Int64("slot_id", committed.SlotID),
		logx.String("method", string(committed.Method)),
		logx.Time("date", committed.Date),
	)

	return committed, nil
}

// Get returns a reservation by its id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()
	return s.ledger.GetByID(ctx, id)
}

// publishCommitted sends the reservation event. The ledger is the source of
// truth: a publish failure is logged and counted, never surfaced to the
// caller whose reservation is already durable.
func (s *Service) publishCommitted(ctx context.Context, r *domain.Reservation) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventFrom(r)); err != nil {
		s.logger.Warn("reservation event publish failed",
			logx.Int64("reservation_id", r.ID),
			logx.Err(err),
		)
	}
}
