package slots

import (
	"context"
	"time"

	"service-delivery-slots/internal/domain"
	"service-delivery-slots/internal/logx"
)

// Service lists the time slots of a delivery method for a date, with the
// reservation status of each slot joined in from the ledger. Read-only.
type Service struct {
	registry         methodRegistry
	generator        slotGenerator
	statuses         statusReader
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates a slot listing service.
func NewService(registry methodRegistry, generator slotGenerator, statuses statusReader, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		registry:         registry,
		generator:        generator,
		statuses:         statuses,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// List returns the slots of a method for a date ordered by start time.
// Generation is deterministic; only the statuses come from storage.
func (s *Service) List(ctx context.Context, code string, date time.Time) ([]domain.TimeSlot, error) {
	method, err := s.registry.Get(code)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.registry.ValidateDate(method.Code, date, now); err != nil {
		return nil, err
	}

	generated, err := s.generator.Generate(method.Code, date, now)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	ids := make([]int64, 0, len(generated))
	for _, slot := range generated {
		ids = append(ids, slot.ID)
	}
	reserved, err := s.statuses.BulkStatus(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range generated {
		if reserved[generated[i].ID] {
			generated[i].Status = domain.SlotReserved
		}
	}
	return generated, nil
}
