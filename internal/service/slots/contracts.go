package slots

import (
	"context"
	"time"

	"service-delivery-slots/internal/domain"
)

type methodRegistry interface {
	Get(code string) (domain.MethodInfo, error)
	ValidateDate(method domain.Method, date, today time.Time) error
}

type slotGenerator interface {
	Generate(method domain.Method, date, now time.Time) ([]domain.TimeSlot, error)
}

type statusReader interface {
	BulkStatus(ctx context.Context, slotIDs []int64) (map[int64]bool, error)
}
