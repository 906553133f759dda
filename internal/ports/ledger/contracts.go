package ledger

import (
	"context"

	"service-delivery-slots/internal/domain"
)

// Reader is the ledger read path used by slot listings.
type Reader interface {
	// BulkStatus reports which of the given slot ids currently hold an
	// active reservation. Ids absent from the result are not reserved.
	BulkStatus(ctx context.Context, slotIDs []int64) (map[int64]bool, error)
	// GetByID returns a reservation by its id, apperr.ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// Writer is the ledger write path. Only the booking coordinator may use it.
type Writer interface {
	// TryCommit atomically stores the reservation if no active reservation
	// exists for its slot id, assigning the reservation id. It returns
	// apperr.ErrConflict without mutating state when the slot is taken.
	TryCommit(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
}

// Ledger is the authoritative record of which slots are actively reserved.
type Ledger interface {
	Reader
	Writer
}
