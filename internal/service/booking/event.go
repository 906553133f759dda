package booking

import (
	"time"

	"service-delivery-slots/internal/domain"
)

// Event describes a committed reservation for downstream consumers.
type Event struct {
	ReservationID int64
	SlotID        int64
	Method        domain.Method
	Date          time.Time
	Start         domain.TimeOfDay
	End           domain.TimeOfDay
	CreatedAt     time.Time
}

func eventFrom(r *domain.Reservation) Event {
	return Event{
		ReservationID: r.ID,
		SlotID:        r.SlotID,
		Method:        r.Method,
		Date:          r.Date,
		Start:         r.Start,
		End:           r.End,
		CreatedAt:     r.CreatedAt,
	}
}
