package kafka

import (
	"time"

	"service-delivery-slots/internal/service/booking"
)

// EventDTO is the wire form of a reservation event.
type EventDTO struct {
	ReservationID int64  `json:"reservation_id"`
	SlotID        int64  `json:"slot_id"`
	Method        string `json:"method"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	CreatedAt     string `json:"created_at"`
}

// FromDomain converts a booking.Event to its wire form.
func FromDomain(ev booking.Event) EventDTO {
	return EventDTO{
		ReservationID: ev.ReservationID,
		SlotID:        ev.SlotID,
		Method:        string(ev.Method),
		Date:          ev.Date.Format(time.DateOnly),
		StartTime:     ev.Start.String(),
		EndTime:       ev.End.String(),
		CreatedAt:     ev.CreatedAt.UTC().Format(time.RFC3339),
	}
}
