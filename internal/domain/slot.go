package domain

import "time"

// SlotStatus represents the derived status of a time slot.
type SlotStatus string

// List of possible slot statuses. A slot is reserved if and only if the
// ledger holds an active reservation for its id; the status is never stored.
const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotReserved  SlotStatus = "RESERVED"
)

// TimeSlot is a fixed time window for a delivery method on a date, the unit
// of allocation. Identity is (method, date, start, end); ID is derived from
// that tuple and is unique across the whole catalog.
type TimeSlot struct {
	ID     int64
	Method Method
	Date   time.Time // calendar date, midnight UTC
	Start  TimeOfDay
	End    TimeOfDay
	Status SlotStatus
}

// Reservation is the immutable record of a committed slot reservation.
// Method, date and times are copied from the slot at commit time so the
// record stays valid independent of later catalog regeneration.
type Reservation struct {
	ID        int64
	SlotID    int64
	Method    Method
	Date      time.Time
	Start     TimeOfDay
	End       TimeOfDay
	CreatedAt time.Time
}

// DateOnly normalizes a timestamp to its calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
