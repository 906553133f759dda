package catalog

import (
	"fmt"
	"sort"
	"time"

	"service-delivery-slots/internal/apperr"
	"service-delivery-slots/internal/domain"
)

// Slot windows per method. Standard methods share a four-window grid,
// same-day delivery gets the afternoon half, express delivery gets one
// rolling two-hour window derived from the current hour.
var (
	standardGrid = []window{
		{start: 9, end: 11},
		{start: 11, end: 13},
		{start: 14, end: 16},
		{start: 16, end: 18},
	}
	sameDayGrid = []window{
		{start: 14, end: 16},
		{start: 16, end: 18},
	}
)

// Express delivery service window: whole-hour starts between 08:00 and
// 18:00, two hours long, end capped at closing time 20:00.
const (
	asapFirstStart = 8
	asapLastStart  = 18
	asapSpanHours  = 2
	asapCloseHour  = 20
)

type window struct {
	start, end int // whole hours
}

// Id encoding: a slot id is a pure function of (method, date, start hour).
// days since epoch * method index * start hour pack into one int64, so
// regeneration always yields the same ids and no two distinct tuples can
// collide. slotsPerDay leaves room for any whole-hour start.
const (
	slotsPerDay = 32
	methodCount = 4
)

// epoch is the zero day of the id encoding. Never move it: ids are
// persisted in the ledger.
var epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Catalog generates the canonical slot set for a (method, date) pair.
type Catalog struct{}

// New creates a Catalog.
func New() Catalog { return Catalog{} }

// EncodeID derives the catalog-wide unique id for a slot tuple.
func EncodeID(method domain.Method, date time.Time, start domain.TimeOfDay) int64 {
	days := int64(domain.DateOnly(date).Sub(epoch) / (24 * time.Hour))
	return (days*methodCount+int64(methodIndex(method)))*slotsPerDay + int64(start.Hour())
}

// Generate returns the slots of a method for a date, ordered by start time.
// The now argument is consulted only for express delivery, whose single
// slot starts at the current hour.
func (Catalog) Generate(method domain.Method, date time.Time, now time.Time) ([]domain.TimeSlot, error) {
	date = domain.DateOnly(date)

	if method == domain.MethodDeliveryASAP {
		w, err := asapWindow(now)
		if err != nil {
			return nil, err
		}
		return []domain.TimeSlot{newSlot(method, date, w)}, nil
	}

	grid, err := gridFor(method)
	if err != nil {
		return nil, err
	}
	slots := make([]domain.TimeSlot, 0, len(grid))
	for _, w := range grid {
		slots = append(slots, newSlot(method, date, w))
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Start != slots[j].Start {
			return slots[i].Start < slots[j].Start
		}
		return slots[i].ID < slots[j].ID
	})
	return slots, nil
}

// SlotByID decodes a slot id back into its tuple. It fails with ErrInvalid
// when the id does not denote any slot the catalog could have generated.
func (Catalog) SlotByID(id int64) (domain.TimeSlot, error) {
	if id < 0 {
		return domain.TimeSlot{}, fmt.Errorf("slot id %d: %w", id, apperr.ErrInvalid)
	}
	startHour := int(id % slotsPerDay)
	rest := id / slotsPerDay
	method := domain.Methods()[rest%methodCount]
	days := rest / methodCount
	date := epoch.AddDate(0, 0, int(days))

	w, ok := windowAt(method, startHour)
	if !ok {
		return domain.TimeSlot{}, fmt.Errorf("slot id %d: no %s slot starts at %02d:00: %w",
			id, method, startHour, apperr.ErrInvalid)
	}
	return newSlot(method, date, w), nil
}

func newSlot(method domain.Method, date time.Time, w window) domain.TimeSlot {
	start := domain.NewTimeOfDay(w.start, 0)
	return domain.TimeSlot{
		ID:     EncodeID(method, date, start),
		Method: method,
		Date:   date,
		Start:  start,
		End:    domain.NewTimeOfDay(w.end, 0),
		Status: domain.SlotAvailable,
	}
}

func gridFor(method domain.Method) ([]window, error) {
	switch method {
	case domain.MethodDrive, domain.MethodDelivery:
		return standardGrid, nil
	case domain.MethodDeliveryToday:
		return sameDayGrid, nil
	default:
		return nil, fmt.Errorf("unknown method %q: %w", method, apperr.ErrInvalid)
	}
}

// asapWindow derives the express slot from the wall clock: start at the
// current hour, clamped into the service window, end capped at closing.
func asapWindow(now time.Time) (window, error) {
	hour := now.Hour()
	if hour > asapLastStart {
		return window{}, fmt.Errorf("express delivery is not available after %02d:00: %w",
			asapLastStart, apperr.ErrInvalid)
	}
	if hour < asapFirstStart {
		hour = asapFirstStart
	}
	return asapWindowAt(hour), nil
}

func asapWindowAt(startHour int) window {
	end := startHour + asapSpanHours
	if end > asapCloseHour {
		end = asapCloseHour
	}
	return window{start: startHour, end: end}
}

// windowAt reports whether a slot of the method may start at the given hour
// and, if so, returns its window. Express slots from earlier hours of the
// day stay addressable, so any start inside the service window is accepted.
func windowAt(method domain.Method, startHour int) (window, bool) {
	if method == domain.MethodDeliveryASAP {
		if startHour < asapFirstStart || startHour > asapLastStart {
			return window{}, false
		}
		return asapWindowAt(startHour), true
	}
	grid, err := gridFor(method)
	if err != nil {
		return window{}, false
	}
	for _, w := range grid {
		if w.start == startHour {
			return w, true
		}
	}
	return window{}, false
}

func methodIndex(method domain.Method) int {
	for i, m := range domain.Methods() {
		if m == method {
			return i
		}
	}
	return 0
}
