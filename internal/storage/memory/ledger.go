package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"service-delivery-slots/internal/apperr"
	"service-delivery-slots/internal/domain"
	"service-delivery-slots/internal/ports/ledger"
)

const shardCount = 32

// Ledger is an in-memory reservation ledger. Reservations are sharded by
// slot id so concurrent commits on unrelated slots never contend on the
// same mutex; the check-then-set for one slot happens under its shard lock.
type Ledger struct {
	shards [shardCount]shard
	byID   sync.Map // reservation id -> *domain.Reservation
	nextID atomic.Int64
}

type shard struct {
	mu     sync.RWMutex
	active map[int64]*domain.Reservation // slot id -> reservation
}

// NewLedger creates an empty in-memory ledger.
func NewLedger() *Ledger {
	l := &Ledger{}
	for i := range l.shards {
		l.shards[i].active = make(map[int64]*domain.Reservation)
	}
	return l
}

var _ ledger.Ledger = (*Ledger)(nil)

func (l *Ledger) shardFor(slotID int64) *shard {
	return &l.shards[uint64(slotID)%shardCount]
}

// TryCommit stores the reservation unless the slot is already taken.
func (l *Ledger) TryCommit(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	s := l.shardFor(res.SlotID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.active[res.SlotID]; taken {
		return nil, apperr.ErrConflict
	}

	committed := *res
	committed.ID = l.nextID.Add(1)
	s.active[res.SlotID] = &committed
	l.byID.Store(committed.ID, &committed)

	out := committed
	return &out, nil
}

// BulkStatus reports which of the slot ids hold an active reservation.
// Reservations are never released, so per-shard reads cannot observe a
// reserved slot turning available again.
func (l *Ledger) BulkStatus(_ context.Context, slotIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(slotIDs))
	for _, id := range slotIDs {
		s := l.shardFor(id)
		s.mu.RLock()
		_, taken := s.active[id]
		s.mu.RUnlock()
		if taken {
			out[id] = true
		}
	}
	return out, nil
}

// GetByID returns a reservation by its id.
func (l *Ledger) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	v, ok := l.byID.Load(id)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	res := *v.(*domain.Reservation)
	return &res, nil
}
