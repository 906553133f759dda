package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-delivery-slots/internal/apperr"
	"service-delivery-slots/internal/domain"
)

func newReservation(slotID int64) *domain.Reservation {
	return &domain.Reservation{
		SlotID:    slotID,
		Method:    domain.MethodDelivery,
		Date:      time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		Start:     domain.NewTimeOfDay(10, 0),
		End:       domain.NewTimeOfDay(11, 0),
		CreatedAt: time.Date(2024, time.June, 9, 12, 0, 0, 0, time.UTC),
	}
}

func TestLedger_TryCommit_ThenConflict(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	ctx := context.Background()

	first, err := l.TryCommit(ctx, newReservation(42))
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, err = l.TryCommit(ctx, newReservation(42))
	require.ErrorIs(t, err, apperr.ErrConflict)

	// losing attempt must not touch the stored record
	got, err := l.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, *first, *got)
}

func TestLedger_TryCommit_ConcurrentRacers(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	ctx := context.Background()

	const racers = 100

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		wins       int
		conflicts  int
		unexpected error
	)
	start := make(chan struct{})

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := l.TryCommit(ctx, newReservation(42))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, apperr.ErrConflict):
				conflicts++
			default:
				unexpected = err
			}
		}()
	}

	close(start)
	wg.Wait()

	require.NoError(t, unexpected)
	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)

	status, err := l.BulkStatus(ctx, []int64{42})
	require.NoError(t, err)
	assert.True(t, status[42])
}

func TestLedger_TryCommit_DistinctSlots(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	ctx := context.Background()

	const slots = 64

	var wg sync.WaitGroup
	for i := int64(0); i < slots; i++ {
		wg.Add(1)
		go func(slotID int64) {
			defer wg.Done()
			_, err := l.TryCommit(ctx, newReservation(slotID))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	ids := make([]int64, 0, slots)
	for i := int64(0); i < slots; i++ {
		ids = append(ids, i)
	}
	status, err := l.BulkStatus(ctx, ids)
	require.NoError(t, err)
	assert.Len(t, status, slots)
}

func TestLedger_MonotonicReservationIDs(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	ctx := context.Background()

	a, err := l.TryCommit(ctx, newReservation(1))
	require.NoError(t, err)
	b, err := l.TryCommit(ctx, newReservation(2))
	require.NoError(t, err)
	assert.Greater(t, b.ID, a.ID)
}

func TestLedger_BulkStatus_Empty(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	status, err := l.BulkStatus(context.Background(), []int64{7, 8, 9})
	require.NoError(t, err)
	assert.Empty(t, status)
}

func TestLedger_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	_, err := l.GetByID(context.Background(), 12345)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
