package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-delivery-slots/internal/apperr"
	"service-delivery-slots/internal/catalog"
	"service-delivery-slots/internal/domain"
	"service-delivery-slots/internal/logx"
	"service-delivery-slots/internal/service/methods"
	"service-delivery-slots/internal/storage/memory"
)

var testNow = time.Date(2024, time.June, 5, 10, 30, 0, 0, time.UTC)

type stubPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *stubPublisher) Publish(_ context.Context, ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type stubCounter struct {
	mu sync.Mutex
	n  int
}

func (c *stubCounter) Inc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

func (c *stubCounter) value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func newTestService(ledger reservationLedger) *Service {
	s := NewService(methods.NewRegistry(30), catalog.New(), ledger, 3*time.Second, logx.Nop())
	s.now = func() time.Time { return testNow }
	return s
}

func slotID(method domain.Method, date time.Time, hour int) int64 {
	return catalog.EncodeID(method, date, domain.NewTimeOfDay(hour, 0))
}

func TestService_Reserve_Success(t *testing.T) {
	t.Parallel()

	svc := newTestService(memory.NewLedger())
	date := testNow.AddDate(0, 0, 5)
	id := slotID(domain.MethodDelivery, date, 9)

	res, err := svc.Reserve(context.Background(), "DELIVERY", date, id)
	require.NoError(t, err)

	assert.NotZero(t, res.ID)
	assert.Equal(t, id, res.SlotID)
	assert.Equal(t, domain.MethodDelivery, res.Method)
	assert.Equal(t, domain.DateOnly(date), res.Date)
	assert.Equal(t, "09:00", res.Start.String())
	assert.Equal(t, "11:00", res.End.String())
	assert.Equal(t, testNow, res.CreatedAt)
}

func TestService_Reserve_UnknownMethod(t *testing.T) {
	t.Parallel()

	svc := newTestService(memory.NewLedger())

	_, err := svc.Reserve(context.Background(), "TELEPORT", testNow, 1)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_Reserve_DateWindow(t *testing.T) {
	t.Parallel()

	svc := newTestService(memory.NewLedger())

	// express delivery pins to today
	tomorrow := testNow.AddDate(0, 0, 1)
	_, err := svc.Reserve(context.Background(), "DELIVERY_ASAP", tomorrow,
		slotID(domain.MethodDeliveryASAP, tomorrow, 10))
	require.ErrorIs(t, err, apperr.ErrInvalid)

	// scheduled delivery is capped at thirty days out
	far := testNow.AddDate(0, 0, 31)
	_, err = svc.Reserve(context.Background(), "DELIVERY", far,
		slotID(domain.MethodDelivery, far, 9))
	require.ErrorIs(t, err, apperr.ErrInvalid)

	// inside the window it goes through
	near := testNow.AddDate(0, 0, 5)
	_, err = svc.Reserve(context.Background(), "DELIVERY", near,
		slotID(domain.MethodDelivery, near, 9))
	require.NoError(t, err)
}

func TestService_Reserve_SlotMismatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(memory.NewLedger())
	date := testNow.AddDate(0, 0, 5)

	// slot id of another method
	_, err := svc.Reserve(context.Background(), "DELIVERY", date,
		slotID(domain.MethodDrive, date, 9))
	require.ErrorIs(t, err, apperr.ErrInvalid)

	// slot id of another date
	_, err = svc.Reserve(context.Background(), "DELIVERY", date,
		slotID(domain.MethodDelivery, date.AddDate(0, 0, 1), 9))
	require.ErrorIs(t, err, apperr.ErrInvalid)

	// id that no generation could produce
	_, err = svc.Reserve(context.Background(), "DELIVERY", date,
		slotID(domain.MethodDelivery, date, 10))
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_Reserve_ConflictLeavesFirstIntact(t *testing.T) {
	t.Parallel()

	ledger := memory.NewLedger()
	conflicts := &stubCounter{}
	svc := newTestService(ledger).WithCounters(&stubCounter{}, conflicts)
	date := testNow.AddDate(0, 0, 2)
	id := slotID(domain.MethodDelivery, date, 14)

	first, err := svc.Reserve(context.Background(), "DELIVERY", date, id)
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), "DELIVERY", date, id)
	require.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, 1, conflicts.value())

	stored, err := ledger.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, *first, *stored)
}

func TestService_Reserve_ConcurrentRacers(t *testing.T) {
	t.Parallel()

	svc := newTestService(memory.NewLedger())
	date := testNow.AddDate(0, 0, 1)
	id := slotID(domain.MethodDelivery, date, 16)

	const racers = 50

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
			_, err := svc.Reserve(context.Background(), "DELIVERY", date, id)
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
}

func TestService_Reserve_PublishesEvent(t *testing.T) {
	t.Parallel()

	pub := &stubPublisher{}
	svc := newTestService(memory.NewLedger()).WithEvents(pub)
	date := testNow.AddDate(0, 0, 3)
	id := slotID(domain.MethodDrive, date, 11)

	res, err := svc.Reserve(context.Background(), "DRIVE", date, id)
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, res.ID, ev.ReservationID)
	assert.Equal(t, id, ev.SlotID)
	assert.Equal(t, domain.MethodDrive, ev.Method)

	// conflict publishes nothing
	_, err = svc.Reserve(context.Background(), "DRIVE", date, id)
	require.ErrorIs(t, err, apperr.ErrConflict)
	assert.Len(t, pub.events, 1)
}

func TestService_Reserve_PublishFailureDoesNotFailReservation(t *testing.T) {
	t.Parallel()

	pub := &stubPublisher{err: errors.New("broker down")}
	svc := newTestService(memory.NewLedger()).WithEvents(pub)
	date := testNow.AddDate(0, 0, 3)
	id := slotID(domain.MethodDrive, date, 9)

	res, err := svc.Reserve(context.Background(), "DRIVE", date, id)
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
}

func TestService_Reserve_ASAPToday(t *testing.T) {
	t.Parallel()

	svc := newTestService(memory.NewLedger())
	id := slotID(domain.MethodDeliveryASAP, testNow, 10)

	res, err := svc.Reserve(context.Background(), "DELIVERY_ASAP", testNow, id)
	require.NoError(t, err)
	assert.Equal(t, "10:00", res.Start.String())
	assert.Equal(t, "12:00", res.End.String())
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	svc := newTestService(memory.NewLedger())
	date := testNow.AddDate(0, 0, 4)
	id := slotID(domain.MethodDelivery, date, 11)

	created, err := svc.Reserve(context.Background(), "DELIVERY", date, id)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	_, err = svc.Get(context.Background(), created.ID+1000)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
