package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-delivery-slots/internal/logx"
	"service-delivery-slots/internal/service/booking"
)

type stubPublisher struct {
	calls int
	errs  []error
}

func (s *stubPublisher) Publish(context.Context, booking.Event) error {
	s.calls++
	if s.calls <= len(s.errs) {
		return s.errs[s.calls-1]
	}
	return nil
}

type stubCounter struct{ n int }

func (c *stubCounter) Inc() { c.n++ }

func testConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestRetryingPublisher_NilNext(t *testing.T) {
	t.Parallel()

	require.Nil(t, NewRetryingPublisher(nil, logx.Nop(), nil, testConfig()))
}

func TestRetryingPublisher_FirstAttemptSucceeds(t *testing.T) {
	t.Parallel()

	next := &stubPublisher{}
	retries := &stubCounter{}
	p := NewRetryingPublisher(next, logx.Nop(), retries, testConfig())

	require.NoError(t, p.Publish(context.Background(), booking.Event{ReservationID: 1}))
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 0, retries.n)
}

func TestRetryingPublisher_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	next := &stubPublisher{errs: []error{errors.New("broker down"), errors.New("broker down")}}
	retries := &stubCounter{}
	p := NewRetryingPublisher(next, logx.Nop(), retries, testConfig())

	require.NoError(t, p.Publish(context.Background(), booking.Event{ReservationID: 1}))
	assert.Equal(t, 3, next.calls)
	assert.Equal(t, 2, retries.n)
}

func TestRetryingPublisher_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	failure := errors.New("broker down")
	next := &stubPublisher{errs: []error{failure, failure, failure, failure}}
	p := NewRetryingPublisher(next, logx.Nop(), nil, testConfig())

	err := p.Publish(context.Background(), booking.Event{ReservationID: 1})
	require.ErrorIs(t, err, failure)
	assert.Equal(t, 3, next.calls)
}

func TestRetryingPublisher_StopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	failure := errors.New("broker down")
	next := &stubPublisher{errs: []error{failure, failure, failure}}
	p := NewRetryingPublisher(next, logx.Nop(), nil, testConfig())

	err := p.Publish(ctx, booking.Event{ReservationID: 1})
	require.ErrorIs(t, err, failure)
	assert.Equal(t, 1, next.calls)
}

func TestBackoff_CappedAtMax(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100*time.Millisecond, backoff(100*time.Millisecond, time.Second, 1))
	assert.Equal(t, 400*time.Millisecond, backoff(100*time.Millisecond, time.Second, 3))
	assert.Equal(t, time.Second, backoff(100*time.Millisecond, time.Second, 10))
}

func TestFromDomain(t *testing.T) {
	t.Parallel()

	ev := booking.Event{
		ReservationID: 7,
		SlotID:        42,
		Method:        "DELIVERY",
		Date:          time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:     time.Date(2024, time.June, 9, 15, 4, 5, 0, time.UTC),
	}
	ev.Start, ev.End = 10*60, 11*60

	dto := FromDomain(ev)
	assert.Equal(t, int64(7), dto.ReservationID)
	assert.Equal(t, int64(42), dto.SlotID)
	assert.Equal(t, "DELIVERY", dto.Method)
	assert.Equal(t, "2024-06-10", dto.Date)
	assert.Equal(t, "10:00", dto.StartTime)
	assert.Equal(t, "11:00", dto.EndTime)
	assert.Equal(t, "2024-06-09T15:04:05Z", dto.CreatedAt)
}
