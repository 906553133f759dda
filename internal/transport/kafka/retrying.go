package kafka

import (
	"context"
	"time"

	"service-delivery-slots/internal/logx"
	"service-delivery-slots/internal/service/booking"
)

type publisher interface {
	Publish(ctx context.Context, ev booking.Event) error
}

type counter interface {
	Inc()
}

// RetryConfig describes the retry behavior of RetryingPublisher.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingPublisher retries failed event publishes with exponential backoff.
// The event stream is an audit feed, so a few extra attempts are worth it,
// but the caller's context always wins.
type RetryingPublisher struct {
	next    publisher
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingPublisher wraps next with retry behavior; nil next yields nil.
func NewRetryingPublisher(next publisher, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingPublisher {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingPublisher{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Publish delivers the event, retrying on failure until the attempt budget
// or the context runs out.
func (p *RetryingPublisher) Publish(ctx context.Context, ev booking.Event) error {
	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		err := p.next.Publish(ctx, ev)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == p.cfg.MaxAttempts {
			break
		}

		delay := backoff(p.cfg.BaseDelay, p.cfg.MaxDelay, attempt)
		if p.retries != nil {
			p.retries.Inc()
		}
		p.logger.Warn("reservation event publish retry",
			logx.Int64("reservation_id", ev.ReservationID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

// backoff computes the delay before the next attempt.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
