package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-delivery-slots/internal/apperr"
	"service-delivery-slots/internal/domain"
	"service-delivery-slots/internal/ports/ledger"
)

// schema keeps the ledger table definition next to the code that owns it.
// UNIQUE(slot_id) is the whole concurrency story: the insert below either
// claims the slot or trips the constraint, one statement, no lock juggling.
const schema = `
CREATE TABLE IF NOT EXISTS reservations (
    id          BIGSERIAL PRIMARY KEY,
    slot_id     BIGINT      NOT NULL UNIQUE,
    method      TEXT        NOT NULL,
    slot_date   DATE        NOT NULL,
    start_time  TEXT        NOT NULL,
    end_time    TEXT        NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ReservationRepo is the Postgres-backed reservation ledger.
type ReservationRepo struct{ db *pgxpool.Pool }

// NewReservationRepo creates a new ReservationRepo.
func NewReservationRepo(db *pgxpool.Pool) *ReservationRepo { return &ReservationRepo{db: db} }

var _ ledger.Ledger = (*ReservationRepo)(nil)

// EnsureSchema creates the reservations table if it does not exist.
func (r *ReservationRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure reservations schema: %w", err)
	}
	return nil
}

// TryCommit inserts the reservation, relying on the unique constraint on
// slot_id as the per-slot compare-and-set. A duplicate key means another
// reservation won the race.
func (r *ReservationRepo) TryCommit(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	committed := *res
	err := r.db.QueryRow(ctx, `
        INSERT INTO reservations (slot_id, method, slot_date, start_time, end_time, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `, res.SlotID, string(res.Method), res.Date, res.Start.String(), res.End.String(), res.CreatedAt,
	).Scan(&committed.ID)
	if err != nil {
		if IsDuplicate(err) {
			return nil, apperr.ErrConflict
		}
		return nil, errors.Join(apperr.ErrUnavailable, fmt.Errorf("commit reservation for slot %d: %w", res.SlotID, err))
	}
	return &committed, nil
}

// BulkStatus reports reserved slot ids in one query, which gives the
// catalog listing a consistent snapshot.
func (r *ReservationRepo) BulkStatus(ctx context.Context, slotIDs []int64) (map[int64]bool, error) {
	if len(slotIDs) == 0 {
		return map[int64]bool{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT slot_id FROM reservations WHERE slot_id = ANY($1)`, slotIDs)
	if err != nil {
		return nil, errors.Join(apperr.ErrUnavailable, fmt.Errorf("bulk slot status: %w", err))
	}
	defer rows.Close()

	out := make(map[int64]bool, len(slotIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Join(apperr.ErrUnavailable, fmt.Errorf("scan slot id: %w", err))
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(apperr.ErrUnavailable, fmt.Errorf("bulk slot status: %w", err))
	}
	return out, nil
}

// GetByID - returns a reservation by its id.
func (r *ReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var (
		res        domain.Reservation
		method     string
		start, end string
		date       time.Time
	)
	err := r.db.QueryRow(ctx, `
        SELECT id, slot_id, method, slot_date, start_time, end_time, created_at
        FROM reservations WHERE id = $1
    `, id).Scan(&res.ID, &res.SlotID, &method, &date, &start, &end, &res.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperr.ErrNotFound
		}
		return nil, errors.Join(apperr.ErrUnavailable, fmt.Errorf("get reservation %d: %w", id, err))
	}

	res.Method = domain.Method(method)
	res.Date = domain.DateOnly(date)
	if res.Start, err = domain.ParseTimeOfDay(start); err != nil {
		return nil, fmt.Errorf("reservation %d: %w", id, err)
	}
	if res.End, err = domain.ParseTimeOfDay(end); err != nil {
		return nil, fmt.Errorf("reservation %d: %w", id, err)
	}
	return &res, nil
}
