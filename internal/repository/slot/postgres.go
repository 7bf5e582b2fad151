package slot

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"kitchen-orders/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.PickupSlot, error) {
	const q = `
SELECT id, day_of_week, start_time, end_time, is_active
FROM pickup_slot
WHERE id = $1
`
	var s domain.PickupSlot
	var start, end pgtype.Time
	err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.DayOfWeek, &start, &end, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("slot repo: get id=%d error=%v", id, err)
		return nil, err
	}
	s.Start = toTimeOfDay(start)
	s.End = toTimeOfDay(end)
	return &s, nil
}

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.PickupSlot, error) {
	const q = `
SELECT id, day_of_week, start_time, end_time, is_active
FROM pickup_slot
WHERE is_active
ORDER BY day_of_week ASC, start_time ASC
`
	return r.list(ctx, q)
}

func (r *postgresRepo) ListActiveByDay(ctx context.Context, dayOfWeek int) ([]domain.PickupSlot, error) {
	const q = `
SELECT id, day_of_week, start_time, end_time, is_active
FROM pickup_slot
WHERE is_active AND day_of_week = $1
ORDER BY start_time ASC
`
	return r.list(ctx, q, dayOfWeek)
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.PickupSlot, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("slot repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.PickupSlot
	for rows.Next() {
		var s domain.PickupSlot
		var start, end pgtype.Time
		if err := rows.Scan(&s.ID, &s.DayOfWeek, &start, &end, &s.Active); err != nil {
			return nil, err
		}
		s.Start = toTimeOfDay(start)
		s.End = toTimeOfDay(end)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func toTimeOfDay(t pgtype.Time) domain.TimeOfDay {
	return domain.TimeOfDay(t.Microseconds / 60_000_000)
}
