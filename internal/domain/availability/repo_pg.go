package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinicore/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	if c := db.FromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *repoPG) Open(ctx context.Context, doctorID uuid.UUID, date, slot string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor_availability (doctor_id, date, time_slot)
		VALUES ($1, $2, $3)
		ON CONFLICT (doctor_id, date, time_slot) DO NOTHING`,
		doctorID, date, slot)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return nil
	}
	return r.stampDay(ctx, doctorID, date)
}

func (r *repoPG) Close(ctx context.Context, doctorID uuid.UUID, date, slot string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		DELETE FROM doctor_availability
		WHERE doctor_id = $1 AND date = $2 AND time_slot = $3`,
		doctorID, date, slot)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return nil
	}
	return r.stampDay(ctx, doctorID, date)
}

// stampDay records that the doctor's slot set for the day changed.
func (r *repoPG) stampDay(ctx context.Context, doctorID uuid.UUID, date string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor_availability_day (doctor_id, date, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (doctor_id, date) DO UPDATE SET updated_at = NOW()`,
		doctorID, date)
	return err
}

func (r *repoPG) LastUpdated(ctx context.Context, doctorID uuid.UUID, date string) (time.Time, error) {
	var t time.Time
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT updated_at FROM doctor_availability_day
		WHERE doctor_id = $1 AND date = $2`,
		doctorID, date).Scan(&t)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, nil
	}
	return t, err
}

func (r *repoPG) ListDay(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT time_slot FROM doctor_availability
		WHERE doctor_id = $1 AND date = $2
		ORDER BY time_slot ASC`,
		doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var slots []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// IsOpen locks the slot row when one exists. Inside a transaction this
// serializes the book and close critical sections on the same slot.
func (r *repoPG) IsOpen(ctx context.Context, doctorID uuid.UUID, date, slot string) (bool, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT 1 FROM doctor_availability
		WHERE doctor_id = $1 AND date = $2 AND time_slot = $3
		FOR UPDATE`,
		doctorID, date, slot)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	return rows.Next(), rows.Err()
}
