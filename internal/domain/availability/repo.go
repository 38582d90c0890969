package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists per-day open slot sets. Every mutation that
// changes a day also refreshes that day's updated-at stamp.
type Repository interface {
	// Open adds a slot to the doctor's day. Opening a slot that is
	// already open is a no-op.
	Open(ctx context.Context, doctorID uuid.UUID, date, slot string) error
	// Close removes a slot from the doctor's day. Closing a slot that
	// is not open is a no-op.
	Close(ctx context.Context, doctorID uuid.UUID, date, slot string) error
	// LastUpdated returns when the doctor's day last changed, or the
	// zero time for a day that has never been touched.
	LastUpdated(ctx context.Context, doctorID uuid.UUID, date string) (time.Time, error)
	// ListDay returns the open slots for one doctor and day, sorted by
	// start time.
	ListDay(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
	// IsOpen reports whether the slot is currently open.
	IsOpen(ctx context.Context, doctorID uuid.UUID, date, slot string) (bool, error)
}
