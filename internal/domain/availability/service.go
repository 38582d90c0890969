package availability

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/db"
	"github.com/clinicore/clinicore/pkg/timeslot"
)

// BookingChecker answers whether a slot carries a live appointment.
// Satisfied by the appointment service.
type BookingChecker interface {
	HasActiveBooking(ctx context.Context, doctorID uuid.UUID, date, slot string) (bool, error)
}

type Service struct {
	repo     Repository
	bookings BookingChecker
	window   timeslot.Window
	runTx    db.TxRunner
}

func NewService(repo Repository, bookings BookingChecker, window timeslot.Window, runTx db.TxRunner) *Service {
	return &Service{repo: repo, bookings: bookings, window: window, runTx: runTx}
}

// OpenSlot marks a slot bookable. Opening an already-open slot is a
// no-op, so retries are safe.
func (s *Service) OpenSlot(ctx context.Context, doctorID uuid.UUID, date, slot string) error {
	if doctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if !ValidDate(date) {
		return ErrInvalidDate
	}
	if !s.window.Contains(slot) {
		return fmt.Errorf("%w: %s", ErrInvalidSlot, slot)
	}
	return s.repo.Open(ctx, doctorID, date, slot)
}

// CloseSlot withdraws a slot. The booking check and the delete run in
// one transaction so a concurrent booking cannot slip between them.
// Closing a slot that was never open is a no-op; closing a booked slot
// fails with ErrSlotBooked.
func (s *Service) CloseSlot(ctx context.Context, doctorID uuid.UUID, date, slot string) error {
	if doctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if !ValidDate(date) {
		return ErrInvalidDate
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		// IsOpen takes the row lock, serializing against a booking in
		// flight on the same slot.
		open, err := s.repo.IsOpen(ctx, doctorID, date, slot)
		if err != nil {
			return err
		}
		if !open {
			return nil
		}
		booked, err := s.bookings.HasActiveBooking(ctx, doctorID, date, slot)
		if err != nil {
			return err
		}
		if booked {
			return fmt.Errorf("%w: %s on %s", ErrSlotBooked, slot, date)
		}
		return s.repo.Close(ctx, doctorID, date, slot)
	})
}

// ListDay returns the doctor's open slots for the day in start-time
// order.
func (s *Service) ListDay(ctx context.Context, doctorID uuid.UUID, date string) (*DayAvailability, error) {
	if !ValidDate(date) {
		return nil, ErrInvalidDate
	}
	slots, err := s.repo.ListDay(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.LastUpdated(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return timeslot.Compare(slots[i], slots[j]) < 0
	})
	return &DayAvailability{DoctorID: doctorID, Date: date, Slots: slots, UpdatedAt: updated}, nil
}

// IsOpen reports whether the slot is currently offered.
func (s *Service) IsOpen(ctx context.Context, doctorID uuid.UUID, date, slot string) (bool, error) {
	return s.repo.IsOpen(ctx, doctorID, date, slot)
}
