package appointment

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/availability"
	"github.com/clinicore/clinicore/internal/platform/clock"
	"github.com/clinicore/clinicore/internal/platform/db"
	"github.com/clinicore/clinicore/pkg/timeslot"
)

// SlotChecker answers whether a doctor currently offers a slot.
// Satisfied by the availability repository. IsOpen must lock the slot
// row when called inside a transaction.
type SlotChecker interface {
	IsOpen(ctx context.Context, doctorID uuid.UUID, date, slot string) (bool, error)
}

type Service struct {
	repo  Repository
	slots SlotChecker
	clk   clock.Clock
	fee   int64
	runTx db.TxRunner
}

func NewService(repo Repository, slots SlotChecker, clk clock.Clock, fee int64, runTx db.TxRunner) *Service {
	return &Service{repo: repo, slots: slots, clk: clk, fee: fee, runTx: runTx}
}

// Record appends a booking to the ledger. The slot must be open, the
// date must not be in the past, and neither the slot nor the patient's
// day with this doctor may already carry an active booking. The checks
// and the insert run in one transaction; the slot-open check locks the
// slot row so two concurrent bookings of the same slot serialize and
// the loser hits the ledger's uniqueness guarantee.
func (s *Service) Record(ctx context.Context, a *Appointment) error {
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !availability.ValidDate(a.Date) {
		return availability.ErrInvalidDate
	}
	if _, err := timeslot.ToMinutes(a.TimeSlot); err != nil {
		return fmt.Errorf("%w: %s", timeslot.ErrMalformedTime, a.TimeSlot)
	}

	now := s.clk.Now()
	if a.Date < clock.Today(s.clk) {
		return ErrPastDate
	}
	if a.EndedBy(now) {
		return ErrPastDate
	}

	a.Status = StatusPending
	a.Fee = s.fee

	return s.runTx(ctx, func(ctx context.Context) error {
		open, err := s.slots.IsOpen(ctx, a.DoctorID, a.Date, a.TimeSlot)
		if err != nil {
			return err
		}
		if !open {
			return fmt.Errorf("%w: %s on %s", ErrSlotNotOpen, a.TimeSlot, a.Date)
		}
		taken, err := s.repo.HasActive(ctx, a.DoctorID, a.Date, a.TimeSlot)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateBooking
		}
		dup, err := s.repo.HasActivePatientDay(ctx, a.PatientID, a.DoctorID, a.Date)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicatePatientDay
		}
		return s.repo.Create(ctx, a)
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// Confirm moves a pending appointment to confirmed.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusConfirmed, StatusPending)
}

// Complete closes out a pending or confirmed appointment.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusCompleted, StatusPending, StatusConfirmed)
}

// Cancel releases the slot by flipping the status; the ledger row
// stays. Cancelling twice is a no-op.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.runTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if a.Status == StatusCancelled {
			return nil
		}
		if a.Status == StatusCompleted {
			return fmt.Errorf("%w: completed appointment cannot be cancelled", ErrInvalidTransition)
		}
		return s.repo.UpdateStatus(ctx, id, StatusCancelled)
	})
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to string, from ...string) error {
	return s.runTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		for _, f := range from {
			if a.Status == f {
				return s.repo.UpdateStatus(ctx, id, to)
			}
		}
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	})
}

// ListForDoctor returns the doctor's ledger in chronological order,
// each entry tagged past or upcoming.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*View, int, error) {
	items, total, err := s.repo.ListByDoctor(ctx, doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return s.views(items), total, nil
}

// ListForPatient returns the patient's ledger in chronological order,
// each entry tagged past or upcoming.
func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*View, int, error) {
	items, total, err := s.repo.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return s.views(items), total, nil
}

// AllForDoctor returns the doctor's entire ledger, oldest first.
// Earnings rollups fold over this.
func (s *Service) AllForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error) {
	return s.repo.AllByDoctor(ctx, doctorID)
}

// ActiveForDay returns the live bookings for one doctor and day keyed
// by slot id.
func (s *Service) ActiveForDay(ctx context.Context, doctorID uuid.UUID, date string) (map[string]*Appointment, error) {
	items, err := s.repo.ListActiveByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	bySlot := make(map[string]*Appointment, len(items))
	for _, a := range items {
		bySlot[a.TimeSlot] = a
	}
	return bySlot, nil
}

// HasActiveBooking implements availability.BookingChecker.
func (s *Service) HasActiveBooking(ctx context.Context, doctorID uuid.UUID, date, slot string) (bool, error) {
	return s.repo.HasActive(ctx, doctorID, date, slot)
}

func (s *Service) views(items []*Appointment) []*View {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return timeslot.Compare(items[i].TimeSlot, items[j].TimeSlot) < 0
	})
	now := s.clk.Now()
	views := make([]*View, len(items))
	for i, a := range items {
		views[i] = &View{Appointment: a, TimeStatus: a.TimeStatusAt(now)}
	}
	return views
}
