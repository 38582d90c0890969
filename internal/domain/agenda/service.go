package agenda

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/appointment"
	"github.com/clinicore/clinicore/internal/domain/availability"
	"github.com/clinicore/clinicore/internal/platform/clock"
	"github.com/clinicore/clinicore/pkg/timeslot"
)

// AvailabilityLister yields a doctor's open slots for a day. Satisfied
// by the availability service.
type AvailabilityLister interface {
	ListDay(ctx context.Context, doctorID uuid.UUID, date string) (*availability.DayAvailability, error)
}

// BookingLister yields a doctor's live bookings for a day keyed by
// slot. Satisfied by the appointment service.
type BookingLister interface {
	ActiveForDay(ctx context.Context, doctorID uuid.UUID, date string) (map[string]*appointment.Appointment, error)
}

type Service struct {
	avail     AvailabilityLister
	bookings  BookingLister
	dashboard timeslot.Window
	booking   timeslot.Window
	clk       clock.Clock
}

func NewService(avail AvailabilityLister, bookings BookingLister, dashboard, booking timeslot.Window, clk clock.Clock) *Service {
	return &Service{avail: avail, bookings: bookings, dashboard: dashboard, booking: booking, clk: clk}
}

// Day resolves every slot of the chosen grid to exactly one state. A
// live booking wins over the open set, so a slot can never show as
// both booked and available. bookingView selects the shorter grid
// patients book against; the default grid is the doctor's dashboard.
func (s *Service) Day(ctx context.Context, doctorID uuid.UUID, date string, bookingView bool) (*Day, error) {
	if !availability.ValidDate(date) {
		return nil, availability.ErrInvalidDate
	}

	window := s.dashboard
	if bookingView {
		window = s.booking
	}

	open, err := s.avail.ListDay(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	openSet := make(map[string]bool, len(open.Slots))
	for _, sl := range open.Slots {
		openSet[sl] = true
	}

	booked, err := s.bookings.ActiveForDay(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	grid := window.Generate()
	entries := make([]Entry, 0, len(grid))
	for _, sl := range grid {
		id := sl.ID()
		e := Entry{
			TimeSlot:   id,
			State:      StateUnoffered,
			TimeStatus: timeStatus(date, id, now),
		}
		if a, ok := booked[id]; ok {
			e.State = StateBooked
			apptID, patientID := a.ID, a.PatientID
			e.AppointmentID = &apptID
			e.PatientID = &patientID
		} else if openSet[id] {
			e.State = StateAvailable
		}
		entries = append(entries, e)
	}

	return &Day{DoctorID: doctorID, Date: date, Slots: entries}, nil
}

func timeStatus(date, slot string, now time.Time) string {
	a := appointment.Appointment{Date: date, TimeSlot: slot}
	return a.TimeStatusAt(now)
}
