// Package appointment is the booking ledger. Appointments are only
// ever appended; cancellation is a status change, never a delete, so
// the ledger stays a full history of everything that was booked.
package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/pkg/timeslot"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var (
	ErrNotFound            = errors.New("appointment not found")
	ErrPastDate            = errors.New("date is in the past")
	ErrSlotNotOpen         = errors.New("slot is not open for booking")
	ErrDuplicateBooking    = errors.New("slot already booked")
	ErrDuplicatePatientDay = errors.New("patient already has a booking with this doctor that day")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

type Appointment struct {
	ID               uuid.UUID `json:"id"`
	DoctorID         uuid.UUID `json:"doctor_id"`
	PatientID        uuid.UUID `json:"patient_id"`
	Date             string    `json:"date"`
	TimeSlot         string    `json:"time_slot"`
	ConsultationType string    `json:"consultation_type,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	Status           string    `json:"status"`
	Fee              int64     `json:"fee"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Active reports whether the appointment still occupies its slot.
func (a *Appointment) Active() bool {
	return a.Status != StatusCancelled
}

// EndedBy reports whether the appointment's slot has fully elapsed at
// the given moment. A slot ending exactly now counts as ended; one
// starting now does not.
func (a *Appointment) EndedBy(now time.Time) bool {
	today := now.Format("2006-01-02")
	if a.Date != today {
		return a.Date < today
	}
	end, err := timeslot.EndMinutes(a.TimeSlot)
	if err != nil {
		return false
	}
	return end <= now.Hour()*60+now.Minute()
}

// TimeStatusAt returns "past" or "upcoming" for display purposes.
func (a *Appointment) TimeStatusAt(now time.Time) string {
	if a.EndedBy(now) {
		return "past"
	}
	return "upcoming"
}

// View is an appointment annotated with its position relative to now.
type View struct {
	*Appointment
	TimeStatus string `json:"time_status"`
}
