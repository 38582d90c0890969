package appointment

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists the appointment ledger. Rows are appended and
// their status updated, never deleted.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	// AllByDoctor returns the doctor's entire ledger, oldest first.
	AllByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	// ListActiveByDoctorDate returns the non-cancelled appointments
	// for one doctor and day.
	ListActiveByDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*Appointment, error)
	// HasActive reports whether a non-cancelled appointment occupies
	// the slot.
	HasActive(ctx context.Context, doctorID uuid.UUID, date, slot string) (bool, error)
	// HasActivePatientDay reports whether the patient already holds a
	// non-cancelled appointment with the doctor on the day.
	HasActivePatientDay(ctx context.Context, patientID, doctorID uuid.UUID, date string) (bool, error)
}
