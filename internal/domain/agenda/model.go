// Package agenda reconciles a doctor's day: it folds the open slot set
// and the booking ledger over the slot grid so every grid slot lands in
// exactly one of three states.
package agenda

import (
	"github.com/google/uuid"
)

const (
	StateBooked    = "booked"
	StateAvailable = "available"
	StateUnoffered = "unoffered"
)

// Entry is one grid slot with its resolved state. PatientID and
// AppointmentID are set only when the slot is booked.
type Entry struct {
	TimeSlot      string     `json:"time_slot"`
	State         string     `json:"state"`
	TimeStatus    string     `json:"time_status"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	PatientID     *uuid.UUID `json:"patient_id,omitempty"`
}

// Day is a doctor's reconciled schedule for one date.
type Day struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Slots    []Entry   `json:"slots"`
}
