// Package availability manages the set of bookable slots a doctor has
// opened per calendar day.
package availability

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidSlot = errors.New("slot outside booking window")
	ErrSlotBooked  = errors.New("slot has an active booking")
)

// DayAvailability is the full set of open slots for one doctor on one
// day. Slots are "HH:MM-HH:MM" identifiers sorted by start time.
// UpdatedAt is the zero time for a day that has never been touched.
type DayAvailability struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	Slots     []string  `json:"slots"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidDate reports whether s is a well-formed calendar day.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
