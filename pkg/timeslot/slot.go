package timeslot

import "fmt"

// Slot is one fixed-width bookable time range within a working day.
// Its identity is the "HH:MM-HH:MM" string; nothing else is persisted
// about a slot.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ID returns the canonical range string that identifies the slot.
func (s Slot) ID() string {
	return s.Start + "-" + s.End
}

// Window describes a daily slot grid: the open and close bounds as
// minutes-of-day and the slot width in minutes.
type Window struct {
	StartMinutes int
	EndMinutes   int
	Granularity  int
}

// WindowBetween builds a Window from "HH:MM" bounds.
func WindowBetween(start, end string, granularityMinutes int) (Window, error) {
	s, err := parseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := parseClock(end)
	if err != nil {
		return Window{}, err
	}
	if granularityMinutes <= 0 {
		return Window{}, fmt.Errorf("granularity must be positive, got %d", granularityMinutes)
	}
	if e <= s {
		return Window{}, fmt.Errorf("window end %s not after start %s", end, start)
	}
	return Window{StartMinutes: s, EndMinutes: e, Granularity: granularityMinutes}, nil
}

// Generate produces the ordered slot grid for the window. A slot is
// emitted only if it fits entirely before the end bound. Pure and
// deterministic.
func (w Window) Generate() []Slot {
	var slots []Slot
	for m := w.StartMinutes; m+w.Granularity <= w.EndMinutes; m += w.Granularity {
		slots = append(slots, Slot{
			Start: FormatMinutes(m),
			End:   FormatMinutes(m + w.Granularity),
		})
	}
	return slots
}

// Contains reports whether id is a member of the window's canonical
// slot grid.
func (w Window) Contains(id string) bool {
	start, end, ok := splitRange(id)
	if !ok {
		return false
	}
	s, err := parseClock(start)
	if err != nil {
		return false
	}
	e, err := parseClock(end)
	if err != nil {
		return false
	}
	if e-s != w.Granularity {
		return false
	}
	if s < w.StartMinutes || e > w.EndMinutes {
		return false
	}
	return (s-w.StartMinutes)%w.Granularity == 0
}
