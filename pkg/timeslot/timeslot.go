// Package timeslot is the single chokepoint for parsing and comparing
// the time notations found on appointments and availability records:
// range strings ("09:00-09:15"), 12-hour times ("2:00 PM") and 24-hour
// times ("14:00"). No other package parses time strings.
package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTime is returned when a time string cannot be parsed in
// any supported notation.
var ErrMalformedTime = errors.New("malformed time")

const minutesPerDay = 24 * 60

// ToMinutes converts a time string to a minute-of-day in [0,1440).
// Range strings are anchored on their start component. Supported forms,
// tried in order: "H:MM-H:MM", "H:MM AM/PM", "HH:MM".
func ToMinutes(s string) (int, error) {
	return toMinutes(s, false)
}

// EndMinutes is like ToMinutes but anchors range strings on their end
// component. Used when deciding whether an appointment is already over.
func EndMinutes(s string) (int, error) {
	return toMinutes(s, true)
}

func toMinutes(s string, endAnchor bool) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrMalformedTime)
	}

	if start, end, ok := splitRange(s); ok {
		anchor := start
		if endAnchor {
			anchor = end
		}
		m, err := parseClock(anchor)
		if err != nil {
			return 0, fmt.Errorf("%w: range %q", ErrMalformedTime, s)
		}
		return m, nil
	}

	if m, ok := parse12Hour(s); ok {
		return m, nil
	}

	m, err := parseClock(s)
	if err != nil {
		return 0, err
	}
	return m, nil
}

// splitRange splits "H:MM-H:MM" into its components. Both sides must
// contain a colon so that a stray dash in garbage input does not get
// mistaken for a range.
func splitRange(s string) (start, end string, ok bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	start = strings.TrimSpace(parts[0])
	end = strings.TrimSpace(parts[1])
	if !strings.Contains(start, ":") || !strings.Contains(end, ":") {
		return "", "", false
	}
	return start, end, true
}

// parse12Hour parses "H:MM AM" / "H:MM PM". Hour 12 AM maps to 0,
// hour 12 PM stays 12, PM hours 1-11 add 12.
func parse12Hour(s string) (int, bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, false
	}
	meridiem := strings.ToUpper(fields[1])
	if meridiem != "AM" && meridiem != "PM" {
		return 0, false
	}

	hour, minute, err := splitClock(fields[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, false
	}

	if meridiem == "AM" && hour == 12 {
		hour = 0
	} else if meridiem == "PM" && hour != 12 {
		hour += 12
	}
	return hour*60 + minute, true
}

// parseClock parses a 24-hour "HH:MM" string.
func parseClock(s string) (int, error) {
	hour, minute, err := splitClock(s)
	if err != nil {
		return 0, err
	}
	if hour > 23 {
		return 0, fmt.Errorf("%w: hour out of range in %q", ErrMalformedTime, s)
	}
	return hour*60 + minute, nil
}

func splitClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: missing colon in %q", ErrMalformedTime, s)
	}
	hour, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 {
		return 0, 0, fmt.Errorf("%w: bad hour in %q", ErrMalformedTime, s)
	}
	minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: bad minute in %q", ErrMalformedTime, s)
	}
	return hour, minute, nil
}

// Compare orders two time strings by their start-anchored minute value,
// returning -1, 0 or 1. Unparsable input sorts as 00:00; this is a
// display fallback only, write paths must validate with ToMinutes
// first. When both values are ranges with equal start minutes the
// original strings are compared lexically so the order is
// deterministic; that tie-break carries no semantic meaning.
func Compare(a, b string) int {
	am, _ := ToMinutes(a)
	bm, _ := ToMinutes(b)
	switch {
	case am < bm:
		return -1
	case am > bm:
		return 1
	}
	if isRange(a) && isRange(b) && a != b {
		if a < b {
			return -1
		}
		return 1
	}
	return 0
}

func isRange(s string) bool {
	_, _, ok := splitRange(strings.TrimSpace(s))
	return ok
}

// FormatMinutes renders a minute-of-day as "HH:MM".
func FormatMinutes(m int) string {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
