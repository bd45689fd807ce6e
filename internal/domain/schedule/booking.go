package schedule

import (
	"fmt"
	"strings"
)

// Booking is one visit row as it arrives from the store. Several rows may
// describe the same visit when more than one carer is assigned to it.
type Booking struct {
	ID         string `json:"id"`
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	CarerID    string `json:"carer_id"`
	CarerName  string `json:"carer_name"`

	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	Status Status `json:"status"`
	Notes  string `json:"notes,omitempty"`

	IsLateStart      bool `json:"is_late_start"`
	IsMissed         bool `json:"is_missed"`
	LateStartMinutes int  `json:"late_start_minutes"`
}

// Validate is the ingestion boundary of the layout pipeline: a booking that
// passes it always yields finite minute arithmetic downstream.
func (b Booking) Validate() error {
	if _, err := ParseDate(b.Date); err != nil {
		return fmt.Errorf("booking %s: %w", b.ID, err)
	}
	if _, err := ParseClock(b.StartTime); err != nil {
		return fmt.Errorf("booking %s start: %w", b.ID, err)
	}
	if _, err := ParseClock(b.EndTime); err != nil {
		return fmt.Errorf("booking %s end: %w", b.ID, err)
	}
	if _, err := ParseStatus(string(b.Status)); err != nil {
		return fmt.Errorf("booking %s: %w", b.ID, err)
	}
	return nil
}

// Normalize trims seconds off the clock fields so "09:00:00" and "09:00"
// group together.
func (b Booking) Normalize() Booking {
	b.StartTime = normalizeClock(b.StartTime)
	b.EndTime = normalizeClock(b.EndTime)
	b.Date = strings.TrimSpace(b.Date)
	return b
}

func normalizeClock(s string) string {
	m, err := ParseClock(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return FormatClock(m)
}

// Minutes returns start and end as minutes since midnight. Callers are
// expected to have run Validate first; invalid clocks read as zero.
func (b Booking) Minutes() (start, end int) {
	start, _ = ParseClock(b.StartTime)
	end, _ = ParseClock(b.EndTime)
	return start, end
}

// CrossesMidnight reports whether the visit ends on the following day.
func (b Booking) CrossesMidnight() bool {
	start, end := b.Minutes()
	return end < start
}

// ValidBookings splits input into bookings that can enter the pipeline and
// the errors for the ones that cannot.
func ValidBookings(in []Booking) ([]Booking, []error) {
	out := make([]Booking, 0, len(in))
	var errs []error
	for _, b := range in {
		b = b.Normalize()
		if err := b.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, b)
	}
	return out, errs
}
