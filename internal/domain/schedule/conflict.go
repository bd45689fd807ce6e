package schedule

import (
	"time"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
)

// Span returns the absolute start and end of the visit; a visit crossing
// midnight ends on the following calendar day.
func (b Booking) Span() (start, end time.Time, err error) {
	day, err := ParseDate(b.Date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	s, err := ParseClock(b.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := ParseClock(b.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if e < s {
		e += MinutesPerDay
	}

	start = day.Add(time.Duration(s) * time.Minute)
	end = day.Add(time.Duration(e) * time.Minute)
	return start, end, nil
}

// Overlaps reports whether two visits share any minute.
func (b Booking) Overlaps(other Booking) bool {
	s1, e1, err := b.Span()
	if err != nil {
		return false
	}
	s2, e2, err := other.Span()
	if err != nil {
		return false
	}
	return s1.Before(e2) && e1.After(s2)
}

// AssertNoOverlap returns a time_conflict business error when candidate
// overlaps any existing visit that is still live.
func AssertNoOverlap(candidate Booking, existing []Booking) error {
	for _, b := range existing {
		if b.ID == candidate.ID || b.Status == StatusCancelled {
			continue
		}
		if candidate.Overlaps(b) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

// AssertVisitFree checks a whole visit before it is saved. Every carer on the
// visit must be free in existing, and no carer may appear on two rows of the
// same visit. Rows of the visit found in existing are ignored.
func AssertVisitFree(visit []Booking, existing []Booking) error {
	inVisit := make(map[string]bool, len(visit))
	for _, b := range visit {
		inVisit[b.ID] = true
	}

	others := make([]Booking, 0, len(existing))
	for _, b := range existing {
		if !inVisit[b.ID] {
			others = append(others, b)
		}
	}

	carers := make(map[string]string, len(visit))
	for _, b := range visit {
		if b.CarerID == "" || b.Status == StatusCancelled {
			continue
		}
		if id, ok := carers[b.CarerID]; ok && id != b.ID {
			return httperr.ErrBusiness("time_conflict")
		}
		carers[b.CarerID] = b.ID

		for _, o := range others {
			if o.CarerID != b.CarerID {
				continue
			}
			if err := AssertNoOverlap(b, []Booking{o}); err != nil {
				return err
			}
		}
	}
	return nil
}
