package schedule

import "encoding/json"

// SplitMarker tags the halves of a visit that crosses midnight.
type SplitMarker int

const (
	SplitNone SplitMarker = iota
	SplitContinuesNextDay
	SplitContinuedFromPreviousDay
)

func (m SplitMarker) String() string {
	switch m {
	case SplitContinuesNextDay:
		return "continues-next-day"
	case SplitContinuedFromPreviousDay:
		return "continued-from-previous-day"
	default:
		return "none"
	}
}

func (m SplitMarker) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *SplitMarker) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "continues-next-day":
		*m = SplitContinuesNextDay
	case "continued-from-previous-day":
		*m = SplitContinuedFromPreviousDay
	default:
		*m = SplitNone
	}
	return nil
}

// Segment is one rectangle on a day row: a whole visit or one half of a
// visit that crosses midnight. Segments are derived on every layout and
// never stored.
type Segment struct {
	Booking MergedBooking `json:"booking"`

	StartMinutes    int `json:"start_minutes"`
	DurationMinutes int `json:"duration_minutes"`

	// StartTime and EndTime are what the block shows; the Original fields
	// keep the real clock of a split visit for tooltips.
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	OriginalStartTime string `json:"original_start_time,omitempty"`
	OriginalEndTime   string `json:"original_end_time,omitempty"`

	Split  SplitMarker `json:"split"`
	Status Status      `json:"status"`

	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

func (s Segment) EndMinutes() int {
	return s.StartMinutes + s.DurationMinutes
}

// Hours is what this segment accrues to its day: each carer on the visit
// counts separately.
func (s Segment) Hours() float64 {
	return float64(s.DurationMinutes) / 60 * float64(s.Booking.CarerCount())
}

// SplitForDay returns the segment a merged booking contributes to day, if
// any. A visit dated day renders whole, or as its first half when it crosses
// midnight. A crossing visit dated the day before renders its spill-over.
func SplitForDay(mb MergedBooking, day, previousDay string) (Segment, bool) {
	start, end := mb.Minutes()
	crossing := end < start

	base := Segment{
		Booking:   mb,
		StartTime: mb.StartTime,
		EndTime:   mb.EndTime,
		Status:    mb.Status,
	}

	switch {
	case mb.Date == day && !crossing:
		base.StartMinutes = start
		base.DurationMinutes = end - start
		return base, true

	case mb.Date == day && crossing:
		base.StartMinutes = start
		base.DurationMinutes = MinutesPerDay - start
		base.EndTime = "23:59"
		base.OriginalEndTime = mb.EndTime
		base.Split = SplitContinuesNextDay
		return base, true

	case mb.Date == previousDay && crossing && end > 0:
		base.StartMinutes = 0
		base.DurationMinutes = end
		base.StartTime = "00:00"
		base.OriginalStartTime = mb.StartTime
		base.Split = SplitContinuedFromPreviousDay
		return base, true
	}

	return Segment{}, false
}

// SegmentsForDay runs the same-day pass and then the lookback pass over the
// previous day's visits. Input order is kept within each pass.
func SegmentsForDay(merged []MergedBooking, day string) []Segment {
	previousDay, err := PreviousDay(day)
	if err != nil {
		return nil
	}

	var out []Segment
	for _, mb := range merged {
		if mb.Date != day {
			continue
		}
		if seg, ok := SplitForDay(mb, day, previousDay); ok {
			out = append(out, seg)
		}
	}
	for _, mb := range merged {
		if mb.Date != previousDay {
			continue
		}
		if seg, ok := SplitForDay(mb, day, previousDay); ok {
			out = append(out, seg)
		}
	}
	return out
}
