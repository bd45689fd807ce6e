package schedule

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidInterval = errors.New("time interval must be 30 or 60 minutes")

// Interval is the width of one grid column in daily view.
type Interval int

const (
	Interval30 Interval = 30
	Interval60 Interval = 60
)

// ParseInterval is the only way an Interval should enter the pipeline.
// Zero and any other granularity are rejected here so the geometry code never
// divides by an unexpected value.
func ParseInterval(minutes int) (Interval, error) {
	switch Interval(minutes) {
	case Interval30, Interval60:
		return Interval(minutes), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidInterval, minutes)
}

func (iv Interval) Minutes() int {
	return int(iv)
}

func (iv Interval) SlotCount() int {
	return MinutesPerDay / int(iv)
}

// Slots returns the ordered time-of-day labels covering a whole day.
func (iv Interval) Slots() []string {
	out := make([]string, 0, iv.SlotCount())
	for m := 0; m < MinutesPerDay; m += int(iv) {
		out = append(out, FormatClock(m))
	}
	return out
}

// DayColumn is one day column of a weekly or monthly grid.
type DayColumn struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

func newDayColumn(t time.Time) DayColumn {
	return DayColumn{
		Date:  t.Format(DateLayout),
		Label: t.Format("Mon"),
	}
}

// WeekColumns returns the Monday..Sunday columns of the ISO week containing date.
func WeekColumns(date time.Time) []DayColumn {
	monday := weekStart(date)

	out := make([]DayColumn, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, newDayColumn(monday.AddDate(0, 0, i)))
	}
	return out
}

// MonthColumns returns one column per day of the month containing date.
func MonthColumns(date time.Time) []DayColumn {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	next := first.AddDate(0, 1, 0)

	var out []DayColumn
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		out = append(out, newDayColumn(d))
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func weekStart(t time.Time) time.Time {
	t = truncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the ISO week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}
