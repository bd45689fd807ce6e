package schedule

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinutesPerDay = 24 * 60

	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	clockSecondsLayout = "15:04:05"
)

var (
	ErrInvalidClock = errors.New("time must be in HH:mm format")
	ErrInvalidDate  = errors.New("date must be in yyyy-MM-dd format")
)

// ParseClock converts "HH:mm" (or "HH:mm:ss", seconds dropped) into minutes
// since midnight.
func ParseClock(s string) (int, error) {
	layout := ClockLayout
	if len(s) == len(clockSecondsLayout) {
		layout = clockSecondsLayout
	}
	if len(s) != len(layout) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:mm", clamped to the day.
func FormatClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// PreviousDay returns the calendar day before a yyyy-MM-dd date.
func PreviousDay(day string) (string, error) {
	t, err := ParseDate(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(DateLayout), nil
}
