package schedule

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidView = errors.New("view must be daily, weekly or monthly")

type ViewType string

const (
	ViewDaily   ViewType = "daily"
	ViewWeekly  ViewType = "weekly"
	ViewMonthly ViewType = "monthly"
)

func ParseViewType(s string) (ViewType, error) {
	switch v := ViewType(s); v {
	case ViewDaily, ViewWeekly, ViewMonthly:
		return v, nil
	case "":
		return ViewDaily, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidView, s)
}

// RowKind says whether a grid row is a staff member or a client.
type RowKind string

const (
	RowStaff  RowKind = "staff"
	RowClient RowKind = "client"
)

// Config is the full, immutable input of a layout besides the data itself.
// Build it with NewConfig; the zero value is not usable.
type Config struct {
	View          ViewType
	Interval      Interval
	Date          time.Time
	SlotWidth     float64
	MinBlockWidth float64
	Priority      Priority
}

func NewConfig(view string, interval int, date string) (Config, error) {
	v, err := ParseViewType(view)
	if err != nil {
		return Config{}, err
	}
	iv, err := ParseInterval(interval)
	if err != nil {
		return Config{}, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return Config{}, err
	}

	return Config{
		View:          v,
		Interval:      iv,
		Date:          d,
		SlotWidth:     DefaultSlotWidth,
		MinBlockWidth: DefaultMinBlockWidth,
		Priority:      DefaultPriority,
	}, nil
}

// WithGeometry returns a copy of cfg with different pixel settings.
func (c Config) WithGeometry(slotWidth, minBlockWidth float64) Config {
	if slotWidth > 0 {
		c.SlotWidth = slotWidth
	}
	if minBlockWidth >= 0 {
		c.MinBlockWidth = minBlockWidth
	}
	return c
}

// Days returns the day columns covered by the view.
func (c Config) Days() []DayColumn {
	switch c.View {
	case ViewWeekly:
		return WeekColumns(c.Date)
	case ViewMonthly:
		return MonthColumns(c.Date)
	default:
		return []DayColumn{newDayColumn(c.Date)}
	}
}

// FetchRange is the inclusive date range whose bookings a layout needs: the
// visible days plus the day before the first one, for midnight spill-over.
func (c Config) FetchRange() (from, to string) {
	days := c.Days()
	first, _ := ParseDate(days[0].Date)
	return first.AddDate(0, 0, -1).Format(DateLayout), days[len(days)-1].Date
}

// ===============================
// Output
// ===============================

type DayLayout struct {
	Date     string    `json:"date"`
	Segments []Segment `json:"segments"`
	Slots    SlotMap   `json:"slots"`
	Hours    float64   `json:"hours"`
}

type RowLayout struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Kind       RowKind     `json:"kind"`
	Days       []DayLayout `json:"days"`
	TotalHours float64     `json:"total_hours"`
}

type Grid struct {
	View     ViewType    `json:"view"`
	Interval Interval    `json:"interval"`
	Date     string      `json:"date"`
	Slots    []string    `json:"slots"`
	Days     []DayColumn `json:"days"`
	Rows     []RowLayout `json:"rows"`
}

// RowInput is one row's already-fetched data. Bookings must cover the
// config's FetchRange and should already have passed Validate.
type RowInput struct {
	ID       string
	Name     string
	Kind     RowKind
	Bookings []Booking
	Leaves   []Leave
	Holidays []Holiday

	// WorkingHours by weekday; staff rows only. A missing weekday means no
	// off-shift marking for that day.
	WorkingHours map[time.Weekday]WorkingHours
}

// Layout runs the whole pipeline for every row. It has no side effects and
// returns the same grid for the same input.
func Layout(cfg Config, rows []RowInput) Grid {
	grid := Grid{
		View:     cfg.View,
		Interval: cfg.Interval,
		Date:     cfg.Date.Format(DateLayout),
		Slots:    cfg.Interval.Slots(),
		Days:     cfg.Days(),
		Rows:     make([]RowLayout, 0, len(rows)),
	}

	for _, row := range rows {
		grid.Rows = append(grid.Rows, BuildRow(cfg, row))
	}
	return grid
}

// BuildRow lays out a single row over the config's days.
func BuildRow(cfg Config, row RowInput) RowLayout {
	merged := Merge(row.Bookings)

	out := RowLayout{
		ID:   row.ID,
		Name: row.Name,
		Kind: row.Kind,
	}

	for _, col := range cfg.Days() {
		day := buildDay(cfg, row, merged, col.Date)
		out.TotalHours += day.Hours
		out.Days = append(out.Days, day)
	}
	return out
}

func buildDay(cfg Config, row RowInput, merged []MergedBooking, day string) DayLayout {
	segs := SegmentsForDay(merged, day)

	hours := 0.0
	for i := range segs {
		left, width := Position(segs[i].StartMinutes, segs[i].DurationMinutes, cfg.Interval, cfg.SlotWidth)
		segs[i].Left = left
		segs[i].Width = ApplyMinWidth(width, cfg.MinBlockWidth)
		hours += segs[i].Hours()
	}

	in := ProjectionInput{
		Day:      day,
		Segments: segs,
	}
	if row.Kind == RowStaff {
		in.StaffID = row.ID
		in.Leaves = row.Leaves
		in.Holidays = row.Holidays
		if wd, err := weekday(day); err == nil {
			if wh, ok := row.WorkingHours[wd]; ok {
				in.WorkingHours = &wh
			}
		}
	}

	prio := cfg.Priority
	if len(prio) == 0 {
		prio = DefaultPriority
	}

	if segs == nil {
		segs = []Segment{}
	}

	return DayLayout{
		Date:     day,
		Segments: segs,
		Slots:    Project(cfg.Interval, prio, in),
		Hours:    hours,
	}
}
