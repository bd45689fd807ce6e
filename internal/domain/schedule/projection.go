package schedule

import "time"

// SlotState is what occupies one time slot of a row.
type SlotState string

const (
	SlotAvailable   SlotState = "available"
	SlotScheduled   SlotState = "scheduled"
	SlotInProgress  SlotState = "in-progress"
	SlotDone        SlotState = "done"
	SlotCancelled   SlotState = "cancelled"
	SlotLeave       SlotState = "leave"
	SlotHoliday     SlotState = "holiday"
	SlotUnavailable SlotState = "unavailable"
)

func slotStateFor(s Status) SlotState {
	switch s {
	case StatusInProgress:
		return SlotInProgress
	case StatusDone:
		return SlotDone
	case StatusCancelled:
		return SlotCancelled
	default:
		return SlotScheduled
	}
}

// SlotStatus is the single state of a slot plus whatever put it there.
type SlotStatus struct {
	State     SlotState `json:"state"`
	BookingID string    `json:"booking_id,omitempty"`
	LeaveType string    `json:"leave_type,omitempty"`
	Holiday   string    `json:"holiday,omitempty"`
}

// SlotMap is keyed by slot label ("HH:MM"). Every slot of the interval has
// exactly one entry.
type SlotMap map[string]SlotStatus

// ===============================
// Priority policy
// ===============================

// Layer names one source of slot state.
type Layer string

const (
	LayerBooking  Layer = "booking"
	LayerLeave    Layer = "leave"
	LayerHoliday  Layer = "holiday"
	LayerOffShift Layer = "off-shift"
)

// Priority lists layers from strongest to weakest. Anything not covered by
// a layer stays available.
type Priority []Layer

// DefaultPriority: a booking shows over leave, leave over a holiday, and
// working hours only mark what nothing else claims.
var DefaultPriority = Priority{LayerBooking, LayerLeave, LayerHoliday, LayerOffShift}

// ===============================
// Leave / holiday / working hours
// ===============================

type Leave struct {
	StaffID   string `json:"staff_id"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

const LeaveApproved = "approved"

func (l Leave) Covers(day string) bool {
	return l.Status == LeaveApproved && l.StartDate <= day && day <= l.EndDate
}

type Holiday struct {
	Name      string   `json:"name"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Yearly    bool     `json:"yearly"`
	StaffIDs  []string `json:"staff_ids,omitempty"`
}

// AppliesTo reports whether the holiday covers staffID; an empty staff list
// means company-wide.
func (h Holiday) AppliesTo(staffID string) bool {
	if len(h.StaffIDs) == 0 {
		return true
	}
	for _, id := range h.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}

func (h Holiday) Covers(day string) bool {
	end := h.EndDate
	if end == "" {
		end = h.StartDate
	}
	if !h.Yearly {
		return h.StartDate <= day && day <= end
	}

	// yearly holidays compare on MM-DD; a range may wrap over new year
	d, s, e := monthDay(day), monthDay(h.StartDate), monthDay(end)
	if s <= e {
		return s <= d && d <= e
	}
	return d >= s || d <= e
}

func monthDay(date string) string {
	if len(date) < len(DateLayout) {
		return date
	}
	return date[5:]
}

// WorkingHours is a staff member's shift window for one day. EndTime at or
// before StartTime means the shift runs past midnight.
type WorkingHours struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (w WorkingHours) contains(slotStart int) bool {
	start, err := ParseClock(w.StartTime)
	if err != nil {
		return true
	}
	end, err := ParseClock(w.EndTime)
	if err != nil {
		return true
	}
	if start < end {
		return slotStart >= start && slotStart < end
	}
	return slotStart >= start || slotStart < end
}

// ===============================
// Projection
// ===============================

// SlotOverlaps is the half-open overlap test between a slot and a segment.
func SlotOverlaps(slotStart int, iv Interval, seg Segment) bool {
	slotEnd := slotStart + iv.Minutes()
	return seg.StartMinutes < slotEnd && seg.EndMinutes() > slotStart
}

// ProjectionInput is everything that can claim a slot of one row on one day.
type ProjectionInput struct {
	Day          string
	StaffID      string
	Segments     []Segment
	Leaves       []Leave
	Holidays     []Holiday
	WorkingHours *WorkingHours
}

// Project folds every layer into a fresh SlotMap, weakest layer first, so a
// stronger layer always overwrites a weaker one. Inside the booking layer the
// later segment wins.
func Project(iv Interval, prio Priority, in ProjectionInput) SlotMap {
	slots := make(SlotMap, iv.SlotCount())
	for m := 0; m < MinutesPerDay; m += iv.Minutes() {
		slots[FormatClock(m)] = SlotStatus{State: SlotAvailable}
	}

	for i := len(prio) - 1; i >= 0; i-- {
		switch prio[i] {
		case LayerOffShift:
			applyOffShift(slots, iv, in.WorkingHours)
		case LayerHoliday:
			applyHolidays(slots, in)
		case LayerLeave:
			applyLeaves(slots, in)
		case LayerBooking:
			applySegments(slots, iv, in.Segments)
		}
	}

	return slots
}

func applyOffShift(slots SlotMap, iv Interval, wh *WorkingHours) {
	if wh == nil {
		return
	}
	for m := 0; m < MinutesPerDay; m += iv.Minutes() {
		if !wh.contains(m) {
			slots[FormatClock(m)] = SlotStatus{State: SlotUnavailable}
		}
	}
}

func applyHolidays(slots SlotMap, in ProjectionInput) {
	for _, h := range in.Holidays {
		if !h.Covers(in.Day) || !h.AppliesTo(in.StaffID) {
			continue
		}
		fill(slots, SlotStatus{State: SlotHoliday, Holiday: h.Name})
	}
}

func applyLeaves(slots SlotMap, in ProjectionInput) {
	for _, l := range in.Leaves {
		if l.StaffID != in.StaffID || !l.Covers(in.Day) {
			continue
		}
		fill(slots, SlotStatus{State: SlotLeave, LeaveType: l.Type})
	}
}

func applySegments(slots SlotMap, iv Interval, segs []Segment) {
	for _, seg := range segs {
		for m := 0; m < MinutesPerDay; m += iv.Minutes() {
			if SlotOverlaps(m, iv, seg) {
				slots[FormatClock(m)] = SlotStatus{
					State:     slotStateFor(seg.Status),
					BookingID: seg.Booking.ID,
				}
			}
		}
	}
}

func fill(slots SlotMap, st SlotStatus) {
	for k := range slots {
		slots[k] = st
	}
}

// weekday returns the day of week of a yyyy-MM-dd date.
func weekday(day string) (time.Weekday, error) {
	t, err := ParseDate(day)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}
