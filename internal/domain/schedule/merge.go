package schedule

import "strings"

// Carer is one member of a visit's care team. BookingID is the stored row
// that assigns this carer, so a client can address each row of a merged visit.
type Carer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BookingID string `json:"booking_id"`
}

// MergedBooking is the display unit for one visit: the first record of its
// group with every assigned carer folded in.
type MergedBooking struct {
	Booking
	Carers []Carer `json:"carers"`
}

// CarerCount is the number of distinct carers on the visit, never less than
// one. Rows with no carer are open positions and each counts on its own.
func (m MergedBooking) CarerCount() int {
	seen := make(map[string]bool, len(m.Carers))
	n := 0
	for _, c := range m.Carers {
		if c.ID == "" {
			n++
			continue
		}
		if !seen[c.ID] {
			seen[c.ID] = true
			n++
		}
	}
	return max(n, 1)
}

// BookingIDs lists every stored row behind the visit, in input order.
func (m MergedBooking) BookingIDs() []string {
	if len(m.Carers) == 0 {
		return []string{m.ID}
	}
	out := make([]string, 0, len(m.Carers))
	for _, c := range m.Carers {
		out = append(out, c.BookingID)
	}
	return out
}

// SameVisit reports whether two rows describe the same visit and so merge
// into one block.
func SameVisit(a, b Booking) bool {
	return mergeKey(a.Normalize()) == mergeKey(b.Normalize())
}

func mergeKey(b Booking) string {
	return b.ClientID + "|" + b.Date + "|" + b.StartTime + "|" + b.EndTime
}

// Merge groups bookings that share client, date, start and end into a single
// MergedBooking. Groups keep the order in which they first appear and carers
// keep input order.
func Merge(bookings []Booking) []MergedBooking {
	index := make(map[string]int, len(bookings))
	groups := make([][]Booking, 0, len(bookings))

	for _, b := range bookings {
		key := mergeKey(b)
		if i, ok := index[key]; ok {
			groups[i] = append(groups[i], b)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, []Booking{b})
	}

	out := make([]MergedBooking, 0, len(groups))
	for _, g := range groups {
		out = append(out, mergeGroup(g))
	}
	return out
}

func mergeGroup(group []Booking) MergedBooking {
	first := group[0]

	merged := MergedBooking{
		Booking: first,
		Carers:  make([]Carer, 0, len(group)),
	}

	names := make([]string, 0, len(group))
	maxLate := 0
	for _, b := range group {
		merged.Carers = append(merged.Carers, Carer{ID: b.CarerID, Name: b.CarerName, BookingID: b.ID})
		names = append(names, b.CarerName)

		if b.IsLateStart {
			merged.IsLateStart = true
		}
		if b.IsMissed {
			merged.IsMissed = true
		}
		if b.LateStartMinutes > maxLate {
			maxLate = b.LateStartMinutes
		}
	}

	merged.CarerName = strings.Join(names, ", ")
	merged.LateStartMinutes = maxLate
	if maxLate == 0 {
		merged.LateStartMinutes = first.LateStartMinutes
	}

	return merged
}
