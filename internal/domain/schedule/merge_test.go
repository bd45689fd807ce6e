package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visit(id, client, carer, date, start, end string) Booking {
	return Booking{
		ID:         id,
		ClientID:   client,
		ClientName: "Client " + client,
		CarerID:    carer,
		CarerName:  carer,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     StatusAssigned,
	}
}

func TestMergeGroupsCarersOnSameVisit(t *testing.T) {
	in := []Booking{
		visit("1", "c1", "A", "2025-03-10", "09:00", "10:00"),
		visit("2", "c1", "B", "2025-03-10", "09:00", "10:00"),
		visit("3", "c1", "C", "2025-03-10", "09:00", "10:00"),
	}

	out := Merge(in)
	require.Len(t, out, 1)

	mb := out[0]
	assert.Equal(t, "1", mb.ID)
	assert.Equal(t, "A, B, C", mb.CarerName)
	assert.Equal(t, 3, mb.CarerCount())
	assert.Equal(t, []Carer{
		{ID: "A", Name: "A", BookingID: "1"},
		{ID: "B", Name: "B", BookingID: "2"},
		{ID: "C", Name: "C", BookingID: "3"},
	}, mb.Carers)
	assert.Equal(t, []string{"1", "2", "3"}, mb.BookingIDs())
}

func TestMergeKeepsDistinctVisitsApart(t *testing.T) {
	in := []Booking{
		visit("1", "c1", "A", "2025-03-10", "09:00", "10:00"),
		visit("2", "c2", "B", "2025-03-10", "09:00", "10:00"),
		visit("3", "c1", "C", "2025-03-10", "09:00", "10:30"),
		visit("4", "c1", "D", "2025-03-11", "09:00", "10:00"),
		visit("5", "c1", "E", "2025-03-10", "09:00", "10:00"),
	}

	out := Merge(in)
	require.Len(t, out, 4)

	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "A, E", out[0].CarerName)
	assert.Equal(t, "2", out[1].ID)
	assert.Equal(t, "3", out[2].ID)
	assert.Equal(t, "4", out[3].ID)
}

func TestMergeFlags(t *testing.T) {
	a := visit("1", "c1", "A", "2025-03-10", "09:00", "10:00")
	b := visit("2", "c1", "B", "2025-03-10", "09:00", "10:00")
	b.IsLateStart = true
	b.LateStartMinutes = 12
	c := visit("3", "c1", "C", "2025-03-10", "09:00", "10:00")
	c.IsMissed = true
	c.LateStartMinutes = 5

	out := Merge([]Booking{a, b, c})
	require.Len(t, out, 1)
	assert.True(t, out[0].IsLateStart)
	assert.True(t, out[0].IsMissed)
	assert.Equal(t, 12, out[0].LateStartMinutes)
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge(nil))
}

func TestCarerCountDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1, MergedBooking{}.CarerCount())
}

func TestCarerCountIsDistinct(t *testing.T) {
	dup := visit("2", "c1", "A", "2025-03-10", "09:00", "10:00")
	out := Merge([]Booking{
		visit("1", "c1", "A", "2025-03-10", "09:00", "10:00"),
		dup,
		visit("3", "c1", "B", "2025-03-10", "09:00", "10:00"),
	})
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].CarerCount())

	open := visit("4", "c2", "", "2025-03-10", "09:00", "10:00")
	openToo := visit("5", "c2", "", "2025-03-10", "09:00", "10:00")
	out = Merge([]Booking{open, openToo})
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].CarerCount(), "each open position counts")
}

func TestDuplicateCarerRowsDoNotDoubleHours(t *testing.T) {
	cfg, err := NewConfig("daily", 60, "2025-03-10")
	require.NoError(t, err)

	grid := Layout(cfg, []RowInput{{
		ID:   "c1",
		Kind: RowClient,
		Bookings: []Booking{
			visit("1", "c1", "A", "2025-03-10", "09:00", "11:00"),
			visit("2", "c1", "A", "2025-03-10", "09:00", "11:00"),
		},
	}})

	assert.InDelta(t, 2.0, grid.Rows[0].TotalHours, 1e-9)
}

func TestSameVisit(t *testing.T) {
	a := visit("1", "c1", "A", "2025-03-10", "09:00:00", "10:00")
	assert.True(t, SameVisit(a, visit("2", "c1", "B", "2025-03-10", "09:00", "10:00:00")))
	assert.False(t, SameVisit(a, visit("3", "c1", "B", "2025-03-10", "09:00", "10:30")))
	assert.False(t, SameVisit(a, visit("4", "c2", "A", "2025-03-10", "09:00", "10:00")))
}

func TestValidBookingsNormalizesBeforeGrouping(t *testing.T) {
	a := visit("1", "c1", "A", "2025-03-10", "09:00:00", "10:00:00")
	b := visit("2", "c1", "B", "2025-03-10", "09:00", "10:00")
	bad := visit("3", "c1", "C", "2025-03-10", "nine", "10:00")
	badStatus := visit("4", "c1", "D", "2025-03-10", "09:00", "10:00")
	badStatus.Status = "pending"

	valid, errs := ValidBookings([]Booking{a, b, bad, badStatus})
	require.Len(t, valid, 2)
	assert.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], ErrInvalidClock)

	out := Merge(valid)
	require.Len(t, out, 1)
	assert.Equal(t, "09:00", out[0].StartTime)
	assert.Equal(t, 2, out[0].CarerCount())
}
