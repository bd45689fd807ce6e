package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
)

func TestUpdateBookingStatus(t *testing.T) {
	repo := newGridRepo()
	rec := &memoryRecorder{}
	d := audit.NewDispatcher(rec)
	uc := NewUpdateBookingStatus(repo, nil, d)

	b, err := uc.Execute(context.Background(), 1, 7, "b1", domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, "in-progress", b.Status)
	assert.Equal(t, "in-progress", repo.bookings[0].Status)

	d.Close()
	require.Len(t, rec.events, 1)
	assert.Equal(t, "booking_status_changed", rec.events[0].Action)
	assert.Equal(t, map[string]string{"from": "assigned", "to": "in-progress"}, rec.events[0].Metadata)
}

func TestUpdateBookingStatusRejections(t *testing.T) {
	repo := newGridRepo()
	repo.bookings[1].Status = "cancelled"
	d := audit.NewDispatcher(&memoryRecorder{})
	defer d.Close()
	uc := NewUpdateBookingStatus(repo, nil, d)

	_, err := uc.Execute(context.Background(), 1, 7, "b1", domain.StatusAssigned)
	assert.Equal(t, "status_unchanged", httperr.CodeOf(err))

	_, err = uc.Execute(context.Background(), 1, 7, "b2", domain.StatusAssigned)
	assert.Equal(t, "invalid_state", httperr.CodeOf(err))

	_, err = uc.Execute(context.Background(), 1, 7, "missing", domain.StatusDone)
	assert.Equal(t, "booking_not_found", httperr.CodeOf(err))
}

func TestStatusChangeInvalidatesCachedGrids(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	gridCache := cache.NewGridCache(client, time.Minute)

	repo := newGridRepo()
	d := audit.NewDispatcher(&memoryRecorder{})
	defer d.Close()

	build := NewBuildGrid(repo, gridCache, testSettings)
	update := NewUpdateBookingStatus(repo, gridCache, d)
	in := GridInput{BranchID: 1, Rows: domain.RowStaff, View: "daily", Date: "2025-03-10"}

	before, err := build.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotScheduled, before.Rows[0].Days[0].Slots["23:00"].State)

	_, err = update.Execute(context.Background(), 1, 7, "b1", domain.StatusDone)
	require.NoError(t, err)

	after, err := build.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listBookingsCalls)
	assert.Equal(t, domain.SlotDone, after.Rows[0].Days[0].Slots["23:00"].State)
}
