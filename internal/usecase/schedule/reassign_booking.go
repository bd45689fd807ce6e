package schedule

import (
	"context"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/logger"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// ReassignInput is a drag-and-drop move on the grid. Empty fields keep the
// booking's current value; CarerID "unassigned" clears the carer.
type ReassignInput struct {
	BranchID  uint
	UserID    uint
	BookingID string

	CarerID   string
	Date      string
	StartTime string
	EndTime   string
}

// ======================================================
// USE CASE
// ======================================================

type ReassignBooking struct {
	repo  domain.Repository
	cache *cache.GridCache
	audit *audit.Dispatcher
}

func NewReassignBooking(
	repo domain.Repository,
	gridCache *cache.GridCache,
	audit *audit.Dispatcher,
) *ReassignBooking {
	return &ReassignBooking{
		repo:  repo,
		cache: gridCache,
		audit: audit,
	}
}

// Execute moves the whole visit the booking belongs to. Date and time changes
// apply to every carer on the visit so it stays one block on the grid; a
// carer change applies to the dragged row only. The dragged row comes first
// in the result.
func (uc *ReassignBooking) Execute(
	ctx context.Context,
	in ReassignInput,
) ([]models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, in.BranchID, in.BookingID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanReassign(domain.Status(b.Status)); err != nil {
		return nil, err
	}

	siblings, err := uc.repo.ListVisitBookings(ctx, in.BranchID, b)
	if err != nil {
		return nil, err
	}

	rows := []models.Booking{*b}
	for _, s := range siblings {
		if s.ID == b.ID || domain.Status(s.Status) == domain.StatusCancelled {
			continue
		}
		if err := domain.CanReassign(domain.Status(s.Status)); err != nil {
			return nil, err
		}
		rows = append(rows, s)
	}

	before := domain.BookingFromModel(*b)

	// --------------------------------------------------
	// Carer change (dragged row only)
	// --------------------------------------------------
	dragged := &rows[0]
	switch in.CarerID {
	case "":
	case UnassignedRowID:
		dragged.StaffID = nil
		dragged.Staff = nil
		dragged.Status = string(domain.StatusUnassigned)
	default:
		if _, err := uc.repo.GetStaff(ctx, in.BranchID, in.CarerID); err != nil {
			return nil, err
		}
		carerID := in.CarerID
		dragged.StaffID = &carerID
		dragged.Staff = nil
		if domain.Status(dragged.Status) == domain.StatusUnassigned {
			dragged.Status = string(domain.StatusAssigned)
		}
	}

	// --------------------------------------------------
	// Time move (every row of the visit)
	// --------------------------------------------------
	for i := range rows {
		if in.Date != "" {
			rows[i].Date = in.Date
		}
		if in.StartTime != "" {
			rows[i].StartTime = in.StartTime
		}
		if in.EndTime != "" {
			rows[i].EndTime = in.EndTime
		}

		// Same boundary as the grid.
		moved := domain.BookingFromModel(rows[i]).Normalize()
		if err := moved.Validate(); err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}
		rows[i].Date, rows[i].StartTime, rows[i].EndTime = moved.Date, moved.StartTime, moved.EndTime
	}

	if err := uc.repo.SaveVisit(ctx, in.BranchID, rows); err != nil {
		if httperr.IsForeignKeyViolation(err) {
			return nil, httperr.ErrBusiness("staff_not_found")
		}
		return nil, err
	}

	if err := uc.cache.InvalidateBranch(ctx, in.BranchID); err != nil {
		logger.Warn("grid cache invalidation failed", "branch", in.BranchID, "err", err)
	}

	after := domain.BookingFromModel(rows[0])
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: in.BranchID,
		UserID:   &in.UserID,
		Action:   audit.ActionBookingReassigned,
		Entity:   audit.EntityBooking,
		EntityID: b.ID,
		Metadata: map[string]any{
			"booking_ids": ids,
			"from": map[string]string{
				"carer_id": before.CarerID,
				"date":     before.Date,
				"start":    before.StartTime,
				"end":      before.EndTime,
			},
			"to": map[string]string{
				"carer_id": after.CarerID,
				"date":     after.Date,
				"start":    after.StartTime,
				"end":      after.EndTime,
			},
		},
	})

	return rows, nil
}
