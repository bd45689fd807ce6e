package schedule

import (
	"context"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/logger"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type UpdateBookingStatus struct {
	repo  domain.Repository
	cache *cache.GridCache
	audit *audit.Dispatcher
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	gridCache *cache.GridCache,
	audit *audit.Dispatcher,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:  repo,
		cache: gridCache,
		audit: audit,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	branchID uint,
	userID uint,
	bookingID string,
	next domain.Status,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, branchID, bookingID)
	if err != nil {
		return nil, err
	}

	previous := domain.Status(b.Status)
	if err := domain.CanTransition(previous, next); err != nil {
		return nil, err
	}

	b.Status = string(next)
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	if err := uc.cache.InvalidateBranch(ctx, branchID); err != nil {
		logger.Warn("grid cache invalidation failed", "branch", branchID, "err", err)
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: branchID,
		UserID:   &userID,
		Action:   audit.ActionBookingStatusChanged,
		Entity:   audit.EntityBooking,
		EntityID: b.ID,
		Metadata: map[string]string{
			"from": string(previous),
			"to":   string(next),
		},
	})

	return b, nil
}
