package schedule

import (
	"context"

	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type Repository interface {
	// -------- Branch --------
	GetBranchByID(
		ctx context.Context,
		id uint,
	) (*models.Branch, error)

	// -------- Rows --------
	ListStaff(
		ctx context.Context,
		branchID uint,
	) ([]models.Staff, error)

	ListClients(
		ctx context.Context,
		branchID uint,
	) ([]models.Client, error)

	GetStaff(
		ctx context.Context,
		branchID uint,
		staffID string,
	) (*models.Staff, error)

	// -------- Bookings (from/to inclusive, yyyy-MM-dd) --------
	ListBookings(
		ctx context.Context,
		branchID uint,
		from string,
		to string,
	) ([]models.Booking, error)

	GetBooking(
		ctx context.Context,
		branchID uint,
		bookingID string,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// ListVisitBookings returns every row of the visit b belongs to: same
	// client, date and times, the row itself included.
	ListVisitBookings(
		ctx context.Context,
		branchID uint,
		b *models.Booking,
	) ([]models.Booking, error)

	// SaveVisit stores the rows of one visit atomically. It locks every
	// carer on the visit and returns a time_conflict business error when
	// one of them is already booked over the new time.
	SaveVisit(
		ctx context.Context,
		branchID uint,
		rows []models.Booking,
	) error

	// -------- Availability layers --------
	ListLeaves(
		ctx context.Context,
		branchID uint,
		from string,
		to string,
	) ([]models.LeaveRequest, error)

	ListHolidays(
		ctx context.Context,
		branchID uint,
	) ([]models.Holiday, error)

	ListWorkingHours(
		ctx context.Context,
		branchID uint,
	) ([]models.WorkingHours, error)
}
