package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Branch
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBranchByID(
	ctx context.Context,
	id uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("branch_not_found")
		}
		return nil, err
	}
	return &branch, nil
}

// --------------------------------------------------
// Rows
// --------------------------------------------------

func (r *ScheduleGormRepository) ListStaff(
	ctx context.Context,
	branchID uint,
) ([]models.Staff, error) {

	var staff []models.Staff
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND active = true", branchID).
		Order("first_name ASC, last_name ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *ScheduleGormRepository) ListClients(
	ctx context.Context,
	branchID uint,
) ([]models.Client, error) {

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND active = true", branchID).
		Order("first_name ASC, last_name ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ScheduleGormRepository) GetStaff(
	ctx context.Context,
	branchID uint,
	staffID string,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND branch_id = ?", staffID, branchID).
		First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("staff_not_found")
		}
		return nil, err
	}
	return &staff, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBookings(
	ctx context.Context,
	branchID uint,
	from string,
	to string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Staff").
		Where("branch_id = ? AND date >= ? AND date <= ?", branchID, from, to).
		Order("date ASC, start_time ASC, created_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *ScheduleGormRepository) GetBooking(
	ctx context.Context,
	branchID uint,
	bookingID string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Staff").
		Where("id = ? AND branch_id = ?", bookingID, branchID).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *ScheduleGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).
		Omit("Client", "Staff").
		Save(b).Error
}

func (r *ScheduleGormRepository) ListVisitBookings(
	ctx context.Context,
	branchID uint,
	b *models.Booking,
) ([]models.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Staff").
		Where("branch_id = ? AND client_id = ? AND date = ?", branchID, b.ClientID, b.Date).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	// Times are stored as HH:mm or HH:mm:ss, so match on the normalized form.
	target := domain.BookingFromModel(*b)
	out := make([]models.Booking, 0, len(rows))
	for _, m := range rows {
		if domain.SameVisit(target, domain.BookingFromModel(m)) {
			out = append(out, m)
		}
	}
	return out, nil
}

// SaveVisit locks the staff rows of every carer on the visit, re-reads their
// bookings around the visit date (the day before included for visits that
// run past midnight) and saves only when none of them overlap. Concurrent
// moves of the same carer serialize on the staff row lock.
func (r *ScheduleGormRepository) SaveVisit(
	ctx context.Context,
	branchID uint,
	rows []models.Booking,
) error {

	if len(rows) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carers := visitCarers(rows)

		for _, id := range carers {
			var staff models.Staff
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND branch_id = ?", id, branchID).
				First(&staff).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return httperr.ErrBusiness("staff_not_found")
				}
				return fmt.Errorf("locking carer %s: %w", id, err)
			}
		}

		visit := make([]domain.Booking, 0, len(rows))
		ids := make([]string, 0, len(rows))
		for _, m := range rows {
			visit = append(visit, domain.BookingFromModel(m).Normalize())
			ids = append(ids, m.ID)
		}

		if len(carers) > 0 {
			day, err := domain.ParseDate(rows[0].Date)
			if err != nil {
				return httperr.ErrBusiness("invalid_date")
			}
			from := day.AddDate(0, 0, -1).Format(domain.DateLayout)
			to := day.AddDate(0, 0, 1).Format(domain.DateLayout)

			var busy []models.Booking
			if err := tx.
				Where(
					"staff_id IN ? AND id NOT IN ? AND status <> ? AND date >= ? AND date <= ?",
					carers, ids, string(domain.StatusCancelled), from, to,
				).
				Find(&busy).Error; err != nil {
				return fmt.Errorf("loading carer bookings: %w", err)
			}

			existing := make([]domain.Booking, 0, len(busy))
			for _, m := range busy {
				existing = append(existing, domain.BookingFromModel(m))
			}
			if err := domain.AssertVisitFree(visit, existing); err != nil {
				return err
			}
		}

		for i := range rows {
			if err := tx.Omit("Client", "Staff").Save(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// visitCarers returns the distinct carer IDs on the visit in sorted order,
// so two transactions always take the staff locks in the same sequence.
func visitCarers(rows []models.Booking) []string {
	seen := make(map[string]bool, len(rows))
	out := make([]string, 0, len(rows))
	for _, m := range rows {
		if m.StaffID == nil || *m.StaffID == "" || m.Status == string(domain.StatusCancelled) {
			continue
		}
		if !seen[*m.StaffID] {
			seen[*m.StaffID] = true
			out = append(out, *m.StaffID)
		}
	}
	sort.Strings(out)
	return out
}

// --------------------------------------------------
// Availability layers
// --------------------------------------------------

func (r *ScheduleGormRepository) ListLeaves(
	ctx context.Context,
	branchID uint,
	from string,
	to string,
) ([]models.LeaveRequest, error) {

	var leaves []models.LeaveRequest
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND start_date <= ? AND end_date >= ?", branchID, to, from).
		Order("start_date ASC").
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *ScheduleGormRepository) ListHolidays(
	ctx context.Context,
	branchID uint,
) ([]models.Holiday, error) {

	var holidays []models.Holiday
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("start_date ASC").
		Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *ScheduleGormRepository) ListWorkingHours(
	ctx context.Context,
	branchID uint,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND active = true", branchID).
		Order("staff_id ASC, weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
