package schedule

import (
	"context"
	"errors"
	"sync"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// memoryRepo is an in-memory domain.Repository for use case tests.
type memoryRepo struct {
	branch   models.Branch
	staff    []models.Staff
	clients  []models.Client
	bookings []models.Booking
	leaves   []models.LeaveRequest
	holidays []models.Holiday
	hours    []models.WorkingHours

	listBookingsCalls int
	lastFrom, lastTo  string
	updateErr         error
}

var _ domain.Repository = (*memoryRepo)(nil)

func (r *memoryRepo) GetBranchByID(ctx context.Context, id uint) (*models.Branch, error) {
	if id != r.branch.ID {
		return nil, httperr.ErrBusiness("branch_not_found")
	}
	b := r.branch
	return &b, nil
}

func (r *memoryRepo) ListStaff(ctx context.Context, branchID uint) ([]models.Staff, error) {
	var out []models.Staff
	for _, s := range r.staff {
		if s.BranchID == branchID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryRepo) GetStaff(ctx context.Context, branchID uint, staffID string) (*models.Staff, error) {
	for _, s := range r.staff {
		if s.ID == staffID && s.BranchID == branchID {
			out := s
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("staff_not_found")
}

func (r *memoryRepo) ListClients(ctx context.Context, branchID uint) ([]models.Client, error) {
	return r.clients, nil
}

func (r *memoryRepo) ListBookings(ctx context.Context, branchID uint, from, to string) ([]models.Booking, error) {
	r.listBookingsCalls++
	r.lastFrom, r.lastTo = from, to

	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date >= from && b.Date <= to {
			out = append(out, r.withStaff(b))
		}
	}
	return out, nil
}

func (r *memoryRepo) withStaff(b models.Booking) models.Booking {
	if b.StaffID == nil {
		return b
	}
	for i := range r.staff {
		if r.staff[i].ID == *b.StaffID {
			s := r.staff[i]
			b.Staff = &s
		}
	}
	return b
}

func (r *memoryRepo) GetBooking(ctx context.Context, branchID uint, bookingID string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == bookingID && b.BranchID == branchID {
			out := r.withStaff(b)
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (r *memoryRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.bookings {
		if r.bookings[i].ID == b.ID {
			saved := *b
			saved.Staff = nil
			r.bookings[i] = saved
			return nil
		}
	}
	return errors.New("booking not stored")
}

func (r *memoryRepo) ListVisitBookings(ctx context.Context, branchID uint, b *models.Booking) ([]models.Booking, error) {
	target := domain.BookingFromModel(*b)

	var out []models.Booking
	for _, m := range r.bookings {
		if m.BranchID == branchID && domain.SameVisit(target, domain.BookingFromModel(m)) {
			out = append(out, r.withStaff(m))
		}
	}
	return out, nil
}

func (r *memoryRepo) SaveVisit(ctx context.Context, branchID uint, rows []models.Booking) error {
	if r.updateErr != nil {
		return r.updateErr
	}

	visit := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		if m.StaffID != nil {
			if _, err := r.GetStaff(ctx, branchID, *m.StaffID); err != nil {
				return err
			}
		}
		visit = append(visit, domain.BookingFromModel(m).Normalize())
	}

	existing := make([]domain.Booking, 0, len(r.bookings))
	for _, m := range r.bookings {
		existing = append(existing, domain.BookingFromModel(m))
	}
	if err := domain.AssertVisitFree(visit, existing); err != nil {
		return err
	}

	for _, m := range rows {
		if err := r.UpdateBooking(ctx, &m); err != nil {
			return err
		}
	}
	return nil
}

func (r *memoryRepo) ListLeaves(ctx context.Context, branchID uint, from, to string) ([]models.LeaveRequest, error) {
	return r.leaves, nil
}

func (r *memoryRepo) ListHolidays(ctx context.Context, branchID uint) ([]models.Holiday, error) {
	return r.holidays, nil
}

func (r *memoryRepo) ListWorkingHours(ctx context.Context, branchID uint) ([]models.WorkingHours, error) {
	return r.hours, nil
}

// memoryRecorder collects dispatched audit events.
type memoryRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *memoryRecorder) Record(ev audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func strPtr(s string) *string { return &s }

func storedBooking(id, clientID string, staffID *string, date, start, end, status string) models.Booking {
	return models.Booking{
		ID:        id,
		BranchID:  1,
		ClientID:  clientID,
		Client:    models.Client{ID: clientID, FirstName: "Client", LastName: clientID},
		StaffID:   staffID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}
