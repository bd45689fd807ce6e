package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/care-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/logger"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
)

// UnassignedRowID is the staff-grid row holding visits with no carer yet.
const UnassignedRowID = "unassigned"

// ======================================================
// INPUT
// ======================================================

type GridInput struct {
	BranchID uint
	Rows     domain.RowKind
	View     string
	Interval int
	Date     string
}

// GridSettings are the pixel and default values from configuration.
type GridSettings struct {
	DefaultInterval int
	SlotWidth       float64
	MinBlockWidth   float64
}

// ======================================================
// USE CASE
// ======================================================

type BuildGrid struct {
	repo     domain.Repository
	cache    *cache.GridCache
	settings GridSettings
}

func NewBuildGrid(
	repo domain.Repository,
	gridCache *cache.GridCache,
	settings GridSettings,
) *BuildGrid {
	return &BuildGrid{
		repo:     repo,
		cache:    gridCache,
		settings: settings,
	}
}

func (uc *BuildGrid) Execute(
	ctx context.Context,
	in GridInput,
) (*domain.Grid, error) {

	branch, err := uc.repo.GetBranchByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Config (validation boundary)
	// --------------------------------------------------
	date := in.Date
	if date == "" {
		date = timezone.Today(branch.Timezone)
	}
	interval := in.Interval
	if interval == 0 {
		interval = uc.settings.DefaultInterval
	}

	cfg, err := domain.NewConfig(in.View, interval, date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_grid_params")
	}
	cfg = cfg.WithGeometry(uc.settings.SlotWidth, uc.settings.MinBlockWidth)

	rowKind := in.Rows
	if rowKind != domain.RowClient {
		rowKind = domain.RowStaff
	}

	key := cache.GridKey{
		BranchID: in.BranchID,
		Rows:     rowKind,
		View:     cfg.View,
		Interval: cfg.Interval,
		Date:     date,
	}
	if grid, ok := uc.cache.Get(ctx, key); ok {
		return grid, nil
	}

	// --------------------------------------------------
	// Fetch
	// --------------------------------------------------
	from, to := cfg.FetchRange()

	stored, err := uc.repo.ListBookings(ctx, in.BranchID, from, to)
	if err != nil {
		return nil, err
	}

	raw := make([]domain.Booking, 0, len(stored))
	for _, m := range stored {
		raw = append(raw, domain.BookingFromModel(m))
	}

	bookings, invalid := domain.ValidBookings(raw)
	for _, e := range invalid {
		logger.Warn("skipping booking", "branch", in.BranchID, "err", e)
	}

	var rows []domain.RowInput
	if rowKind == domain.RowClient {
		rows, err = uc.clientRows(ctx, in.BranchID, bookings)
	} else {
		rows, err = uc.staffRows(ctx, in.BranchID, from, to, bookings)
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Layout
	// --------------------------------------------------
	grid := domain.Layout(cfg, rows)

	uc.cache.Set(ctx, key, grid)

	logger.Debug("grid built",
		"branch", in.BranchID,
		"rows", rowKind,
		"view", cfg.View,
		"date", date,
		"bookings", len(bookings),
	)

	return &grid, nil
}

func (uc *BuildGrid) clientRows(
	ctx context.Context,
	branchID uint,
	bookings []domain.Booking,
) ([]domain.RowInput, error) {

	clients, err := uc.repo.ListClients(ctx, branchID)
	if err != nil {
		return nil, err
	}

	byClient := make(map[string][]domain.Booking)
	for _, b := range bookings {
		byClient[b.ClientID] = append(byClient[b.ClientID], b)
	}

	rows := make([]domain.RowInput, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, domain.RowInput{
			ID:       c.ID,
			Name:     c.FullName(),
			Kind:     domain.RowClient,
			Bookings: byClient[c.ID],
		})
	}
	return rows, nil
}

func (uc *BuildGrid) staffRows(
	ctx context.Context,
	branchID uint,
	from, to string,
	bookings []domain.Booking,
) ([]domain.RowInput, error) {

	staff, err := uc.repo.ListStaff(ctx, branchID)
	if err != nil {
		return nil, err
	}
	leaves, err := uc.repo.ListLeaves(ctx, branchID, from, to)
	if err != nil {
		return nil, err
	}
	holidays, err := uc.repo.ListHolidays(ctx, branchID)
	if err != nil {
		return nil, err
	}
	hours, err := uc.repo.ListWorkingHours(ctx, branchID)
	if err != nil {
		return nil, err
	}

	byCarer := make(map[string][]domain.Booking)
	for _, b := range bookings {
		id := b.CarerID
		if id == "" {
			id = UnassignedRowID
		}
		byCarer[id] = append(byCarer[id], b)
	}

	leavesByStaff := make(map[string][]domain.Leave)
	for _, l := range leaves {
		leavesByStaff[l.StaffID] = append(leavesByStaff[l.StaffID], domain.LeaveFromModel(l))
	}

	domainHolidays := make([]domain.Holiday, 0, len(holidays))
	for _, h := range holidays {
		domainHolidays = append(domainHolidays, domain.HolidayFromModel(h))
	}

	shifts := workingHoursByStaff(hours)

	rows := make([]domain.RowInput, 0, len(staff)+1)
	for _, s := range staff {
		rows = append(rows, domain.RowInput{
			ID:           s.ID,
			Name:         s.FullName(),
			Kind:         domain.RowStaff,
			Bookings:     byCarer[s.ID],
			Leaves:       leavesByStaff[s.ID],
			Holidays:     domainHolidays,
			WorkingHours: shifts[s.ID],
		})
	}

	if unassigned := byCarer[UnassignedRowID]; len(unassigned) > 0 {
		// client kind: no leave, holiday or shift layers on this row
		rows = append(rows, domain.RowInput{
			ID:       UnassignedRowID,
			Name:     "Unassigned",
			Kind:     domain.RowClient,
			Bookings: unassigned,
		})
	}

	return rows, nil
}

func workingHoursByStaff(hours []models.WorkingHours) map[string]map[time.Weekday]domain.WorkingHours {
	out := make(map[string]map[time.Weekday]domain.WorkingHours)
	for _, wh := range hours {
		if !wh.Active || wh.Weekday < 0 || wh.Weekday > 6 {
			continue
		}
		if _, ok := out[wh.StaffID]; !ok {
			out[wh.StaffID] = make(map[time.Weekday]domain.WorkingHours)
		}
		out[wh.StaffID][time.Weekday(wh.Weekday)] = domain.WorkingHoursFromModel(wh)
	}
	return out
}
