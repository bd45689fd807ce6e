package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/care-scheduler/internal/logger"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	ucSchedule "github.com/BruksfildServices01/care-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	buildGrid *ucSchedule.BuildGrid
}

func NewScheduleHandler(buildGrid *ucSchedule.BuildGrid) *ScheduleHandler {
	return &ScheduleHandler{buildGrid: buildGrid}
}

// ======================================================
// GRIDS
// ======================================================

func (h *ScheduleHandler) StaffGrid(c *gin.Context) {
	h.grid(c, domain.RowStaff)
}

func (h *ScheduleHandler) ClientGrid(c *gin.Context) {
	h.grid(c, domain.RowClient)
}

func (h *ScheduleHandler) grid(c *gin.Context, rows domain.RowKind) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	interval := 0
	if s := c.Query("interval"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_interval", "Interval must be 30 or 60.")
			return
		}
		interval = n
	}

	grid, err := h.buildGrid.Execute(c.Request.Context(), ucSchedule.GridInput{
		BranchID: branchID,
		Rows:     rows,
		View:     c.Query("view"),
		Interval: interval,
		Date:     c.Query("date"),
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_grid_params"):
			httperr.BadRequest(c, "invalid_grid_params", "Invalid date, view or interval.")
		case httperr.IsBusiness(err, "branch_not_found"):
			httperr.NotFound(c, "branch_not_found", "Branch not found.")
		default:
			logger.Error("grid build failed", "branch", branchID, "err", err)
			httperr.Internal(c, "grid_failed", "Could not build schedule.")
		}
		return
	}

	httpresp.OK(c, grid)
}

// ======================================================
// SLOTS
// ======================================================

// Slots lists the time-of-day labels for an interval; it needs no data.
func (h *ScheduleHandler) Slots(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("interval", "60"))
	if err != nil {
		httperr.BadRequest(c, "invalid_interval", "Interval must be 30 or 60.")
		return
	}

	iv, err := domain.ParseInterval(n)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInterval) {
			httperr.BadRequest(c, "invalid_interval", "Interval must be 30 or 60.")
			return
		}
		httperr.Internal(c, "slots_failed", "Could not list slots.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interval": iv,
		"count":    iv.SlotCount(),
		"slots":    iv.Slots(),
	})
}
