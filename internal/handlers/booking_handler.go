package handlers

import (
	"net/http"

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

type BookingHandler struct {
	reassign     *ucSchedule.ReassignBooking
	updateStatus *ucSchedule.UpdateBookingStatus
}

func NewBookingHandler(
	reassign *ucSchedule.ReassignBooking,
	updateStatus *ucSchedule.UpdateBookingStatus,
) *BookingHandler {
	return &BookingHandler{
		reassign:     reassign,
		updateStatus: updateStatus,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ReassignBookingRequest struct {
	CarerID   string `json:"carer_id"`
	Date      string `json:"date"`       // yyyy-MM-dd
	StartTime string `json:"start_time"` // HH:mm
	EndTime   string `json:"end_time"`   // HH:mm
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// REASSIGN (drag and drop)
// ======================================================

func (h *BookingHandler) Reassign(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	var req ReassignBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}
	if req.CarerID == "" && req.Date == "" && req.StartTime == "" && req.EndTime == "" {
		httperr.BadRequest(c, "nothing_to_change", "Nothing to change.")
		return
	}

	rows, err := h.reassign.Execute(c.Request.Context(), ucSchedule.ReassignInput{
		BranchID:  branchID,
		UserID:    userID,
		BookingID: c.Param("id"),
		CarerID:   req.CarerID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.BadRequest(c, "invalid_status", "Unknown booking status.")
		return
	}

	b, err := h.updateStatus.Execute(c.Request.Context(), branchID, userID, c.Param("id"), status)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func mapBookingErrors(c *gin.Context, err error) {
	switch code := httperr.CodeOf(err); code {
	case "booking_not_found":
		httperr.NotFound(c, code, "Booking not found.")
	case "staff_not_found":
		httperr.NotFound(c, code, "Carer not found in this branch.")
	case "invalid_state":
		httperr.BadRequest(c, code, "Booking can no longer be changed.")
	case "status_unchanged":
		httperr.BadRequest(c, code, "Booking already has this status.")
	case "invalid_status":
		httperr.BadRequest(c, code, "Unknown booking status.")
	case "invalid_date_or_time", "invalid_date":
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case "time_conflict":
		httperr.Conflict(c, code, "Carer already has a visit at this time.")
	default:
		logger.Error("booking update failed", "err", err)
		httperr.Internal(c, "failed_to_update_booking", "Could not update booking.")
	}
}
