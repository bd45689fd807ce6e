package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/logger"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

// AuditLogsHandler lists the booking history of a branch: reassignments
// made on the grid and status changes.
type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// ======================================================
// FILTER
// ======================================================

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// auditLogFilter holds the validated query. From and To are branch-local
// calendar days, both inclusive.
type auditLogFilter struct {
	Action    string
	BookingID string
	From      string
	To        string
	Page      int
	Limit     int
}

func parseAuditLogFilter(c *gin.Context) (auditLogFilter, string) {
	f := auditLogFilter{
		Action:    c.Query("action"),
		BookingID: c.Query("booking_id"),
		From:      c.Query("from"),
		To:        c.Query("to"),
		Page:      1,
		Limit:     auditDefaultLimit,
	}

	if f.Action != "" && !audit.IsKnownAction(f.Action) {
		return f, "invalid_action"
	}

	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := domain.ParseDate(d); err != nil {
			return f, "invalid_date"
		}
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return f, "invalid_date"
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		f.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= auditMaxLimit {
		f.Limit = limit
	}
	return f, ""
}

// ======================================================
// VIEW
// ======================================================

type auditLogView struct {
	ID        uint            `json:"id"`
	UserID    *uint           `json:"user_id"`
	Action    string          `json:"action"`
	BookingID string          `json:"booking_id,omitempty"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"created_at"`
}

func toAuditLogView(l models.AuditLog) auditLogView {
	v := auditLogView{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    l.Action,
		Metadata:  json.RawMessage("null"),
		CreatedAt: l.CreatedAt,
	}
	if l.Entity == audit.EntityBooking {
		v.BookingID = l.EntityID
	}

	switch {
	case l.Metadata == "":
	case json.Valid([]byte(l.Metadata)):
		v.Metadata = json.RawMessage(l.Metadata)
	default:
		// Rows written before metadata was JSON are returned as a string.
		raw, _ := json.Marshal(l.Metadata)
		v.Metadata = raw
	}
	return v
}

// ======================================================
// LIST
// ======================================================

func (h *AuditLogsHandler) List(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	f, code := parseAuditLogFilter(c)
	switch code {
	case "invalid_action":
		httperr.BadRequest(c, code, "Unknown audit action.")
		return
	case "invalid_date":
		httperr.BadRequest(c, code, "Dates must be yyyy-MM-dd with from before to.")
		return
	}

	ctx := c.Request.Context()

	var branch models.Branch
	if err := h.db.WithContext(ctx).First(&branch, branchID).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}
	loc := timezone.Location(branch.Timezone)

	// --------------------------------------------------
	// Base query (always scoped to the branch)
	// --------------------------------------------------
	q := h.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("branch_id = ?", branchID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.BookingID != "" {
		q = q.Where("entity = ? AND entity_id = ?", audit.EntityBooking, f.BookingID)
	}
	if f.From != "" {
		from, _ := time.ParseInLocation(domain.DateLayout, f.From, loc)
		q = q.Where("created_at >= ?", from)
	}
	if f.To != "" {
		to, _ := time.ParseInLocation(domain.DateLayout, f.To, loc)
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		logger.Error("audit count failed", "branch", branchID, "err", err)
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		logger.Error("audit list failed", "branch", branchID, "err", err)
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	views := make([]auditLogView, 0, len(logs))
	for _, l := range logs {
		views = append(views, toAuditLogView(l))
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  views,
	})
}
