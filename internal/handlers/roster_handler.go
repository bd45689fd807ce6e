package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// RosterHandler lists the rows a grid can show: staff and clients.
type RosterHandler struct {
	db *gorm.DB
}

func NewRosterHandler(db *gorm.DB) *RosterHandler {
	return &RosterHandler{db: db}
}

func (h *RosterHandler) ListClients(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	q := h.search(h.db.Where("branch_id = ?", branchID), c.Query("query"))

	var clients []models.Client
	if err := q.Order("first_name ASC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Could not list clients.")
		return
	}

	httpresp.List(c, clients)
}

func (h *RosterHandler) ListStaff(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	q := h.search(h.db.Where("branch_id = ?", branchID), c.Query("query"))

	var staff []models.Staff
	if err := q.Order("first_name ASC").Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	httpresp.List(c, staff)
}

func (h *RosterHandler) search(q *gorm.DB, query string) *gorm.DB {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return q
	}
	like := "%" + query + "%"
	return q.Where(
		"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ?",
		like, like, like,
	)
}
