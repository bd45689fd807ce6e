package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/care-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/logger"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	cache *cache.GridCache
}

func NewWorkingHoursHandler(db *gorm.DB, gridCache *cache.GridCache) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, cache: gridCache}
}

type WorkingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) staffInBranch(c *gin.Context) (string, bool) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	staffID := c.Param("id")

	var count int64
	if err := h.db.Model(&models.Staff{}).
		Where("id = ? AND branch_id = ?", staffID, branchID).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_staff"})
		return "", false
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff_not_found"})
		return "", false
	}
	return staffID, true
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	staffID, ok := h.staffInBranch(c)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	staffID, ok := h.staffInBranch(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var toCreate []models.WorkingHours
	for _, d := range req.Days {
		if d.Active {
			if _, err := domain.ParseClock(d.StartTime); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_start_time", "weekday": d.Weekday})
				return
			}
			if _, err := domain.ParseClock(d.EndTime); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_end_time", "weekday": d.Weekday})
				return
			}
		}

		toCreate = append(toCreate, models.WorkingHours{
			BranchID:  branchID,
			StaffID:   staffID,
			Weekday:   d.Weekday,
			Active:    d.Active,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", staffID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
		return
	}

	if err := h.cache.InvalidateBranch(c.Request.Context(), branchID); err != nil {
		logger.Warn("grid cache invalidation failed", "branch", branchID, "err", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
