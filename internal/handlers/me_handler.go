package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/logger"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
)

// MeHandler returns the signed-in coordinator together with what the
// schedule screen needs on first load: the branch, its local date and the
// size of the roster.
type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type meUser struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	BranchID uint   `json:"branch_id"`
}

type rosterCounts struct {
	Carers     int64 `json:"carers"`
	Clients    int64 `json:"clients"`
	Unassigned int64 `json:"unassigned_from_today"`
}

type meResponse struct {
	User   meUser        `json:"user"`
	Branch models.Branch `json:"branch"`
	Today  string        `json:"today"`
	Roster rosterCounts  `json:"roster"`
}

func newMeResponse(user models.User, roster rosterCounts) meResponse {
	return meResponse{
		User: meUser{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Phone:    user.Phone,
			Role:     user.Role,
			BranchID: user.BranchID,
		},
		Branch: user.Branch,
		Today:  timezone.Today(user.Branch.Timezone),
		Roster: roster,
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Not signed in.")
		return
	}
	id, ok := userID.(uint)
	if !ok {
		httperr.Unauthorized(c, "invalid_user_id_type", "Not signed in.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var user models.User
	if err := db.Preload("Branch").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		logger.Error("loading user failed", "user", id, "err", err)
		httperr.Internal(c, "internal_error", "Could not load user.")
		return
	}

	roster, err := h.countRoster(db, user.BranchID, timezone.Today(user.Branch.Timezone))
	if err != nil {
		logger.Error("counting roster failed", "branch", user.BranchID, "err", err)
		httperr.Internal(c, "internal_error", "Could not load roster.")
		return
	}

	c.JSON(http.StatusOK, newMeResponse(user, roster))
}

func (h *MeHandler) countRoster(db *gorm.DB, branchID uint, today string) (rosterCounts, error) {
	var out rosterCounts

	if err := db.Model(&models.Staff{}).
		Where("branch_id = ? AND active = true", branchID).
		Count(&out.Carers).Error; err != nil {
		return out, err
	}
	if err := db.Model(&models.Client{}).
		Where("branch_id = ? AND active = true", branchID).
		Count(&out.Clients).Error; err != nil {
		return out, err
	}
	if err := db.Model(&models.Booking{}).
		Where("branch_id = ? AND status = ? AND date >= ?", branchID, string(domain.StatusUnassigned), today).
		Count(&out.Unassigned).Error; err != nil {
		return out, err
	}
	return out, nil
}
