package models

import "time"

type LeaveRequest struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BranchID uint   `gorm:"index" json:"branch_id"`
	StaffID  string `gorm:"type:uuid;index" json:"staff_id"`

	LeaveType string `gorm:"size:30" json:"leave_type"`
	Status    string `gorm:"size:20;default:'pending'" json:"status"`
	StartDate string `gorm:"size:10" json:"start_date"`
	EndDate   string `gorm:"size:10" json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
