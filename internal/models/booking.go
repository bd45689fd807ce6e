package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is one carer's assignment to a visit. A visit covered by two
// carers is stored as two rows with the same client, date and times.
type Booking struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uint   `gorm:"index" json:"branch_id"`

	ClientID string `gorm:"type:uuid;index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StaffID *string `gorm:"type:uuid;index" json:"staff_id"`
	Staff   *Staff  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff,omitempty"`

	// Date is yyyy-MM-dd; StartTime/EndTime are HH:mm. EndTime before
	// StartTime means the visit ends the next day.
	Date      string `gorm:"size:10;index" json:"date"`
	StartTime string `gorm:"size:8" json:"start_time"`
	EndTime   string `gorm:"size:8" json:"end_time"`

	Status string `gorm:"size:20;default:'unassigned'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	IsLateStart      bool `json:"is_late_start"`
	IsMissed         bool `json:"is_missed"`
	LateStartMinutes int  `json:"late_start_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
