package models

import "time"

// Holiday applies to the whole branch unless StaffIDs (comma separated)
// narrows it down.
type Holiday struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BranchID uint   `gorm:"index" json:"branch_id"`
	Name     string `gorm:"size:100;not null" json:"name"`

	StartDate string `gorm:"size:10" json:"start_date"`
	EndDate   string `gorm:"size:10" json:"end_date"`
	Yearly    bool   `json:"yearly"`
	StaffIDs  string `gorm:"type:text" json:"staff_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
