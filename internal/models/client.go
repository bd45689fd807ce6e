package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a person receiving care visits.
type Client struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uint   `gorm:"index" json:"branch_id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Phone     string `gorm:"size:20" json:"phone"`

	AddressLine1 string `gorm:"size:255" json:"address_line_1"`
	AddressLine2 string `gorm:"size:255" json:"address_line_2"`
	City         string `gorm:"size:100" json:"city"`
	Postcode     string `gorm:"size:20" json:"postcode"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
