package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is standalone reference data. Deleting one does not touch works;
// they keep the dangling CategoryID.
type Category struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
