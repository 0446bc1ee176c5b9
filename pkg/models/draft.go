package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Draft is a saved snapshot, distinct from a work's own "draft" status.
// WorkID is empty for free-standing scratch drafts. At most five drafts are
// kept per (author, work) pair; pinning does not exempt a draft from the cap.
type Draft struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  string    `gorm:"type:uuid;not null;index" json:"authorId"`
	WorkID    string    `gorm:"index" json:"workId"`
	Pinned    bool      `gorm:"default:false" json:"pinned"`
	CreatedAt time.Time `json:"createdAt"`
}

func (d *Draft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}
