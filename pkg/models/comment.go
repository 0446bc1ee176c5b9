package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentStatus string

const (
	CommentVisible CommentStatus = "visible"
	CommentHidden  CommentStatus = "hidden"
)

func (s CommentStatus) Valid() bool {
	return s == CommentVisible || s == CommentHidden
}

// Comment attaches to a published work. Username is a snapshot taken at
// creation time; later username changes do not propagate here.
type Comment struct {
	ID        string        `gorm:"type:uuid;primary_key" json:"id"`
	WorkID    string        `gorm:"type:uuid;not null;index" json:"workId"`
	UserID    string        `gorm:"type:uuid;not null;index" json:"userId"`
	Username  string        `gorm:"not null" json:"username"`
	Body      string        `gorm:"type:text;not null" json:"body"`
	Status    CommentStatus `gorm:"type:varchar(20);default:'visible'" json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
