package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like existence means "liked"; there is no liked=false row. The unique
// composite index is the only guard against concurrent double-inserts.
type Like struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_work" json:"userId"`
	WorkID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_work;index" json:"workId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
