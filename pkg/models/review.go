package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewDecision string

const (
	DecisionApproved ReviewDecision = "approved"
	DecisionRejected ReviewDecision = "rejected"
)

func (d ReviewDecision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// WorkStatus returns the work status a decision drives the reviewed work to.
func (d ReviewDecision) WorkStatus() WorkStatus {
	if d == DecisionApproved {
		return WorkApproved
	}
	return WorkRejected
}

// Review records a single editorial decision. Decisions are kept even when
// the work moves on; deleting a review does not revert the work.
type Review struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	WorkID    string         `gorm:"type:uuid;not null;index" json:"workId"`
	EditorID  string         `gorm:"type:uuid;not null;index" json:"editorId"`
	Decision  ReviewDecision `gorm:"type:varchar(20);not null" json:"decision"`
	Feedback  string         `gorm:"type:text" json:"feedback"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
