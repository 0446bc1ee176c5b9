package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkStatus string

const (
	WorkDraft     WorkStatus = "draft"
	WorkSubmitted WorkStatus = "submitted"
	WorkApproved  WorkStatus = "approved"
	WorkRejected  WorkStatus = "rejected"
	WorkPublished WorkStatus = "published"
	WorkHidden    WorkStatus = "hidden"
)

func (s WorkStatus) Valid() bool {
	switch s {
	case WorkDraft, WorkSubmitted, WorkApproved, WorkRejected, WorkPublished, WorkHidden:
		return true
	}
	return false
}

// Work is a piece of writing moving through the editorial lifecycle.
// AuthorID is set at creation and never changes.
type Work struct {
	ID          string     `gorm:"type:uuid;primary_key" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	AuthorID    string     `gorm:"type:uuid;not null;index" json:"authorId"`
	CategoryID  string     `gorm:"index" json:"categoryId"`
	Tags        []string   `gorm:"serializer:json" json:"tags"`
	Status      WorkStatus `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	SubmittedAt *time.Time `json:"submittedAt"`
	ApprovedAt  *time.Time `json:"approvedAt"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (w *Work) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

// ApplyStatus sets the status and stamps the timestamp that belongs to the
// chosen value. Stamping is a side effect of the value, not of a transition:
// the caller is not required to have been in any particular prior state.
// A rejection via the review path clears ApprovedAt separately.
func (w *Work) ApplyStatus(status WorkStatus, now time.Time) {
	w.Status = status
	switch status {
	case WorkSubmitted:
		w.SubmittedAt = &now
	case WorkApproved:
		w.ApprovedAt = &now
	case WorkPublished:
		w.PublishedAt = &now
	}
}
