package repository

import (
	"inkwell/pkg/models"

	"gorm.io/gorm"
)

type DraftRepository interface {
	Create(draft *models.Draft) error
	GetByID(id string) (*models.Draft, error)
	ListByAuthor(authorID, workID string, limit, offset int) ([]*models.Draft, int64, error)
	CountForWork(authorID, workID string) (int64, error)
	Update(draft *models.Draft) error
	Delete(id string) error
	DeleteByWorkID(workID string) error
	DeleteByAuthorID(authorID string) error
}

type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(draft *models.Draft) error {
	return r.db.Create(draft).Error
}

func (r *draftRepository) GetByID(id string) (*models.Draft, error) {
	var draft models.Draft
	if err := r.db.Where("id = ?", id).First(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) ListByAuthor(authorID, workID string, limit, offset int) ([]*models.Draft, int64, error) {
	query := r.db.Model(&models.Draft{}).Where("author_id = ?", authorID)
	if workID != "" {
		query = query.Where("work_id = ?", workID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var drafts []*models.Draft
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&drafts).Error; err != nil {
		return nil, 0, err
	}
	return drafts, total, nil
}

// CountForWork counts drafts in one (author, work) bucket; an empty workID
// is the free-standing bucket. The cap check reads this, so the count and
// the subsequent insert are not atomic - the cap is soft under concurrency.
func (r *draftRepository) CountForWork(authorID, workID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Draft{}).
		Where("author_id = ? AND work_id = ?", authorID, workID).
		Count(&count).Error
	return count, err
}

func (r *draftRepository) Update(draft *models.Draft) error {
	return r.db.Save(draft).Error
}

func (r *draftRepository) Delete(id string) error {
	return r.db.Delete(&models.Draft{}, "id = ?", id).Error
}

func (r *draftRepository) DeleteByWorkID(workID string) error {
	return r.db.Delete(&models.Draft{}, "work_id = ?", workID).Error
}

func (r *draftRepository) DeleteByAuthorID(authorID string) error {
	return r.db.Delete(&models.Draft{}, "author_id = ?", authorID).Error
}
