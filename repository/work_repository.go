package repository

import (
	"inkwell/pkg/models"

	"gorm.io/gorm"
)

// WorkFilter narrows a work listing. Status is the filter computed by the
// visibility rules, not the caller's raw input; empty means all statuses.
type WorkFilter struct {
	Status     string
	CategoryID string
	AuthorID   string
	Search     string
	Limit      int
	Offset     int
}

// AuthorWorkCount is an aggregation row: published works per author.
type AuthorWorkCount struct {
	AuthorID  string `json:"authorId"`
	WorkCount int64  `json:"workCount"`
}

// CategoryWorkCount is an aggregation row: published works per category.
type CategoryWorkCount struct {
	CategoryID string `json:"categoryId"`
	Count      int64  `json:"count"`
}

type WorkRepository interface {
	Create(work *models.Work) error
	GetByID(id string) (*models.Work, error)
	GetByIDs(ids []string) ([]*models.Work, error)
	List(filter WorkFilter) ([]*models.Work, int64, error)
	Update(work *models.Work) error
	Delete(id string) error
	DeleteByAuthorID(authorID string) error
	CountByStatus(status models.WorkStatus) (int64, error)
	TopAuthorsByPublished(limit int) ([]AuthorWorkCount, error)
	PublishedCountByCategory() ([]CategoryWorkCount, error)
	RecentPublished(limit int) ([]*models.Work, error)
}

type workRepository struct {
	db *gorm.DB
}

func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &workRepository{db: db}
}

func (r *workRepository) Create(work *models.Work) error {
	return r.db.Create(work).Error
}

func (r *workRepository) GetByID(id string) (*models.Work, error) {
	var work models.Work
	if err := r.db.Where("id = ?", id).First(&work).Error; err != nil {
		return nil, err
	}
	return &work, nil
}

func (r *workRepository) GetByIDs(ids []string) ([]*models.Work, error) {
	var works []*models.Work
	if len(ids) == 0 {
		return works, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&works).Error; err != nil {
		return nil, err
	}
	return works, nil
}

func (r *workRepository) List(filter WorkFilter) ([]*models.Work, int64, error) {
	query := r.db.Model(&models.Work{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var works []*models.Work
	query = query.Order("published_at DESC").Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&works).Error; err != nil {
		return nil, 0, err
	}
	return works, total, nil
}

func (r *workRepository) Update(work *models.Work) error {
	return r.db.Save(work).Error
}

func (r *workRepository) Delete(id string) error {
	return r.db.Delete(&models.Work{}, "id = ?", id).Error
}

func (r *workRepository) DeleteByAuthorID(authorID string) error {
	return r.db.Delete(&models.Work{}, "author_id = ?", authorID).Error
}

func (r *workRepository) CountByStatus(status models.WorkStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Work{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *workRepository) TopAuthorsByPublished(limit int) ([]AuthorWorkCount, error) {
	var rows []AuthorWorkCount
	err := r.db.Model(&models.Work{}).
		Select("author_id, COUNT(*) as work_count").
		Where("status = ?", models.WorkPublished).
		Group("author_id").
		Order("work_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *workRepository) PublishedCountByCategory() ([]CategoryWorkCount, error) {
	var rows []CategoryWorkCount
	err := r.db.Model(&models.Work{}).
		Select("category_id, COUNT(*) as count").
		Where("status = ?", models.WorkPublished).
		Group("category_id").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *workRepository) RecentPublished(limit int) ([]*models.Work, error) {
	var works []*models.Work
	err := r.db.Where("status = ?", models.WorkPublished).
		Order("published_at DESC").
		Limit(limit).
		Find(&works).Error
	return works, err
}
