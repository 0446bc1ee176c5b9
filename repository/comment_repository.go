package repository

import (
	"inkwell/pkg/models"

	"gorm.io/gorm"
)

// WorkCommentCount is an aggregation row: visible comments per work.
type WorkCommentCount struct {
	WorkID       string `json:"workId"`
	CommentCount int64  `json:"commentCount"`
}

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id string) (*models.Comment, error)
	ListVisibleByWork(workID string, limit, offset int) ([]*models.Comment, int64, error)
	Update(comment *models.Comment) error
	Delete(id string) error
	DeleteByWorkID(workID string) error
	DeleteByUserID(userID string) error
	CountVisible() (int64, error)
	TopWorksByVisible(limit int) ([]WorkCommentCount, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListVisibleByWork is the public read path; hidden comments never leave it.
func (r *commentRepository) ListVisibleByWork(workID string, limit, offset int) ([]*models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{}).
		Where("work_id = ? AND status = ?", workID, models.CommentVisible)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*models.Comment
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) Delete(id string) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}

func (r *commentRepository) DeleteByWorkID(workID string) error {
	return r.db.Delete(&models.Comment{}, "work_id = ?", workID).Error
}

func (r *commentRepository) DeleteByUserID(userID string) error {
	return r.db.Delete(&models.Comment{}, "user_id = ?", userID).Error
}

func (r *commentRepository) CountVisible() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("status = ?", models.CommentVisible).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) TopWorksByVisible(limit int) ([]WorkCommentCount, error) {
	var rows []WorkCommentCount
	err := r.db.Model(&models.Comment{}).
		Select("work_id, COUNT(*) as comment_count").
		Where("status = ?", models.CommentVisible).
		Group("work_id").
		Order("comment_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
