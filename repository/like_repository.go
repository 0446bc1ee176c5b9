package repository

import (
	"inkwell/pkg/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Get(userID, workID string) (*models.Like, error)
	Create(like *models.Like) error
	Delete(id string) error
	CountByWork(workID string) (int64, error)
	DeleteByWorkID(workID string) error
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Get(userID, workID string) (*models.Like, error) {
	var like models.Like
	if err := r.db.Where("user_id = ? AND work_id = ?", userID, workID).First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// Create relies on the unique (user_id, work_id) index to reject concurrent
// double-inserts; callers treat gorm.ErrDuplicatedKey as already-liked.
func (r *likeRepository) Create(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *likeRepository) Delete(id string) error {
	return r.db.Delete(&models.Like{}, "id = ?", id).Error
}

func (r *likeRepository) CountByWork(workID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("work_id = ?", workID).Count(&count).Error
	return count, err
}

func (r *likeRepository) DeleteByWorkID(workID string) error {
	return r.db.Delete(&models.Like{}, "work_id = ?", workID).Error
}
