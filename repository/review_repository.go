package repository

import (
	"inkwell/pkg/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id string) (*models.Review, error)
	List(workID string, limit, offset int) ([]*models.Review, int64, error)
	Update(review *models.Review) error
	Delete(id string) error
	DeleteByWorkID(workID string) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) List(workID string, limit, offset int) ([]*models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if workID != "" {
		query = query.Where("work_id = ?", workID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []*models.Review
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(id string) error {
	return r.db.Delete(&models.Review{}, "id = ?", id).Error
}

func (r *reviewRepository) DeleteByWorkID(workID string) error {
	return r.db.Delete(&models.Review{}, "work_id = ?", workID).Error
}
