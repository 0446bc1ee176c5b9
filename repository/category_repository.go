package repository

import (
	"inkwell/pkg/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id string) (*models.Category, error)
	GetByIDs(ids []string) ([]*models.Category, error)
	List(limit, offset int) ([]*models.Category, int64, error)
	Update(category *models.Category) error
	Delete(id string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetByIDs(ids []string) ([]*models.Category, error) {
	var categories []*models.Category
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) List(limit, offset int) ([]*models.Category, int64, error) {
	var total int64
	if err := r.db.Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []*models.Category
	query := r.db.Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *categoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Delete(id string) error {
	// No cascade: works keep their category_id reference
	return r.db.Delete(&models.Category{}, "id = ?", id).Error
}
