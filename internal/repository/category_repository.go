package repository

import (
	"restaurant_pos/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	GetByName(name string, establishmentID *uint) (*models.Category, error)
	GetAll(establishmentID *uint) ([]models.Category, error)
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

func (r *categoryRepository) GetByName(name string, establishmentID *uint) (*models.Category, error) {
	var category models.Category
	query := r.db.Where("name = ?", name)
	if establishmentID != nil {
		query = query.Where("establishment_id = ?", *establishmentID)
	}
	err := query.First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetAll(establishmentID *uint) ([]models.Category, error) {
	var categories []models.Category
	query := r.db.Order("name")
	if establishmentID != nil {
		query = query.Where("establishment_id = ?", *establishmentID)
	}
	err := query.Find(&categories).Error
	return categories, err
}
