package repository

import (
	"restaurant_pos/internal/models"

	"gorm.io/gorm"
)

type TableRepository interface {
	Create(table *models.Table) error
	GetByID(id uint) (*models.Table, error)
	GetAll(establishmentID *uint) ([]models.Table, error)
	Update(table *models.Table) error
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(table *models.Table) error {
	return r.db.Create(table).Error
}

func (r *tableRepository) GetByID(id uint) (*models.Table, error) {
	var table models.Table
	err := r.db.First(&table, id).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) GetAll(establishmentID *uint) ([]models.Table, error) {
	var tables []models.Table
	query := r.db.Order("number")
	if establishmentID != nil {
		query = query.Where("establishment_id = ?", *establishmentID)
	}
	err := query.Find(&tables).Error
	return tables, err
}

func (r *tableRepository) Update(table *models.Table) error {
	return r.db.Save(table).Error
}
