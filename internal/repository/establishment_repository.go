package repository

import (
	"restaurant_pos/internal/models"

	"gorm.io/gorm"
)

type EstablishmentRepository interface {
	Create(establishment *models.Establishment) error
	GetByID(id uint) (*models.Establishment, error)
	GetByName(name string) (*models.Establishment, error)
	GetFirst() (*models.Establishment, error)
	Update(establishment *models.Establishment) error
}

type establishmentRepository struct {
	db *gorm.DB
}

func NewEstablishmentRepository(db *gorm.DB) EstablishmentRepository {
	return &establishmentRepository{db: db}
}

func (r *establishmentRepository) Create(establishment *models.Establishment) error {
	return r.db.Create(establishment).Error
}

func (r *establishmentRepository) GetByID(id uint) (*models.Establishment, error) {
	var establishment models.Establishment
	err := r.db.First(&establishment, id).Error
	if err != nil {
		return nil, err
	}
	return &establishment, nil
}

func (r *establishmentRepository) GetByName(name string) (*models.Establishment, error) {
	var establishment models.Establishment
	err := r.db.Where("name = ?", name).First(&establishment).Error
	if err != nil {
		return nil, err
	}
	return &establishment, nil
}

func (r *establishmentRepository) GetFirst() (*models.Establishment, error) {
	var establishment models.Establishment
	err := r.db.Order("id").First(&establishment).Error
	if err != nil {
		return nil, err
	}
	return &establishment, nil
}

func (r *establishmentRepository) Update(establishment *models.Establishment) error {
	return r.db.Save(establishment).Error
}
