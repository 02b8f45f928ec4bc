package services

import (
	"errors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"gorm.io/gorm"
)

type EstablishmentInput struct {
	Name          string   `json:"name" binding:"required"`
	Address       string   `json:"address"`
	Logo          string   `json:"logo"`
	ServiceCharge *float64 `json:"service_charge"`
}

type EstablishmentService interface {
	Get(id *uint) (*models.Establishment, error)
	Create(input EstablishmentInput) (*models.Establishment, error)
	Update(id uint, input EstablishmentInput) (*models.Establishment, error)
}

type establishmentService struct {
	estRepo repository.EstablishmentRepository
}

func NewEstablishmentService(estRepo repository.EstablishmentRepository) EstablishmentService {
	return &establishmentService{estRepo: estRepo}
}

// Get returns the resolved establishment, or the first one when the caller
// is unscoped (single-tenant installs).
func (s *establishmentService) Get(id *uint) (*models.Establishment, error) {
	var (
		est *models.Establishment
		err error
	)
	if id != nil {
		est, err = s.estRepo.GetByID(*id)
	} else {
		est, err = s.estRepo.GetFirst()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstablishmentNotFound
		}
		return nil, err
	}
	return est, nil
}

func (s *establishmentService) Create(input EstablishmentInput) (*models.Establishment, error) {
	serviceCharge := 10.0
	if input.ServiceCharge != nil {
		serviceCharge = *input.ServiceCharge
	}
	est := &models.Establishment{
		Name:          input.Name,
		Address:       input.Address,
		Logo:          input.Logo,
		ServiceCharge: serviceCharge,
	}
	if err := s.estRepo.Create(est); err != nil {
		return nil, err
	}
	return est, nil
}

func (s *establishmentService) Update(id uint, input EstablishmentInput) (*models.Establishment, error) {
	est, err := s.estRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstablishmentNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		est.Name = input.Name
	}
	if input.Address != "" {
		est.Address = input.Address
	}
	if input.Logo != "" {
		est.Logo = input.Logo
	}
	if input.ServiceCharge != nil {
		est.ServiceCharge = *input.ServiceCharge
	}
	if err := s.estRepo.Update(est); err != nil {
		return nil, err
	}
	return est, nil
}
