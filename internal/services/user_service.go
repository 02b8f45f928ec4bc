package services

import (
	"errors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin waiter kitchen"`
}

type UserService interface {
	Register(input RegisterInput, establishmentID *uint) (*models.User, error)
	Authenticate(username, password, role string) (*models.User, error)
	GetUsers(establishmentID *uint) ([]models.User, error)
	GetByID(id uint) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(input RegisterInput, establishmentID *uint) (*models.User, error) {
	if _, err := s.userRepo.GetByUsername(input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Name:            input.Name,
		Username:        input.Username,
		Role:            input.Role,
		EstablishmentID: establishmentID,
	}
	if err := user.HashPassword(input.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and, when a role is supplied, enforces
// that the user actually holds it.
func (s *userService) Authenticate(username, password, role string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := user.CheckPassword(password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if role != "" && user.Role != role {
		return nil, ErrInvalidRole
	}
	return user, nil
}

func (s *userService) GetUsers(establishmentID *uint) ([]models.User, error) {
	return s.userRepo.GetAll(establishmentID)
}

func (s *userService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}
