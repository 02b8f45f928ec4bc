package services

import (
	"errors"
	"fmt"
	"log"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/redis"
	"restaurant_pos/internal/repository"
	"time"

	"gorm.io/gorm"
)

type ProductInput struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"gte=0"`
	Image        string  `json:"image"`
	IsHighlight  bool    `json:"is_highlight"`
	CategoryID   *uint   `json:"category_id"`
	CategoryName string  `json:"category"`
}

type MenuService interface {
	ListProducts(establishmentID *uint) ([]models.Product, error)
	CreateProduct(establishmentID *uint, input ProductInput) (*models.Product, error)
	UpdateProduct(id uint, input ProductInput) (*models.Product, error)
	DeleteProduct(id uint) error
	ListCategories(establishmentID *uint) ([]models.Category, error)
	CreateCategory(establishmentID *uint, name string) (*models.Category, error)
}

type menuService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        *redis.Client
	cacheTTL     time.Duration
}

func NewMenuService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) MenuService {
	return &menuService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

func menuCacheKey(establishmentID *uint) string {
	if establishmentID == nil {
		return "menu:all"
	}
	return fmt.Sprintf("menu:%d", *establishmentID)
}

// ListProducts serves the public menu, cached per establishment since guest
// screens poll it far more often than it changes.
func (s *menuService) ListProducts(establishmentID *uint) ([]models.Product, error) {
	key := menuCacheKey(establishmentID)
	if s.cache != nil {
		var cached []models.Product
		err := s.cache.GetCached(key, &cached)
		if err == nil {
			return cached, nil
		}
		if !redis.IsMiss(err) {
			log.Printf("menu service: cache read failed: %v", err)
		}
	}

	products, err := s.productRepo.GetAll(establishmentID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Cache(key, products, s.cacheTTL); err != nil {
			log.Printf("menu service: cache write failed: %v", err)
		}
	}
	return products, nil
}

func (s *menuService) CreateProduct(establishmentID *uint, input ProductInput) (*models.Product, error) {
	categoryID, err := s.resolveCategory(establishmentID, input)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		Image:           input.Image,
		IsHighlight:     input.IsHighlight,
		CategoryID:      categoryID,
		EstablishmentID: establishmentID,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	s.invalidate(establishmentID)
	return s.productRepo.GetByID(product.ID)
}

func (s *menuService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	categoryID, err := s.resolveCategory(product.EstablishmentID, input)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		product.CategoryID = categoryID
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Image != "" {
		product.Image = input.Image
	}
	product.IsHighlight = input.IsHighlight

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.invalidate(product.EstablishmentID)
	return s.productRepo.GetByID(product.ID)
}

func (s *menuService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(product.EstablishmentID)
	return nil
}

func (s *menuService) ListCategories(establishmentID *uint) ([]models.Category, error) {
	return s.categoryRepo.GetAll(establishmentID)
}

func (s *menuService) CreateCategory(establishmentID *uint, name string) (*models.Category, error) {
	category := &models.Category{Name: name, EstablishmentID: establishmentID}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// resolveCategory supports both an explicit category id and a find-or-create
// by name, mirroring how menu editors submit free-text categories.
func (s *menuService) resolveCategory(establishmentID *uint, input ProductInput) (*uint, error) {
	if input.CategoryID != nil {
		return input.CategoryID, nil
	}
	if input.CategoryName == "" {
		return nil, nil
	}

	category, err := s.categoryRepo.GetByName(input.CategoryName, establishmentID)
	if err == nil {
		return &category.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category = &models.Category{Name: input.CategoryName, EstablishmentID: establishmentID}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return &category.ID, nil
}

func (s *menuService) invalidate(establishmentID *uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(menuCacheKey(establishmentID)); err != nil {
		log.Printf("menu service: cache invalidation failed: %v", err)
	}
	if establishmentID != nil {
		if err := s.cache.Invalidate(menuCacheKey(nil)); err != nil {
			log.Printf("menu service: cache invalidation failed: %v", err)
		}
	}
}
