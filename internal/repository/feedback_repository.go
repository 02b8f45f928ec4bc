package repository

import (
	"restaurant_pos/internal/models"

	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	GetAll(establishmentID *uint) ([]models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *feedbackRepository) GetAll(establishmentID *uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	query := r.db.Order("created_at DESC")
	if establishmentID != nil {
		query = query.Where("establishment_id = ?", *establishmentID)
	}
	err := query.Find(&feedbacks).Error
	return feedbacks, err
}
