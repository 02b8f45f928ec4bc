package services

import (
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/notifications"
	"restaurant_pos/internal/repository"
)

type FeedbackInput struct {
	TableNumber int    `json:"table_number"`
	Rating      int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment     string `json:"comment"`
}

type FeedbackService interface {
	Create(establishmentID *uint, input FeedbackInput) (*models.Feedback, error)
	GetAll(establishmentID *uint) ([]models.Feedback, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	publisher    notifications.Publisher
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, publisher notifications.Publisher) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo, publisher: publisher}
}

func (s *feedbackService) Create(establishmentID *uint, input FeedbackInput) (*models.Feedback, error) {
	feedback := &models.Feedback{
		TableNumber:     input.TableNumber,
		Rating:          input.Rating,
		Comment:         input.Comment,
		EstablishmentID: establishmentID,
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, err
	}

	s.publisher.Emit("feedback_created", map[string]interface{}{
		"feedbackId":  feedback.ID,
		"tableNumber": feedback.TableNumber,
		"rating":      feedback.Rating,
	})
	return feedback, nil
}

func (s *feedbackService) GetAll(establishmentID *uint) ([]models.Feedback, error) {
	return s.feedbackRepo.GetAll(establishmentID)
}
