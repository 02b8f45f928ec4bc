package models

import (
	"time"
)

type Feedback struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	TableNumber     int       `json:"table_number"`
	Rating          int       `json:"rating" gorm:"not null"`
	Comment         string    `json:"comment" gorm:"type:text"`
	EstablishmentID *uint     `json:"establishment_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
}
