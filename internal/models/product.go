package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	EstablishmentID *uint     `json:"establishment_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Product struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"not null"`
	Description     string         `json:"description" gorm:"type:text"`
	Price           float64        `json:"price" gorm:"not null"`
	Image           string         `json:"image"`
	IsHighlight     bool           `json:"is_highlight" gorm:"default:false"`
	CategoryID      *uint          `json:"category_id"`
	Category        *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	EstablishmentID *uint          `json:"establishment_id" gorm:"index"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
