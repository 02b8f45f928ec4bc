package models

import (
	"time"
)

type Establishment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null;uniqueIndex"`
	Address       string    `json:"address"`
	Logo          string    `json:"logo"`
	ServiceCharge float64   `json:"service_charge" gorm:"default:10"` // percent applied at closure time
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
