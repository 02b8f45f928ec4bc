package models

import (
	"time"

	"gorm.io/gorm"
)

type TableStatus string

const (
	TableAvailable     TableStatus = "AVAILABLE"
	TableOccupied      TableStatus = "OCCUPIED"
	TableCallingWaiter TableStatus = "CALLING_WAITER"
	TableBillRequested TableStatus = "BILL_REQUESTED"
)

// ValidTableStatus reports whether s is one of the known table states.
func ValidTableStatus(s TableStatus) bool {
	switch s {
	case TableAvailable, TableOccupied, TableCallingWaiter, TableBillRequested:
		return true
	}
	return false
}

type Table struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Number          int            `json:"number" gorm:"not null;uniqueIndex:idx_tables_establishment_number"`
	Status          TableStatus    `json:"status" gorm:"default:'AVAILABLE'"`
	EstablishmentID uint           `json:"establishment_id" gorm:"not null;uniqueIndex:idx_tables_establishment_number"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
