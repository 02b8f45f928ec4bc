package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPartial   OrderStatus = "PARTIAL"
	OrderDelivered OrderStatus = "DELIVERED"
	// OrderPaid is terminal: once set, item updates no longer influence it.
	OrderPaid OrderStatus = "PAID"
)

type Order struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	TableID         uint           `json:"table_id" gorm:"not null;index"`
	Table           *Table         `json:"-" gorm:"foreignKey:TableID"`
	EstablishmentID uint           `json:"establishment_id" gorm:"not null;index"`
	Status          OrderStatus    `json:"status" gorm:"default:'PENDING'"`
	Total           float64        `json:"total" gorm:"not null"`
	ServicePaid     bool           `json:"service_paid" gorm:"default:false"`
	ServiceValue    float64        `json:"service_value" gorm:"default:0"`
	Items           []OrderItem    `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// DeriveOrderStatus computes an order's status from its full item set:
// all delivered -> DELIVERED, none delivered -> PENDING, mixed -> PARTIAL.
// Callers skip this rule for PAID orders.
func DeriveOrderStatus(items []OrderItem) OrderStatus {
	if len(items) == 0 {
		return OrderPending
	}
	delivered := 0
	for _, item := range items {
		if item.Status == ItemDelivered {
			delivered++
		}
	}
	switch delivered {
	case 0:
		return OrderPending
	case len(items):
		return OrderDelivered
	}
	return OrderPartial
}
