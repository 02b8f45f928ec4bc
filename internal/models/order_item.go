package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderItemStatus string

const (
	ItemPending   OrderItemStatus = "PENDING"
	ItemDelivered OrderItemStatus = "DELIVERED"
)

type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	ProductID   *uint           `json:"product_id"`
	Name        string          `json:"name" gorm:"not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       float64         `json:"price" gorm:"not null"` // unit price snapshot at order time
	Status      OrderItemStatus `json:"status" gorm:"default:'PENDING'"`
	Observation string          `json:"observation"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}
