package repository

import (
	"restaurant_pos/internal/models"
	"time"

	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateWithItems(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByTable(tableID uint, includePaid bool) ([]models.Order, error)
	GetUnpaidCreatedBefore(tableID uint, cutoff time.Time) ([]models.Order, error)
	GetAll(establishmentID *uint) ([]models.Order, error)
	GetClosedBetween(establishmentID uint, start, end time.Time) ([]models.Order, error)
	Update(order *models.Order) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems persists the order and its items in a single transaction.
func (r *orderRepository) CreateWithItems(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByTable(tableID uint, includePaid bool) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.Preload("Items").Where("table_id = ?", tableID)
	if !includePaid {
		query = query.Where("status <> ?", models.OrderPaid)
	}
	err := query.Order("created_at").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetUnpaidCreatedBefore(tableID uint, cutoff time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("table_id = ? AND status <> ? AND created_at < ?", tableID, models.OrderPaid, cutoff).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetAll(establishmentID *uint) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.Preload("Items")
	if establishmentID != nil {
		query = query.Where("establishment_id = ?", *establishmentID)
	}
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetClosedBetween(establishmentID uint, start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("Table").
		Where("establishment_id = ?", establishmentID).
		Where("status IN ?", []models.OrderStatus{models.OrderPaid, models.OrderDelivered}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}
