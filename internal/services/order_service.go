package services

import (
	"errors"
	"log"
	"math"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/notifications"
	"restaurant_pos/internal/repository"
	"time"

	"gorm.io/gorm"
)

// OrderItemInput is one line of a submitted order. Price is the unit price
// snapshot taken by the caller, not a live catalog reference, so historical
// orders are immune to later price edits.
type OrderItemInput struct {
	ProductID   *uint   `json:"product_id"`
	Name        string  `json:"name" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	Observation string  `json:"observation"`
}

// TableReport groups one table's closed orders for the daily report.
type TableReport struct {
	TableNumber int            `json:"table_number"`
	Orders      []models.Order `json:"orders"`
	Total       float64        `json:"total"`
}

type OrderService interface {
	CreateOrder(establishmentID, tableID uint, items []OrderItemInput) (*models.Order, error)
	UpdateItemStatus(orderID, itemID uint, status models.OrderItemStatus) (*models.Order, error)
	MarkPaid(orderID uint, servicePaid bool) (*models.Order, error)
	SetStatus(orderID uint, status models.OrderStatus) (*models.Order, error)
	GetOrdersByTable(tableID uint, includePaid bool) ([]models.Order, error)
	GetAllOrders(establishmentID *uint) ([]models.Order, error)
	ClosedTodayReport(establishmentID uint) ([]TableReport, error)
}

type orderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	tableRepo     repository.TableRepository
	estRepo       repository.EstablishmentRepository
	publisher     notifications.Publisher
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	tableRepo repository.TableRepository,
	estRepo repository.EstablishmentRepository,
	publisher notifications.Publisher,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		tableRepo:     tableRepo,
		estRepo:       estRepo,
		publisher:     publisher,
	}
}

// round2 rounds a monetary amount to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateOrder persists a new order with its items in one atomic write and
// emits order_created. Callers are expected to have already put the table in
// OCCUPIED state; see TableService for why that ordering matters.
func (s *orderService) CreateOrder(establishmentID, tableID uint, items []OrderItemInput) (*models.Order, error) {
	table, err := s.tableRepo.GetByID(tableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	total := 0.0
	for _, in := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   in.ProductID,
			Name:        in.Name,
			Quantity:    in.Quantity,
			Price:       in.Price,
			Status:      models.ItemPending,
			Observation: in.Observation,
		})
		total += in.Price * float64(in.Quantity)
	}

	order := &models.Order{
		TableID:         table.ID,
		EstablishmentID: establishmentID,
		Status:          models.OrderPending,
		Total:           round2(total),
		Items:           orderItems,
	}
	if err := s.orderRepo.CreateWithItems(order); err != nil {
		return nil, err
	}

	s.publisher.Emit("order_created", map[string]interface{}{
		"orderId": order.ID,
		"tableId": order.TableID,
	})
	return order, nil
}

// UpdateItemStatus writes the item's new status and recomputes the parent
// order's status from the current full item set. The recomputation is
// skipped when the order is already PAID, which is a one-way override.
func (s *orderService) UpdateItemStatus(orderID, itemID uint, status models.OrderItemStatus) (*models.Order, error) {
	item, err := s.orderItemRepo.GetByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, err
	}
	if item.OrderID != orderID {
		return nil, ErrOrderItemNotFound
	}
	if item.Status == models.ItemDelivered && status != models.ItemDelivered {
		return nil, ErrItemAlreadyDelivered
	}

	item.Status = status
	if err := s.orderItemRepo.Update(item); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.Status != models.OrderPaid {
		items, err := s.orderItemRepo.GetByOrderID(orderID)
		if err != nil {
			return nil, err
		}
		order.Status = models.DeriveOrderStatus(items)
		if err := s.orderRepo.Update(order); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetByID(orderID)
}

// MarkPaid sets the order PAID and snapshots the service value using the
// establishment's service-charge percentage in effect right now. Calling it
// on an already PAID order recomputes the same values.
func (s *orderService) MarkPaid(orderID uint, servicePaid bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	pct := s.serviceChargePercent(order.EstablishmentID)
	order.Status = models.OrderPaid
	order.ServicePaid = servicePaid
	if servicePaid {
		order.ServiceValue = round2(order.Total * pct / 100)
	} else {
		order.ServiceValue = 0
	}
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetStatus writes a non-terminal status directly. Payment goes through
// MarkPaid so the service value is snapshotted alongside it.
func (s *orderService) SetStatus(orderID uint, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	// PAID is terminal: a closed tab keeps its status and service snapshot.
	if order.Status == models.OrderPaid {
		return order, nil
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// serviceChargePercent re-reads the establishment's current percentage. A
// missing establishment yields zero rather than failing the closure.
func (s *orderService) serviceChargePercent(establishmentID uint) float64 {
	est, err := s.estRepo.GetByID(establishmentID)
	if err != nil {
		log.Printf("order service: could not load establishment %d service charge: %v", establishmentID, err)
		return 0
	}
	return est.ServiceCharge
}

// GetOrdersByTable lists a table's orders, excluding PAID by default so
// closed tabs do not resurface on the live ordering screen.
func (s *orderService) GetOrdersByTable(tableID uint, includePaid bool) ([]models.Order, error) {
	return s.orderRepo.GetByTable(tableID, includePaid)
}

func (s *orderService) GetAllOrders(establishmentID *uint) ([]models.Order, error) {
	return s.orderRepo.GetAll(establishmentID)
}

// ClosedTodayReport groups today's PAID and DELIVERED orders by table.
func (s *orderService) ClosedTodayReport(establishmentID uint) ([]TableReport, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)

	orders, err := s.orderRepo.GetClosedBetween(establishmentID, start, end)
	if err != nil {
		return nil, err
	}

	groups := make(map[uint]*TableReport)
	tableOrder := []uint{}
	for _, order := range orders {
		group, ok := groups[order.TableID]
		if !ok {
			number := 0
			if order.Table != nil {
				number = order.Table.Number
			}
			group = &TableReport{TableNumber: number}
			groups[order.TableID] = group
			tableOrder = append(tableOrder, order.TableID)
		}
		group.Orders = append(group.Orders, order)
		group.Total += order.Total
	}

	report := make([]TableReport, 0, len(groups))
	for _, tableID := range tableOrder {
		report = append(report, *groups[tableID])
	}
	return report, nil
}
