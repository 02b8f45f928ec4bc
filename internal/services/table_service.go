package services

import (
	"errors"
	"log"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/notifications"
	"restaurant_pos/internal/repository"
	"time"

	"gorm.io/gorm"
)

// UpdateTableInput carries the mutable table fields plus the servicePaid
// flag, which only matters when the transition closes orders.
type UpdateTableInput struct {
	Number      *int                `json:"number"`
	Status      *models.TableStatus `json:"status"`
	ServicePaid bool                `json:"service_paid"`
}

type TableService interface {
	CreateTable(establishmentID uint, number int, status models.TableStatus) (*models.Table, error)
	GetTables(establishmentID *uint) ([]models.Table, error)
	UpdateTable(id uint, input UpdateTableInput) (*models.Table, []models.Order, error)
	SetStatus(id uint, status models.TableStatus, servicePaid bool) (*models.Table, error)
}

type tableService struct {
	tableRepo repository.TableRepository
	orderRepo repository.OrderRepository
	estRepo   repository.EstablishmentRepository
	publisher notifications.Publisher
}

func NewTableService(
	tableRepo repository.TableRepository,
	orderRepo repository.OrderRepository,
	estRepo repository.EstablishmentRepository,
	publisher notifications.Publisher,
) TableService {
	return &tableService{
		tableRepo: tableRepo,
		orderRepo: orderRepo,
		estRepo:   estRepo,
		publisher: publisher,
	}
}

func (s *tableService) CreateTable(establishmentID uint, number int, status models.TableStatus) (*models.Table, error) {
	if status == "" {
		status = models.TableAvailable
	}
	table := &models.Table{
		Number:          number,
		Status:          status,
		EstablishmentID: establishmentID,
	}
	if err := s.tableRepo.Create(table); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTableNumber
		}
		return nil, err
	}

	s.publisher.Emit("table_created", map[string]interface{}{
		"tableId": table.ID,
		"number":  table.Number,
	})
	return table, nil
}

func (s *tableService) GetTables(establishmentID *uint) ([]models.Table, error) {
	return s.tableRepo.GetAll(establishmentID)
}

// UpdateTable applies a number and/or status change. Two transitions carry a
// side effect: moving to AVAILABLE closes the tab, and AVAILABLE->OCCUPIED
// seats a new guest; both sweep the table's outstanding orders to PAID so a
// new guest never inherits a previous guest's balance. The sweep only
// touches orders created strictly before the transition was processed,
// leaving orders inserted concurrently by a later guest alone.
func (s *tableService) UpdateTable(id uint, input UpdateTableInput) (*models.Table, []models.Order, error) {
	current, err := s.tableRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTableNotFound
		}
		return nil, nil, err
	}

	previousStatus := current.Status
	cutoff := time.Now()

	if input.Number != nil {
		current.Number = *input.Number
	}
	if input.Status != nil {
		current.Status = *input.Status
	}
	if err := s.tableRepo.Update(current); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrDuplicateTableNumber
		}
		return nil, nil, err
	}

	if input.Status != nil {
		s.sweepOnTransition(current, previousStatus, *input.Status, input.ServicePaid, cutoff)
	}

	s.publisher.Emit("table_updated", map[string]interface{}{
		"tableId": current.ID,
		"status":  current.Status,
	})

	// Return the full order set, PAID included, so the caller can display
	// the service values that were just snapshotted.
	orders, err := s.orderRepo.GetByTable(current.ID, true)
	if err != nil {
		return nil, nil, err
	}
	return current, orders, nil
}

// SetStatus is the status-only transition used by staff dashboards.
func (s *tableService) SetStatus(id uint, status models.TableStatus, servicePaid bool) (*models.Table, error) {
	current, err := s.tableRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}

	previousStatus := current.Status
	cutoff := time.Now()

	current.Status = status
	if err := s.tableRepo.Update(current); err != nil {
		return nil, err
	}

	s.sweepOnTransition(current, previousStatus, status, servicePaid, cutoff)

	s.publisher.Emit("table_updated", map[string]interface{}{
		"tableId": current.ID,
		"status":  current.Status,
	})
	return current, nil
}

// sweepOnTransition closes outstanding orders when the transition demands
// it. Any transition into AVAILABLE closes the tab; AVAILABLE->OCCUPIED
// clears a previous guest's leftovers before the new tab starts.
func (s *tableService) sweepOnTransition(table *models.Table, from, to models.TableStatus, servicePaid bool, cutoff time.Time) {
	if to == models.TableAvailable || (from == models.TableAvailable && to == models.TableOccupied) {
		s.sweepOrders(table, servicePaid, cutoff)
	}
}

// sweepOrders marks every non-PAID order created before the cutoff as PAID,
// snapshotting the service value from the establishment's current
// percentage. Closures are best-effort per order: one failed write is
// logged and skipped, it never blocks the rest of the sweep.
func (s *tableService) sweepOrders(table *models.Table, servicePaid bool, cutoff time.Time) {
	orders, err := s.orderRepo.GetUnpaidCreatedBefore(table.ID, cutoff)
	if err != nil {
		log.Printf("table service: failed to list unpaid orders for table %d: %v", table.ID, err)
		return
	}
	if len(orders) == 0 {
		return
	}

	pct := 0.0
	if est, err := s.estRepo.GetByID(table.EstablishmentID); err == nil {
		pct = est.ServiceCharge
	} else {
		log.Printf("table service: could not load establishment %d service charge: %v", table.EstablishmentID, err)
	}

	for i := range orders {
		order := &orders[i]
		order.Status = models.OrderPaid
		order.ServicePaid = servicePaid
		if servicePaid {
			order.ServiceValue = round2(order.Total * pct / 100)
		} else {
			order.ServiceValue = 0
		}
		if err := s.orderRepo.Update(order); err != nil {
			log.Printf("table service: failed to close order %d on table %d: %v", order.ID, table.ID, err)
		}
	}
}
