package services

import (
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/notifications"
	"restaurant_pos/internal/repository"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newTableService(t *testing.T, db *gorm.DB) TableService {
	t.Helper()
	return NewTableService(
		repository.NewTableRepository(db),
		repository.NewOrderRepository(db),
		repository.NewEstablishmentRepository(db),
		notifications.NewHub(),
	)
}

func seedOrder(t *testing.T, db *gorm.DB, est *models.Establishment, tableID uint, total float64) *models.Order {
	t.Helper()
	order := &models.Order{
		TableID:         tableID,
		EstablishmentID: est.ID,
		Status:          models.OrderPending,
		Total:           total,
		Items:           []models.OrderItem{{Name: "Tab", Quantity: 1, Price: total}},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return order
}

func TestCloseTableSweepsUnpaidOrders(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableOccupied)
	order := seedOrder(t, db, est, table.ID, 100)
	svc := newTableService(t, db)

	status := models.TableAvailable
	updated, orders, err := svc.UpdateTable(table.ID, UpdateTableInput{Status: &status, ServicePaid: true})
	if err != nil {
		t.Fatalf("UpdateTable returned error: %v", err)
	}
	if updated.Status != models.TableAvailable {
		t.Errorf("table status = %v, want AVAILABLE", updated.Status)
	}

	// The full order set comes back, PAID included, with the snapshot.
	if len(orders) != 1 {
		t.Fatalf("len(orders) = %d, want 1", len(orders))
	}
	if orders[0].ID != order.ID || orders[0].Status != models.OrderPaid {
		t.Errorf("order status = %v, want PAID", orders[0].Status)
	}
	if !orders[0].ServicePaid || orders[0].ServiceValue != 10 {
		t.Errorf("serviceValue = %v (paid=%v), want 10 (paid=true)", orders[0].ServiceValue, orders[0].ServicePaid)
	}
}

func TestSeatingSweepsPreviousGuestsOrders(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableAvailable)
	seedOrder(t, db, est, table.ID, 40)
	svc := newTableService(t, db)

	status := models.TableOccupied
	_, orders, err := svc.UpdateTable(table.ID, UpdateTableInput{Status: &status, ServicePaid: false})
	if err != nil {
		t.Fatalf("UpdateTable returned error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("len(orders) = %d, want 1", len(orders))
	}
	if orders[0].Status != models.OrderPaid {
		t.Errorf("leftover order status = %v, want PAID (new guest must not inherit it)", orders[0].Status)
	}
	if orders[0].ServiceValue != 0 {
		t.Errorf("serviceValue = %v, want 0 when servicePaid is false", orders[0].ServiceValue)
	}
}

func TestSweepSkipsOrdersCreatedAfterCutoff(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableOccupied)
	svc := newTableService(t, db)

	// Simulate a concurrent order landing after the transition snapshot.
	late := &models.Order{
		TableID:         table.ID,
		EstablishmentID: est.ID,
		Status:          models.OrderPending,
		Total:           25,
		CreatedAt:       time.Now().Add(time.Hour),
	}
	if err := db.Create(late).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	status := models.TableAvailable
	_, _, err := svc.UpdateTable(table.ID, UpdateTableInput{Status: &status, ServicePaid: true})
	if err != nil {
		t.Fatalf("UpdateTable returned error: %v", err)
	}

	var fresh models.Order
	if err := db.First(&fresh, late.ID).Error; err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if fresh.Status == models.OrderPaid {
		t.Error("order created after the cutoff was swept, want it untouched")
	}
}

func TestSweepDoesNotRetouchPaidOrders(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableOccupied)
	order := seedOrder(t, db, est, table.ID, 100)
	svc := newTableService(t, db)

	available := models.TableAvailable
	occupied := models.TableOccupied

	if _, _, err := svc.UpdateTable(table.ID, UpdateTableInput{Status: &available, ServicePaid: true}); err != nil {
		t.Fatalf("UpdateTable returned error: %v", err)
	}

	// Reseat and close again with no new orders; the earlier closure must
	// keep its snapshot even though servicePaid now differs.
	if _, _, err := svc.UpdateTable(table.ID, UpdateTableInput{Status: &occupied, ServicePaid: false}); err != nil {
		t.Fatalf("UpdateTable returned error: %v", err)
	}
	if _, _, err := svc.UpdateTable(table.ID, UpdateTableInput{Status: &available, ServicePaid: false}); err != nil {
		t.Fatalf("UpdateTable returned error: %v", err)
	}

	var fresh models.Order
	if err := db.First(&fresh, order.ID).Error; err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if fresh.ServiceValue != 10 || !fresh.ServicePaid {
		t.Errorf("serviceValue = %v (paid=%v), want the original 10 (paid=true)", fresh.ServiceValue, fresh.ServicePaid)
	}
}

func TestEmptyTableRoundTrip(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableAvailable)
	svc := newTableService(t, db)

	occupied := models.TableOccupied
	available := models.TableAvailable

	if _, _, err := svc.UpdateTable(table.ID, UpdateTableInput{Status: &occupied}); err != nil {
		t.Fatalf("UpdateTable returned error: %v", err)
	}
	_, orders, err := svc.UpdateTable(table.ID, UpdateTableInput{Status: &available})
	if err != nil {
		t.Fatalf("UpdateTable returned error: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("len(orders) = %d, want 0 for a table with no orders", len(orders))
	}
}

func TestPlainTransitionHasNoSideEffects(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableOccupied)
	order := seedOrder(t, db, est, table.ID, 60)
	svc := newTableService(t, db)

	updated, err := svc.SetStatus(table.ID, models.TableCallingWaiter, false)
	if err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}
	if updated.Status != models.TableCallingWaiter {
		t.Errorf("table status = %v, want CALLING_WAITER", updated.Status)
	}

	var fresh models.Order
	if err := db.First(&fresh, order.ID).Error; err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if fresh.Status != models.OrderPending {
		t.Errorf("order status = %v, want PENDING (attention flags do not close orders)", fresh.Status)
	}
}

func TestDuplicateTableNumberConflict(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	other := &models.Establishment{Name: "other-house", ServiceCharge: 10}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("failed to seed establishment: %v", err)
	}
	svc := newTableService(t, db)

	if _, err := svc.CreateTable(est.ID, 5, models.TableAvailable); err != nil {
		t.Fatalf("CreateTable returned error: %v", err)
	}
	if _, err := svc.CreateTable(est.ID, 5, models.TableAvailable); err != ErrDuplicateTableNumber {
		t.Errorf("err = %v, want ErrDuplicateTableNumber", err)
	}
	// Same number under a different establishment is fine.
	if _, err := svc.CreateTable(other.ID, 5, models.TableAvailable); err != nil {
		t.Errorf("CreateTable for other establishment returned error: %v", err)
	}
}

func TestUpdateMissingTable(t *testing.T) {
	db := newTestDB(t)
	seedEstablishment(t, db, 10)
	svc := newTableService(t, db)

	status := models.TableAvailable
	if _, _, err := svc.UpdateTable(99, UpdateTableInput{Status: &status}); err != ErrTableNotFound {
		t.Errorf("err = %v, want ErrTableNotFound", err)
	}
}
