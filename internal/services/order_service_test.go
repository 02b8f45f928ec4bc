package services

import (
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/notifications"
	"restaurant_pos/internal/repository"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func newOrderService(t *testing.T, db *gorm.DB, hub *notifications.Hub) OrderService {
	t.Helper()
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewOrderItemRepository(db),
		repository.NewTableRepository(db),
		repository.NewEstablishmentRepository(db),
		hub,
	)
}

func TestCreateOrderComputesTotalAndEmits(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableOccupied)

	hub := notifications.NewHub()
	_, events := hub.Register()
	svc := newOrderService(t, db, hub)

	order, err := svc.CreateOrder(est.ID, table.ID, []OrderItemInput{
		{Name: "Burger", Quantity: 2, Price: 25.5},
		{Name: "Soda", Quantity: 1, Price: 8},
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if order.Total != 59 {
		t.Errorf("Total = %v, want 59", order.Total)
	}
	if order.Status != models.OrderPending {
		t.Errorf("Status = %v, want PENDING", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(order.Items))
	}
	for _, item := range order.Items {
		if item.Status != models.ItemPending {
			t.Errorf("item %q status = %v, want PENDING", item.Name, item.Status)
		}
	}

	select {
	case frame := <-events:
		if !strings.Contains(string(frame), "event: order_created") {
			t.Errorf("expected order_created frame, got %q", frame)
		}
	default:
		t.Error("expected an order_created event to be emitted")
	}
}

func TestCreateOrderUnknownTable(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	svc := newOrderService(t, db, notifications.NewHub())

	if _, err := svc.CreateOrder(est.ID, 999, []OrderItemInput{{Name: "Burger", Quantity: 1, Price: 10}}); err != ErrTableNotFound {
		t.Errorf("err = %v, want ErrTableNotFound", err)
	}
}

func TestUpdateItemStatusAggregation(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableOccupied)
	svc := newOrderService(t, db, notifications.NewHub())

	order, err := svc.CreateOrder(est.ID, table.ID, []OrderItemInput{
		{Name: "Burger", Quantity: 1, Price: 20},
		{Name: "Fries", Quantity: 1, Price: 10},
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	// One item delivered: order becomes PARTIAL.
	refreshed, err := svc.UpdateItemStatus(order.ID, order.Items[0].ID, models.ItemDelivered)
	if err != nil {
		t.Fatalf("UpdateItemStatus returned error: %v", err)
	}
	if refreshed.Status != models.OrderPartial {
		t.Errorf("Status = %v, want PARTIAL", refreshed.Status)
	}

	// Both delivered: order becomes DELIVERED.
	refreshed, err = svc.UpdateItemStatus(order.ID, order.Items[1].ID, models.ItemDelivered)
	if err != nil {
		t.Fatalf("UpdateItemStatus returned error: %v", err)
	}
	if refreshed.Status != models.OrderDelivered {
		t.Errorf("Status = %v, want DELIVERED", refreshed.Status)
	}

	// A delivered item cannot go back to PENDING.
	if _, err := svc.UpdateItemStatus(order.ID, order.Items[0].ID, models.ItemPending); err != ErrItemAlreadyDelivered {
		t.Errorf("err = %v, want ErrItemAlreadyDelivered", err)
	}
}

func TestItemUpdateDoesNotTouchPaidOrder(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableOccupied)
	svc := newOrderService(t, db, notifications.NewHub())

	order, err := svc.CreateOrder(est.ID, table.ID, []OrderItemInput{
		{Name: "Burger", Quantity: 1, Price: 20},
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if _, err := svc.MarkPaid(order.ID, false); err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}

	refreshed, err := svc.UpdateItemStatus(order.ID, order.Items[0].ID, models.ItemDelivered)
	if err != nil {
		t.Fatalf("UpdateItemStatus returned error: %v", err)
	}
	if refreshed.Status != models.OrderPaid {
		t.Errorf("Status = %v, want PAID to stick after item update", refreshed.Status)
	}
}

func TestMarkPaidServiceValue(t *testing.T) {
	tests := []struct {
		name          string
		serviceCharge float64
		total         float64
		servicePaid   bool
		wantValue     float64
	}{
		{"ten percent", 10, 100, true, 10},
		{"rounded to two decimals", 10, 33.33, true, 3.33},
		{"service declined", 10, 100, false, 0},
		{"zero percent", 0, 100, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			est := seedEstablishment(t, db, tt.serviceCharge)
			table := seedTable(t, db, est.ID, 1, models.TableOccupied)
			svc := newOrderService(t, db, notifications.NewHub())

			order, err := svc.CreateOrder(est.ID, table.ID, []OrderItemInput{
				{Name: "Tab", Quantity: 1, Price: tt.total},
			})
			if err != nil {
				t.Fatalf("CreateOrder returned error: %v", err)
			}

			paid, err := svc.MarkPaid(order.ID, tt.servicePaid)
			if err != nil {
				t.Fatalf("MarkPaid returned error: %v", err)
			}
			if paid.Status != models.OrderPaid {
				t.Errorf("Status = %v, want PAID", paid.Status)
			}
			if paid.ServiceValue != tt.wantValue {
				t.Errorf("ServiceValue = %v, want %v", paid.ServiceValue, tt.wantValue)
			}
		})
	}
}

func TestMarkPaidUsesCurrentServiceCharge(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableOccupied)
	svc := newOrderService(t, db, notifications.NewHub())

	order, err := svc.CreateOrder(est.ID, table.ID, []OrderItemInput{
		{Name: "Tab", Quantity: 1, Price: 100},
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	// Mid-day service charge change applies to closures after the change.
	est.ServiceCharge = 12
	if err := db.Save(est).Error; err != nil {
		t.Fatalf("failed to update establishment: %v", err)
	}

	paid, err := svc.MarkPaid(order.ID, true)
	if err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}
	if paid.ServiceValue != 12 {
		t.Errorf("ServiceValue = %v, want 12 (current percentage, not the one at creation)", paid.ServiceValue)
	}
}

func TestMarkPaidIdempotent(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableOccupied)
	svc := newOrderService(t, db, notifications.NewHub())

	order, err := svc.CreateOrder(est.ID, table.ID, []OrderItemInput{
		{Name: "Tab", Quantity: 1, Price: 50},
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	first, err := svc.MarkPaid(order.ID, true)
	if err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}
	second, err := svc.MarkPaid(order.ID, true)
	if err != nil {
		t.Fatalf("second MarkPaid returned error: %v", err)
	}
	if second.Status != models.OrderPaid || second.ServiceValue != first.ServiceValue {
		t.Errorf("second MarkPaid changed outcome: status %v value %v, want PAID %v",
			second.Status, second.ServiceValue, first.ServiceValue)
	}
}

func TestSetStatusDoesNotRevivePaidOrder(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableOccupied)
	svc := newOrderService(t, db, notifications.NewHub())

	order, err := svc.CreateOrder(est.ID, table.ID, []OrderItemInput{
		{Name: "Tab", Quantity: 1, Price: 100},
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if _, err := svc.MarkPaid(order.ID, true); err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}

	for _, status := range []models.OrderStatus{models.OrderPending, models.OrderPartial, models.OrderDelivered} {
		after, err := svc.SetStatus(order.ID, status)
		if err != nil {
			t.Fatalf("SetStatus(%v) returned error: %v", status, err)
		}
		if after.Status != models.OrderPaid {
			t.Errorf("SetStatus(%v) left order in %v, want PAID to be terminal", status, after.Status)
		}
	}

	var fresh models.Order
	if err := db.First(&fresh, order.ID).Error; err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if fresh.Status != models.OrderPaid || !fresh.ServicePaid || fresh.ServiceValue != 10 {
		t.Errorf("closed tab snapshot changed: status %v value %v (paid=%v), want PAID 10 (paid=true)",
			fresh.Status, fresh.ServiceValue, fresh.ServicePaid)
	}
}

func TestMarkPaidMissingOrder(t *testing.T) {
	db := newTestDB(t)
	seedEstablishment(t, db, 10)
	svc := newOrderService(t, db, notifications.NewHub())

	if _, err := svc.MarkPaid(42, true); err != ErrOrderNotFound {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestClosedTodayReportGroupsByTable(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	tableA := seedTable(t, db, est.ID, 3, models.TableOccupied)
	tableB := seedTable(t, db, est.ID, 7, models.TableOccupied)
	svc := newOrderService(t, db, notifications.NewHub())

	for _, seed := range []struct {
		tableID uint
		total   float64
	}{
		{tableA.ID, 40},
		{tableA.ID, 60},
		{tableB.ID, 25},
	} {
		order, err := svc.CreateOrder(est.ID, seed.tableID, []OrderItemInput{
			{Name: "Tab", Quantity: 1, Price: seed.total},
		})
		if err != nil {
			t.Fatalf("CreateOrder returned error: %v", err)
		}
		if _, err := svc.MarkPaid(order.ID, false); err != nil {
			t.Fatalf("MarkPaid returned error: %v", err)
		}
	}
	// Open orders stay out of the report.
	if _, err := svc.CreateOrder(est.ID, tableA.ID, []OrderItemInput{
		{Name: "Open", Quantity: 1, Price: 99},
	}); err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	report, err := svc.ClosedTodayReport(est.ID)
	if err != nil {
		t.Fatalf("ClosedTodayReport returned error: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("len(report) = %d, want 2 tables", len(report))
	}

	byNumber := make(map[int]TableReport)
	for _, group := range report {
		byNumber[group.TableNumber] = group
	}
	if group, ok := byNumber[3]; !ok || len(group.Orders) != 2 || group.Total != 100 {
		t.Errorf("table 3 group = %+v, want 2 orders totalling 100", byNumber[3])
	}
	if group, ok := byNumber[7]; !ok || len(group.Orders) != 1 || group.Total != 25 {
		t.Errorf("table 7 group = %+v, want 1 order totalling 25", byNumber[7])
	}
}

func TestGetOrdersByTableExcludesPaidByDefault(t *testing.T) {
	db := newTestDB(t)
	est := seedEstablishment(t, db, 10)
	table := seedTable(t, db, est.ID, 1, models.TableOccupied)
	svc := newOrderService(t, db, notifications.NewHub())

	open, err := svc.CreateOrder(est.ID, table.ID, []OrderItemInput{{Name: "A", Quantity: 1, Price: 10}})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	closed, err := svc.CreateOrder(est.ID, table.ID, []OrderItemInput{{Name: "B", Quantity: 1, Price: 10}})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if _, err := svc.MarkPaid(closed.ID, false); err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}

	orders, err := svc.GetOrdersByTable(table.ID, false)
	if err != nil {
		t.Fatalf("GetOrdersByTable returned error: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != open.ID {
		t.Errorf("default listing = %d orders, want only the open one", len(orders))
	}

	orders, err = svc.GetOrdersByTable(table.ID, true)
	if err != nil {
		t.Fatalf("GetOrdersByTable returned error: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("includePaid listing = %d orders, want 2", len(orders))
	}
}
