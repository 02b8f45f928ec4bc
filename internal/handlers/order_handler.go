package handlers

import (
	"errors"
	"net/http"
	"restaurant_pos/internal/middleware"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
	guard        *middleware.OwnershipGuard
}

func NewOrderHandler(orderService services.OrderService, guard *middleware.OwnershipGuard) *OrderHandler {
	return &OrderHandler{orderService: orderService, guard: guard}
}

type createOrderRequest struct {
	TableID uint                      `json:"table_id" binding:"required"`
	Items   []services.OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type updateOrderStatusRequest struct {
	Status      models.OrderStatus `json:"status" binding:"required"`
	ServicePaid bool               `json:"service_paid"`
}

type updateItemStatusRequest struct {
	Status models.OrderItemStatus `json:"status" binding:"required"`
}

// CreateOrder handles guest and staff order submission. The table id comes
// from the body, so the ownership check runs here instead of as a route
// middleware.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	establishmentID := middleware.EstablishmentID(c)
	if establishmentID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No establishment associated"})
		return
	}
	if !h.verifyTable(c, req.TableID, *establishmentID) {
		return
	}

	order, err := h.orderService.CreateOrder(*establishmentID, req.TableID, req.Items)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrders lists orders. With a tableId it serves the live ordering screen
// (PAID excluded unless staff asks for it); without one it is staff-only.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if tableIDStr := c.Query("tableId"); tableIDStr != "" {
		tableID, err := strconv.ParseUint(tableIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tableId"})
			return
		}
		// Anonymous callers never see PAID history.
		includePaid := user != nil && c.Query("includePaid") == "true"
		orders, err := h.orderService.GetOrdersByTable(uint(tableID), includePaid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	if user == nil || (user.Role != models.RoleAdmin && user.Role != models.RoleWaiter) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	orders, err := h.orderService.GetAllOrders(middleware.EstablishmentID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ClosedToday reports today's closed orders grouped by table.
func (h *OrderHandler) ClosedToday(c *gin.Context) {
	establishmentID := middleware.EstablishmentID(c)
	if establishmentID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No establishment associated"})
		return
	}

	report, err := h.orderService.ClosedTodayReport(*establishmentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// UpdateStatus applies an order status change. PAID routes through the
// payment path so the service value is computed from the current
// service-charge percentage.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order *models.Order
	if req.Status == models.OrderPaid {
		order, err = h.orderService.MarkPaid(uint(orderID), req.ServicePaid)
	} else {
		switch req.Status {
		case models.OrderPending, models.OrderPartial, models.OrderDelivered:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
			return
		}
		order, err = h.orderService.SetStatus(uint(orderID), req.Status)
	}
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateItemStatus flips one item and returns the refreshed parent order.
func (h *OrderHandler) UpdateItemStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var req updateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case models.ItemPending, models.ItemDelivered:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	order, err := h.orderService.UpdateItemStatus(uint(orderID), uint(itemID), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderItemNotFound), errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
		case errors.Is(err, services.ErrItemAlreadyDelivered):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item already delivered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) verifyTable(c *gin.Context, tableID, establishmentID uint) bool {
	switch err := h.guard.Verify("table", tableID, establishmentID); {
	case err == nil:
		return true
	case errors.Is(err, middleware.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
	case errors.Is(err, middleware.ErrNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": "Resource does not belong to your establishment"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
	return false
}
