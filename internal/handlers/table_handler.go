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

type TableHandler struct {
	tableService services.TableService
	guard        *middleware.OwnershipGuard
}

func NewTableHandler(tableService services.TableService, guard *middleware.OwnershipGuard) *TableHandler {
	return &TableHandler{tableService: tableService, guard: guard}
}

type createTableRequest struct {
	Number int                `json:"number" binding:"required"`
	Status models.TableStatus `json:"status"`
}

type setTableStatusRequest struct {
	ID          uint               `json:"id" binding:"required"`
	Status      models.TableStatus `json:"status" binding:"required"`
	ServicePaid bool               `json:"service_paid"`
}

func (h *TableHandler) GetTables(c *gin.Context) {
	tables, err := h.tableService.GetTables(middleware.EstablishmentID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *TableHandler) CreateTable(c *gin.Context) {
	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != "" && !models.ValidTableStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	establishmentID := middleware.EstablishmentID(c)
	if establishmentID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No establishment associated"})
		return
	}

	table, err := h.tableService.CreateTable(*establishmentID, req.Number, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateTableNumber) {
			c.JSON(http.StatusConflict, gin.H{"error": "Table with this number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, table)
}

// UpdateTable changes a table's number and/or status. Status transitions
// with closure side effects return the table's full order set so cashier
// screens can show the final service values.
func (h *TableHandler) UpdateTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var input services.UpdateTableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Status != nil && !models.ValidTableStatus(*input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	table, orders, err := h.tableService.UpdateTable(uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		case errors.Is(err, services.ErrDuplicateTableNumber):
			c.JSON(http.StatusConflict, gin.H{"error": "Table with this number already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": table, "orders": orders})
}

// SetStatus is the body-addressed status transition used by guest screens
// (call waiter, request bill) and staff dashboards.
func (h *TableHandler) SetStatus(c *gin.Context) {
	var req setTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and status are required"})
		return
	}
	if !models.ValidTableStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	establishmentID := middleware.EstablishmentID(c)
	if establishmentID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No establishment associated"})
		return
	}
	if !h.verifyTable(c, req.ID, *establishmentID) {
		return
	}

	table, err := h.tableService.SetStatus(req.ID, req.Status, req.ServicePaid)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, table)
}

func (h *TableHandler) verifyTable(c *gin.Context, tableID, establishmentID uint) bool {
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
