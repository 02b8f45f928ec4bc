package handlers

import (
	"errors"
	"net/http"
	"restaurant_pos/internal/middleware"
	"restaurant_pos/internal/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EstablishmentHandler struct {
	estService services.EstablishmentService
}

func NewEstablishmentHandler(estService services.EstablishmentService) *EstablishmentHandler {
	return &EstablishmentHandler{estService: estService}
}

// Get returns the resolved establishment; unscoped requests fall back to
// the first one for single-tenant installs.
func (h *EstablishmentHandler) Get(c *gin.Context) {
	est, err := h.estService.Get(middleware.EstablishmentID(c))
	if err != nil {
		if errors.Is(err, services.ErrEstablishmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Establishment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, est)
}

func (h *EstablishmentHandler) Create(c *gin.Context) {
	var input services.EstablishmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	est, err := h.estService.Create(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, est)
}

// Update mutates one establishment. Admins may only touch their own tenant.
func (h *EstablishmentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	establishmentID := middleware.EstablishmentID(c)
	if establishmentID == nil || *establishmentID != uint(id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Resource does not belong to your establishment"})
		return
	}

	var input services.EstablishmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	est, err := h.estService.Update(uint(id), input)
	if err != nil {
		if errors.Is(err, services.ErrEstablishmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Establishment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, est)
}
