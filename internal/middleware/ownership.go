package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"restaurant_pos/internal/models"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNotOwned       = errors.New("resource does not belong to your establishment")
)

// OwnershipGuard verifies that a targeted record belongs to the resolved
// tenant before any mutation runs. Listing endpoints scope their queries
// directly; the guard is reserved for single-record mutate/delete paths.
type OwnershipGuard struct {
	db *gorm.DB
}

func NewOwnershipGuard(db *gorm.DB) *OwnershipGuard {
	return &OwnershipGuard{db: db}
}

// Verify loads the record by kind and id and checks its tenant field. A
// missing record is NotFound; a null or mismatched tenant is Forbidden,
// regardless of the caller's role.
func (g *OwnershipGuard) Verify(kind string, id uint, establishmentID uint) error {
	owner, err := g.loadOwner(kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	if owner == nil || *owner != establishmentID {
		return ErrNotOwned
	}
	return nil
}

func (g *OwnershipGuard) loadOwner(kind string, id uint) (*uint, error) {
	switch kind {
	case "table":
		var table models.Table
		if err := g.db.First(&table, id).Error; err != nil {
			return nil, err
		}
		return &table.EstablishmentID, nil
	case "order":
		var order models.Order
		if err := g.db.First(&order, id).Error; err != nil {
			return nil, err
		}
		return &order.EstablishmentID, nil
	case "product":
		var product models.Product
		if err := g.db.First(&product, id).Error; err != nil {
			return nil, err
		}
		return product.EstablishmentID, nil
	case "category":
		var category models.Category
		if err := g.db.First(&category, id).Error; err != nil {
			return nil, err
		}
		return category.EstablishmentID, nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

// RequireOwnership is the route-level form of the guard: it reads the
// record id from the named path parameter and verifies it against the
// resolved tenant. Stacked after role authorization.
func RequireOwnership(guard *OwnershipGuard, kind, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(param), 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		establishmentID := EstablishmentID(c)
		if establishmentID == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No establishment associated"})
			return
		}

		switch err := guard.Verify(kind, uint(id), *establishmentID); {
		case err == nil:
			c.Next()
		case errors.Is(err, ErrRecordNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s not found", kind)})
		case errors.Is(err, ErrNotOwned):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Resource does not belong to your establishment"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
	}
}
