package middleware

import (
	"net/http"
	"restaurant_pos/internal/repository"
	"restaurant_pos/pkg/token"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxEstablishmentKey = "establishmentID"

	// TenantHeader and TenantQuery are the explicit tenant hints a client
	// may send; the header wins over everything else.
	TenantHeader = "X-Establishment-Id"
	TenantQuery  = "establishmentId"
)

// ResolveTenant derives the acting establishment for every request, in
// precedence order: explicit header, explicit query parameter, subdomain
// lookup (when enabled), then the authenticated user's home establishment.
// The first hit wins. Resolution never fails the request: a broken hint or
// an unavailable lookup just falls through to the next level.
func ResolveTenant(estRepo repository.EstablishmentRepository, tokens *token.Manager, subdomainTenancy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := parseTenantID(c.GetHeader(TenantHeader)); ok {
			c.Set(ctxEstablishmentKey, id)
			c.Next()
			return
		}

		if id, ok := parseTenantID(c.Query(TenantQuery)); ok {
			c.Set(ctxEstablishmentKey, id)
			c.Next()
			return
		}

		if subdomainTenancy {
			if id, ok := resolveFromHost(c.Request.Host, estRepo); ok {
				c.Set(ctxEstablishmentKey, id)
				c.Next()
				return
			}
		}

		// Last resort: a valid bearer credential carrying a home tenant.
		// Invalid tokens are ignored here; protected routes reject them
		// in Authenticate.
		if credential := bearerToken(c); credential != "" {
			if claims, err := tokens.Validate(credential); err == nil && claims.EstablishmentID != nil {
				c.Set(ctxEstablishmentKey, *claims.EstablishmentID)
			}
		}
		c.Next()
	}
}

func parseTenantID(raw string) (uint, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// resolveFromHost treats the first hostname label as an establishment slug,
// but only when the host has more labels than a bare domain. A failed
// lookup (unknown slug or storage unavailable) falls through silently.
func resolveFromHost(host string, estRepo repository.EstablishmentRepository) (uint, bool) {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return 0, false
	}
	est, err := estRepo.GetByName(labels[0])
	if err != nil {
		return 0, false
	}
	return est.ID, true
}

// EstablishmentID returns the resolved tenant, or nil when resolution came
// up empty. Tenant-optional endpoints (public menu browsing) accept nil and
// fall back to unscoped listings.
func EstablishmentID(c *gin.Context) *uint {
	value, exists := c.Get(ctxEstablishmentKey)
	if !exists {
		return nil
	}
	id, ok := value.(uint)
	if !ok {
		return nil
	}
	return &id
}

// RequireEstablishment rejects requests whose tenant could not be resolved.
// Every mutation endpoint sits behind this.
func RequireEstablishment() gin.HandlerFunc {
	return func(c *gin.Context) {
		if EstablishmentID(c) == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No establishment associated"})
			return
		}
		c.Next()
	}
}
