package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/domain/repository"
	infraRepo "github.com/ventafarma/ventafarma-api/internal/infrastructure/repository"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/dto/response"
)

// ExtractLaboratoryFromHost extracts the laboratory slug from the subdomain
// e.g., "kiron.ventafarma.com" -> "kiron"
func ExtractLaboratoryFromHost(host string) (string, error) {
	// Remove port if present
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return "", errors.New("invalid subdomain")
	}
	return parts[0], nil
}

// LaboratoryMiddleware resolves the laboratory from the subdomain, or from
// the X-Laboratory header when no subdomain is present, and adds it to the
// request context
func LaboratoryMiddleware(laboratoryRepo repository.LaboratoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		laboratorySlug, err := ExtractLaboratoryFromHost(c.Request.Host)
		if err != nil {
			laboratorySlug = c.GetHeader("X-Laboratory")
		}
		if laboratorySlug == "" {
			// Allow requests without a laboratory; scoped queries fail safe
			c.Set("laboratory_id", uuid.Nil)
			c.Next()
			return
		}

		laboratory, err := laboratoryRepo.GetBySlug(c.Request.Context(), laboratorySlug)
		if err != nil || laboratory == nil {
			response.NotFound(c, "Laboratory not found")
			c.Abort()
			return
		}

		// Validate user membership (if authenticated)
		userIDVal, exists := c.Get("user_id")
		if exists {
			userID, ok := userIDVal.(uuid.UUID)
			if ok && userID != uuid.Nil && !isSuperAdminContext(c) {
				isMember, _ := laboratoryRepo.IsMember(c.Request.Context(), laboratory.ID, userID)
				if !isMember {
					response.Forbidden(c, "Access denied to this laboratory")
					c.Abort()
					return
				}
			}
		}

		// Set laboratory in Gin context (for middleware/handlers)
		c.Set("laboratory_id", laboratory.ID)
		c.Set("laboratory", laboratory)

		// Also set laboratory ID in request context (for services/repositories)
		ctx := infraRepo.WithLaboratory(c.Request.Context(), laboratory.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireLaboratory ensures a valid laboratory context exists
func RequireLaboratory() gin.HandlerFunc {
	return func(c *gin.Context) {
		laboratoryID, exists := c.Get("laboratory_id")
		if !exists {
			response.BadRequest(c, "Laboratory context required")
			c.Abort()
			return
		}

		id, ok := laboratoryID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid laboratory context")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetLaboratoryID retrieves the laboratory ID from gin context
func GetLaboratoryID(c *gin.Context) uuid.UUID {
	laboratoryID, exists := c.Get("laboratory_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := laboratoryID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func isSuperAdminContext(c *gin.Context) bool {
	rolesVal, exists := c.Get("user_roles")
	if !exists {
		return false
	}
	roles, ok := rolesVal.([]string)
	if !ok {
		return false
	}
	for _, role := range roles {
		if role == "super-admin" {
			return true
		}
	}
	return false
}
