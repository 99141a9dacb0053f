package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/resto/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Tenant context keys
const (
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	// HeaderEnabled enables X-Tenant-ID header extraction
	HeaderEnabled bool
	// JWTEnabled enables JWT claim extraction (requires JWT middleware to run first)
	JWTEnabled bool
	// SkipPaths are paths that don't require tenant context
	SkipPaths []string
	// Required determines if tenant context is mandatory
	Required bool
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultTenantConfig returns default tenant middleware configuration
func DefaultTenantConfig() TenantMiddlewareConfig {
	return TenantMiddlewareConfig{
		HeaderEnabled: true,
		JWTEnabled:    true,
		SkipPaths:     []string{"/health", "/healthz", "/ready", "/api/v1/health"},
		Required:      true,
	}
}

// TenantMiddleware extracts tenant information from the request.
// Extraction order: JWT claims > X-Tenant-ID header.
func TenantMiddleware() gin.HandlerFunc {
	return TenantMiddlewareWithConfig(DefaultTenantConfig())
}

// TenantMiddlewareWithConfig returns tenant middleware with custom configuration
func TenantMiddlewareWithConfig(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		var tenantID string

		// JWT claims win over the header so a client cannot act on
		// another tenant by forging X-Tenant-ID
		if cfg.JWTEnabled {
			if jwtTenantID, exists := c.Get(JWTTenantIDKey); exists {
				if tid, ok := jwtTenantID.(string); ok && tid != "" {
					tenantID = tid
				}
			}
		}

		if tenantID == "" && cfg.HeaderEnabled {
			if headerTenantID := c.GetHeader(TenantHeaderKey); headerTenantID != "" {
				tenantID = headerTenantID
			}
		}

		if tenantID != "" {
			if _, err := uuid.Parse(tenantID); err != nil {
				respondUnauthorized(c, "Invalid tenant ID format")
				return
			}
		}

		if tenantID == "" && cfg.Required {
			respondUnauthorized(c, "Tenant identification required")
			return
		}

		if tenantID != "" {
			c.Set(TenantIDKey, tenantID)

			ctx := c.Request.Context()
			log := logger.FromContext(ctx)
			ctx, _ = logger.WithTenantID(ctx, log, tenantID)
			c.Request = c.Request.WithContext(ctx)

			if cfg.Logger != nil {
				cfg.Logger.Debug("Tenant identified", zap.String("tenant_id", tenantID))
			}
		}

		c.Next()
	}
}

// respondUnauthorized sends an unauthorized response
func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_UNAUTHORIZED",
			"message": message,
		},
	})
}

// GetTenantID retrieves the tenant ID from gin.Context
func GetTenantID(c *gin.Context) string {
	if tenantID, exists := c.Get(TenantIDKey); exists {
		if tid, ok := tenantID.(string); ok {
			return tid
		}
	}
	return ""
}

// GetTenantUUID retrieves the tenant ID as UUID from gin.Context
func GetTenantUUID(c *gin.Context) (uuid.UUID, error) {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(tenantID)
}

// MustGetTenantUUID retrieves the tenant ID as UUID or panics if not found.
// Use only in handlers behind the required tenant middleware.
func MustGetTenantUUID(c *gin.Context) uuid.UUID {
	tenantUUID, err := GetTenantUUID(c)
	if err != nil || tenantUUID == uuid.Nil {
		panic("valid tenant_id not found in context")
	}
	return tenantUUID
}

// CanAccessBranch reports whether the authenticated user may operate on the
// given branch. An empty branch list in the claims grants access to all
// branches of the tenant.
func CanAccessBranch(c *gin.Context, branchID uuid.UUID) bool {
	claims := GetJWTClaims(c)
	if claims == nil || len(claims.BranchIDs) == 0 {
		return true
	}
	target := branchID.String()
	for _, id := range claims.BranchIDs {
		if id == target {
			return true
		}
	}
	return false
}

// OptionalTenantMiddleware creates middleware that doesn't require tenant
func OptionalTenantMiddleware() gin.HandlerFunc {
	cfg := DefaultTenantConfig()
	cfg.Required = false
	return TenantMiddlewareWithConfig(cfg)
}
