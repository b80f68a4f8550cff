package middleware

import (
	"context"
	"net/http"

	"storefront-service/common/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminChecker reports whether a client's session is an administrator.
type AdminChecker interface {
	IsAdmin(ctx context.Context, clientID string) (bool, error)
}

// AdminOnly restricts access to clients whose session has the admin flag.
func AdminOnly(checker AdminChecker, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := GetClientID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		isAdmin, err := checker.IsAdmin(c.Request.Context(), clientID)
		if err != nil {
			log.Error("Admin check failed", zap.String("client_id", clientID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})
			return
		}
		if !isAdmin {
			logger.Warn(c, "Admin access denied", zap.String("client_id", clientID), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}
		c.Next()
	}
}
