package middleware

import (
	"errors"
	"net/http"
	"regexp"

	"storefront-service/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ClientContextKey = "clientID"
	ClientIDHeader   = "X-Client-ID"
	ClientIDCookie   = "client_id"

	clientCookieMaxAge = 60 * 60 * 24 * 365
)

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ClientMiddleware identifies the browser context a request belongs to. The
// identifier comes from the X-Client-ID header, then the client_id cookie.
// A new identifier is issued as a cookie when neither is present.
func ClientMiddleware(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetHeader(ClientIDHeader)
		if clientID == "" {
			if v, err := c.Cookie(ClientIDCookie); err == nil {
				clientID = v
			}
		}

		if clientID == "" {
			clientID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientIDCookie, clientID, clientCookieMaxAge, "/", "", secureCookie, true)
			logger.Info(c, "Issued client id", zap.String("client_id", clientID))
		}

		if !clientIDPattern.MatchString(clientID) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
			return
		}

		c.Header(ClientIDHeader, clientID)
		c.Set(ClientContextKey, clientID)
		c.Next()
	}
}

// GetClientID extracts the client ID from the Gin context.
func GetClientID(c *gin.Context) (string, error) {
	if id := c.GetString(ClientContextKey); id != "" {
		return id, nil
	}
	return "", errors.New("client ID not found in context")
}
