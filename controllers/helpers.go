package controllers

import (
	"net/http"

	apperrors "storefront-service/common/errors"
	"storefront-service/middleware"

	"github.com/gin-gonic/gin"
)

// fail hands err to ErrorMiddleware and stops the handler chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// clientID reads the client identity set by ClientMiddleware.
func clientID(c *gin.Context) (string, bool) {
	id, err := middleware.GetClientID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	fail(c, apperrors.ErrInvalidInput.Wrap(err))
}
