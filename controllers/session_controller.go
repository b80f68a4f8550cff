package controllers

import (
	"net/http"

	apperrors "storefront-service/common/errors"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// SessionController handles HTTP requests for the client's session.
type SessionController struct {
	sessionService services.SessionService
}

// NewSessionController creates a new SessionController.
func NewSessionController(sessionService services.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// GetSession handles GET /api/session. The user is null without a session.
func (sc *SessionController) GetSession(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	user, err := sc.sessionService.Current(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Login handles POST /api/session/login.
func (sc *SessionController) Login(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := sc.sessionService.Login(c.Request.Context(), id, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Register handles POST /api/session/register.
func (sc *SessionController) Register(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := sc.sessionService.Register(c.Request.Context(), id, req.Name, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Logout handles POST /api/session/logout.
func (sc *SessionController) Logout(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	if err := sc.sessionService.Logout(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// UpdateUser handles PATCH /api/session.
func (sc *SessionController) UpdateUser(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := sc.sessionService.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	if user == nil {
		fail(c, apperrors.ErrNoSession)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// IsAdmin handles GET /api/session/admin.
func (sc *SessionController) IsAdmin(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	isAdmin, err := sc.sessionService.IsAdmin(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_admin": isAdmin})
}
