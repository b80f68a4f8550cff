package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"storefront-service/common/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors carrying the same code and message, so a wrapped copy of
// a sentinel still satisfies errors.Is against the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Wrap returns a copy of e carrying err as its cause.
func (e *Error) Wrap(err error) *Error {
	return New(e.Code, e.Message, err)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// From converts any error into an *Error. Errors that are not application
// errors become an internal server error wrapping the original.
func From(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer.Wrap(err)
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized       = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden          = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// Storage error types
var (
	ErrStorageUnavailable = New(http.StatusServiceUnavailable, "Storage unavailable", nil)
	ErrStorageCorrupt     = New(http.StatusInternalServerError, "Stored state is corrupt", nil)
)

// Validation error types
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// Session error types. Login and registration failures carry no detail.
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials", nil)
	ErrRegistrationFailed = New(http.StatusBadRequest, "Registration failed", nil)
	ErrNoSession          = New(http.StatusUnauthorized, "No active session", nil)
)

// Cart and catalog error types
var (
	ErrEmptyCart       = New(http.StatusBadRequest, "Cart is empty", nil)
	ErrProductNotFound = New(http.StatusNotFound, "Product not found", nil)
	ErrCheckoutFailed  = New(http.StatusInternalServerError, "Failed to publish checkout event", nil)
)

// ErrorMiddleware renders the last error attached to the gin context.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := From(err)
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error(c, "Request failed", err, zap.Int("status", appErr.Code), zap.String("path", c.Request.URL.Path))
		}
		c.AbortWithStatusJSON(appErr.Code, appErr)
	}
}
