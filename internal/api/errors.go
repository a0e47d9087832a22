package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/showboard/showboard/pkg/logging"
)

// Error represents an API error
type Error struct {
	Status  int
	Message string
}

// NewError creates a new API error
func NewError(status int, message string) *Error {
	return &Error{
		Status:  status,
		Message: message,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// Validation reports a missing/empty required field or an unknown
// enumerated value.
func Validation(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

// Unauthenticated reports a request with no active session.
func Unauthenticated() *Error {
	return NewError(http.StatusUnauthorized, "Not logged in")
}

// Forbidden reports a session user lacking ownership.
func Forbidden(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

// NotFound reports an absent referenced entity.
func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

// ServerError reports a store or upstream failure.
func ServerError(message string) *Error {
	return NewError(http.StatusInternalServerError, message)
}

// Respond renders an error as the JSON error envelope. Errors outside
// the taxonomy are logged and surface as a generic 500 so no internal
// detail leaks.
func Respond(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}

	logging.GetLogger().Error("Unhandled API error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
