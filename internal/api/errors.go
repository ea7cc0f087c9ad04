package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/feed"
)

// Error codes
const (
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeInvalidInput = "INVALID_INPUT"
	CodeInternal     = "INTERNAL"
)

// Error represents an API error with its HTTP mapping
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %s: %s", e.Code, e.Message)
}

// NewNotFound creates a 404-equivalent error
func NewNotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// NewForbidden creates a 403-equivalent error
func NewForbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

// NewInvalidInput creates a 400-equivalent error
func NewInvalidInput(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeInvalidInput, Message: message}
}

// NewInternal creates a 500-equivalent error
func NewInternal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: message}
}

// respondError maps an error to its HTTP response. Unclassified errors are
// reported as Internal without leaking details.
func respondError(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}
	if errors.Is(err, feed.ErrNotFound) {
		apiErr = NewNotFound("content not found")
		c.JSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}
	apiErr = NewInternal("internal server error")
	c.JSON(apiErr.Status, gin.H{"error": apiErr})
}
