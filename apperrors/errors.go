package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes surfaced to clients
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeForbidden  = "FORBIDDEN"
	CodeDatabase   = "DATABASE_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// Error is an application error carrying the HTTP status and a
// machine-readable code alongside the message
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Validation reports bad input: missing or invalid field, empty cart,
// invalid quantity. Maps to 400.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: message}
}

// NotFound reports an unknown user, role, or record reference. Maps to 404.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// NotFoundWithCode is NotFound with a caller-chosen code, for endpoints that
// distinguish what was missing (e.g. USER_NOT_FOUND)
func NotFoundWithCode(code, message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: code, Message: message}
}

// Forbidden reports a role-gate denial. Maps to 403.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

// Database reports a store failure. Maps to 500.
func Database(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeDatabase, Message: message}
}

// Respond writes err to the client in the standard response envelope.
// Unrecognized errors are reported as a 500 without leaking details.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "An unexpected error occurred"}
	}

	c.JSON(appErr.Status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
