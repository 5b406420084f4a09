// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HTTPError carries a status code with the message returned to clients.
type HTTPError struct {
	Status int
	Msg    string
}

func (e *HTTPError) Error() string { return e.Msg }

// Map converts repo/infra errors into HTTP-friendly errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) *HTTPError {
	if err == nil {
		return nil
	}

	var he *HTTPError
	switch {
	case errors.As(err, &he):
		return he

	case errors.Is(err, gorm.ErrRecordNotFound):
		return &HTTPError{Status: http.StatusNotFound, Msg: "record not found"}

	case errors.Is(err, context.DeadlineExceeded):
		return &HTTPError{Status: http.StatusGatewayTimeout, Msg: "request timed out"}

	case errors.Is(err, context.Canceled):
		return &HTTPError{Status: http.StatusServiceUnavailable, Msg: "request was canceled"}

	default:
		// fallback → bubble up error message for debugging
		return &HTTPError{Status: http.StatusInternalServerError, Msg: err.Error()}
	}
}

// Respond writes the mapped error as a JSON body and aborts the request.
func Respond(c *gin.Context, err error) {
	he := Map(err)
	c.AbortWithStatusJSON(he.Status, gin.H{"error": he.Msg})
}

// InvalidArgument creates a 400 error. Use in the service layer for bad
// input validation.
func InvalidArgument(msg string) error {
	return &HTTPError{Status: http.StatusBadRequest, Msg: msg}
}

// AlreadyExists creates a 409 error.
func AlreadyExists(msg string) error {
	return &HTTPError{Status: http.StatusConflict, Msg: msg}
}

// Unauthorized creates a 401 error.
func Unauthorized(msg string) error {
	return &HTTPError{Status: http.StatusUnauthorized, Msg: msg}
}

// NotFound creates a 404 error.
func NotFound(msg string) error {
	return &HTTPError{Status: http.StatusNotFound, Msg: msg}
}
