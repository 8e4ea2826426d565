package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DetailResponse is the error body for non-validation failures.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Detail writes {"detail": message} with code.
func Detail(c *gin.Context, code int, message string) {
	c.JSON(code, DetailResponse{Detail: message})
}

// NotFound writes the canonical 404 body.
func NotFound(c *gin.Context) {
	Detail(c, http.StatusNotFound, "Not found.")
}

// Error maps a service error to its response. Field errors become a 400 with
// the per-field map, missing accounts a 404, anything else a 500.
func Error(c *gin.Context, err error) {
	var fe FieldErrors
	switch {
	case errors.As(err, &fe):
		c.JSON(http.StatusBadRequest, fe)
	case errors.Is(err, ErrAccountNotFound):
		NotFound(c)
	default:
		Detail(c, http.StatusInternalServerError, err.Error())
	}
}

// RequestID returns the id set by the logging middleware, generating one when
// the middleware did not run.
func RequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return uuid.New().String()[:8]
}
