package controllers

import (
	"errors"
	"net/http"

	"applicant-review-api/services"

	"github.com/gin-gonic/gin"
)

// respondData wraps a payload in the success envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError writes the error envelope: a short machine code plus a
// human-readable message.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":   code,
		"message": message,
	})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an upstream store failure.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, services.ErrConflict):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, services.ErrInvalidScore):
		respondError(c, http.StatusBadRequest, "invalid_score", err.Error())
	case errors.Is(err, services.ErrValidation):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "Unexpected server error")
	}
}

// reviewerFromContext returns the authenticated reviewer name.
func reviewerFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get("reviewerName")
	if !exists {
		return "", false
	}
	name, ok := val.(string)
	return name, ok && name != ""
}
