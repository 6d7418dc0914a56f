package handlers

import (
	"errors"
	"net/http"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the error taxonomy onto HTTP statuses in one
// place: validation/conflict/bad credentials 400, denied 403, absent
// entity 404, anything unexpected a generic 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		apperrors.IsConflict(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, apperrors.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// actorFromContext returns the authenticated user placed there by the
// auth middleware.
func actorFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("actor")
	if !exists {
		return nil, false
	}
	actor, ok := value.(*models.User)
	return actor, ok
}

func abortUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
}
