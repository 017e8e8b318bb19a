package handlers

import (
	"errors"
	"net/http"

	"maternal-care-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Backend never loaded; terminal for the process lifetime
	case errors.Is(err, domain.ErrModelUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrPredictionFailed),
		errors.Is(err, domain.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
