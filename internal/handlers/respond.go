package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"home-horizon/internal/workflow"
)

// fail converts a workflow error into the matching HTTP response. Errors
// outside the taxonomy are logged and surfaced as a generic 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrInvalidInput),
		errors.Is(err, workflow.ErrInvalidState),
		errors.Is(err, workflow.ErrPaymentIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[http] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func internalError(c *gin.Context, err error) {
	log.Printf("[http] internal error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
