package controllers

import (
	"errors"
	"net/http"

	"github.com/faouziesf/cod-manager/services"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Validation
// failures carry the offending field; anything unexpected is logged and
// hidden behind a 500.
func respondError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": vErr.Message,
			"field": vErr.Field,
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, services.ErrStaleOrder):
		c.JSON(http.StatusConflict, gin.H{"error": "The order was modified by someone else, reload and retry"})
	default:
		utils.LogError(err, c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
