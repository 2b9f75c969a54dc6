package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/alligatorO15/fin-lists/internal/reorder"
	"github.com/alligatorO15/fin-lists/internal/service"
	"github.com/gin-gonic/gin"
)

// respondError переводит доменную ошибку в http-статус
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
	case errors.Is(err, models.ErrGroupNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "account group not found"})
	case errors.Is(err, reorder.ErrInvalidEvent),
		errors.Is(err, reorder.ErrUnknownSlot),
		errors.Is(err, reorder.ErrNotDragging),
		errors.Is(err, service.ErrInvalidRecordType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
