package handlers

import (
	"net/http"
	"strconv"

	"github.com/alligatorO15/fin-lists/internal/api/middleware"
	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/alligatorO15/fin-lists/internal/service"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c *gin.Context) {
	var recordType *models.RecordType
	if raw := c.Query("record_type"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record_type"})
			return
		}
		t := models.RecordType(v)
		recordType = &t
	}

	categories, err := h.categoryService.List(c.Request.Context(), middleware.GetUserID(c), recordType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
