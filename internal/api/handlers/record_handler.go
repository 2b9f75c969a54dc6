package handlers

import (
	"net/http"

	"github.com/alligatorO15/fin-lists/internal/api/middleware"
	"github.com/alligatorO15/fin-lists/internal/filterquery"
	"github.com/alligatorO15/fin-lists/internal/service"
	"github.com/gin-gonic/gin"
)

type RecordHandler struct {
	recordService service.RecordService
}

func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// List кривые значения фильтра просто игнорируются, 400 тут не бывает
func (h *RecordHandler) List(c *gin.Context) {
	params := filterquery.FromValues(c.Request.URL.Query())

	list, err := h.recordService.List(c.Request.Context(), middleware.GetUserID(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
