package handlers

import (
	"net/http"

	"github.com/alligatorO15/fin-lists/internal/api/middleware"
	"github.com/alligatorO15/fin-lists/internal/reorder"
	"github.com/alligatorO15/fin-lists/internal/service"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type moveRequest struct {
	OverID *int64 `json:"over_id"`
}

type dragRequest struct {
	Slots  []reorder.Slot  `json:"slots"`
	Events []reorder.Event `json:"events" binding:"required,min=1,dive"`
}

func (h *AccountHandler) ListGroups(c *gin.Context) {
	groups, err := h.accountService.GetGroups(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *AccountHandler) GetGroup(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}

	group, err := h.accountService.GetGroup(c.Request.Context(), middleware.GetUserID(c), groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// Move команда перестановки; без over_id или с тем же id ничего не меняется
func (h *AccountHandler) Move(c *gin.Context) {
	activeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input moveRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.OverID == nil {
		c.JSON(http.StatusOK, gin.H{"moved": false, "active_id": activeID, "over_id": nil})
		return
	}

	moved, err := h.accountService.MoveAccount(c.Request.Context(), middleware.GetUserID(c), activeID, *input.OverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": moved, "active_id": activeID, "over_id": *input.OverID})
}

// Drag проигрывает жест, записанный клиентом, через ту же сессию, что и клавиатура
func (h *AccountHandler) Drag(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input dragRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.accountService.Drag(c.Request.Context(), middleware.GetUserID(c), groupID, input.Slots, input.Events)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
