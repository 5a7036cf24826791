package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ms-catering/internal/logger"
	"ms-catering/internal/menu"
	"ms-catering/internal/models"
)

type Handler struct {
	Menu   *menu.MenuService
	Logger *logger.Logger
}

func NewHandler(svc *menu.MenuService, log *logger.Logger) *Handler {
	return &Handler{Menu: svc, Logger: log}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, menu.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "menu item not found"})
	case errors.Is(err, menu.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid menu item", "error": err.Error()})
	default:
		h.Logger.Error("MENU", "menu operation failed: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

// ListItems is public: the storefront renders the menu without a token.
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.Menu.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.Menu.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req models.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "error": err.Error()})
		return
	}

	item, err := h.Menu.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req models.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "error": err.Error()})
		return
	}

	item, err := h.Menu.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.Menu.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
}
