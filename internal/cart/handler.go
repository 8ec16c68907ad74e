package cart

import (
	"errors"
	"net/http"

	"ebuy-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Get(c *gin.Context) {
	view, err := h.svc.GetCart(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching cart"})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) AddItem(c *gin.Context) {
	var input AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	item, err := h.svc.AddItem(c.Request.Context(), input)
	if err != nil {
		writeCartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid cart item id"})
		return
	}

	var input UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	item, err := h.svc.UpdateItemQuantity(c.Request.Context(), id, *input.Quantity)
	if err != nil {
		writeCartError(c, err)
		return
	}

	if item == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid cart item id"})
		return
	}

	if err := h.svc.RemoveItem(c.Request.Context(), id); err != nil {
		writeCartError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error clearing cart"})
		return
	}

	c.Status(http.StatusNoContent)
}

func writeCartError(c *gin.Context, err error) {
	var stockErr *StockError

	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, ErrOwnListing):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, ErrProductUnavailable),
		errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong"})
	}
}
