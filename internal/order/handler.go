package order

import (
	"errors"
	"net/http"

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
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
		return
	}

	o, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) ListPurchases(c *gin.Context) {
	orders, err := h.svc.ListPurchases(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching orders"})
		return
	}

	if orders == nil {
		orders = []*Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) ListSales(c *gin.Context) {
	orders, err := h.svc.ListSales(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching orders"})
		return
	}

	if orders == nil {
		orders = []*Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	o, err := h.svc.UpdateStatus(c.Request.Context(), id, Status(input.Status))
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func writeOrderError(c *gin.Context, err error) {
	var transitionErr *InvalidTransitionError

	switch {
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, ErrInvalidStatus),
		errors.As(err, &transitionErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong"})
	}
}
