package checkout

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

func (h *Handler) Checkout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	addressID, err := uuid.Parse(input.AddressID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid address id"})
		return
	}

	summaries, err := h.svc.Checkout(c.Request.Context(), addressID)
	if err != nil {
		writeCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"orders": summaries})
}

func writeCheckoutError(c *gin.Context, err error) {
	switch {
	case isRejection(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, ErrCheckoutTimeout):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "checkout failed"})
	}
}
