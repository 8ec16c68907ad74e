package address

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

func (h *Handler) List(c *gin.Context) {
	addrs, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching addresses"})
		return
	}

	if addrs == nil {
		addrs = []*Address{}
	}
	c.JSON(http.StatusOK, addrs)
}

func (h *Handler) Create(c *gin.Context) {
	var input CreateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	addr, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create address"})
		return
	}

	c.JSON(http.StatusCreated, addr)
}

func (h *Handler) SetDefault(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid address id"})
		return
	}

	if err := h.svc.SetDefaultAddress(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error setting default address"})
		return
	}

	c.Status(http.StatusNoContent)
}
