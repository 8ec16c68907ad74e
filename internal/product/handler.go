package product

import (
	"errors"
	"net/http"
	"strconv"

	"ebuy-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func parsePage(c *gin.Context) (int32, int32) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 32)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 32)
	return int32(page), int32(limit)
}

func parseFilters(c *gin.Context) Filters {
	var f Filters

	if v := c.Query("category"); v != "" {
		f.Category = utils.StrPtr(v)
	}
	if v := c.Query("condition"); v != "" {
		f.Condition = utils.StrPtr(v)
	}
	if v := c.Query("status"); v != "" {
		st := Status(v)
		f.Status = &st
	}
	if v := c.Query("search"); v != "" {
		f.Search = utils.StrPtr(v)
	}
	if v := c.Query("minPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MinPrice = &d
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MaxPrice = &d
		}
	}

	return f
}

func (h *Handler) List(c *gin.Context) {
	page, limit := parsePage(c)

	result, err := h.svc.List(c.Request.Context(), parseFilters(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching products"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching product"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListMine(c *gin.Context) {
	sellerID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	page, limit := parsePage(c)
	opts := SellerListOptions{
		SellerID: sellerID,
		SortBy:   c.DefaultQuery("sortBy", "newest"),
		Page:     page,
		Limit:    limit,
	}
	if v := c.Query("status"); v != "" {
		st := Status(v)
		opts.Status = &st
	}

	result, err := h.svc.ListBySeller(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching seller products"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Create(c *gin.Context) {
	sellerID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), sellerID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error creating product"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, input)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrProductInOrders) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "cannot delete product because it is part of existing orders; consider marking it as inactive instead",
			})
			return
		}
		h.writeMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	p, err := h.svc.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error updating product"})
	}
}
