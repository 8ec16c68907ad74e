package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusReserved Status = "RESERVED"
	StatusSold     Status = "SOLD"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusReserved, StatusSold, StatusInactive:
		return true
	}
	return false
}

type Product struct {
	ID          uuid.UUID       `json:"id"`
	SellerID    uint            `json:"sellerId"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Condition   string          `json:"condition"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	Status      Status          `json:"status"`
	Views       int             `json:"views"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	SellerUsername string `json:"sellerUsername,omitempty"`
	SellerEmail    string `json:"sellerEmail,omitempty"`
}

type CreateProductInput struct {
	Title       string          `json:"title" binding:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	Condition   string          `json:"condition" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Images      []string        `json:"images"`
}

type UpdateProductInput struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Condition   *string          `json:"condition"`
	Category    *string          `json:"category"`
	Images      []string         `json:"images"`
	Status      *Status          `json:"status"`
}

type Filters struct {
	Category  *string
	Condition *string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Status    *Status
	Search    *string
}

type SellerListOptions struct {
	SellerID uint
	Status   *Status
	SortBy   string
	Page     int32
	Limit    int32
}

type ListResult struct {
	Products []*Product `json:"products"`
	Total    int64      `json:"total"`
	Page     int32      `json:"page"`
	LastPage int32      `json:"lastPage"`
}
