package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is created lazily the first time a buyer touches it.
// Each user owns at most one cart.
type Cart struct {
	ID        uuid.UUID `json:"id"`
	UserID    uint      `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartItem carries the product snapshot joined at read time so the
// frontend can render the cart without extra lookups.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	CartID    uuid.UUID `json:"cartId"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`

	Title         string          `json:"title,omitempty"`
	Price         decimal.Decimal `json:"price,omitempty"`
	ProductStock  int             `json:"productStock,omitempty"`
	ProductStatus string          `json:"productStatus,omitempty"`
	SellerID      uint            `json:"sellerId,omitempty"`
}

type CartView struct {
	ID       uuid.UUID       `json:"id"`
	Items    []*CartItem     `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type AddItemInput struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateItemInput uses a pointer so zero is distinguishable from an
// absent field; zero means remove the line.
type UpdateItemInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}
