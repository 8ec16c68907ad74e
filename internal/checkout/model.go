package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is the slice of the buyer's cart the orchestrator works
// from: just the product reference and requested quantity.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

type SummaryItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// OrderSummary is what the buyer gets back for each seller-scoped
// order created by a checkout.
type OrderSummary struct {
	ID          uuid.UUID       `json:"id"`
	SellerID    uint            `json:"sellerId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	Items       []SummaryItem   `json:"items"`
}

type CheckoutInput struct {
	AddressID string `json:"addressId" binding:"required,uuid"`
}
