package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// transitions is the full lifecycle graph. Cancellation is only
// possible before the seller ships.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a single-seller slice of a checkout. The shipping fields
// are snapshotted at checkout time so later address edits never
// rewrite history.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	BuyerID     uint            `json:"buyerId"`
	SellerID    uint            `json:"sellerId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      Status          `json:"status"`

	ShipFullName string    `json:"shipFullName"`
	ShipAddress1 string    `json:"shipAddress1"`
	ShipAddress2 *string   `json:"shipAddress2,omitempty"`
	ShipCity     string    `json:"shipCity"`
	ShipState    string    `json:"shipState"`
	ShipZipCode  string    `json:"shipZipCode"`
	ShipCountry  string    `json:"shipCountry"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Items []*OrderItem `json:"items,omitempty"`

	BuyerUsername  string `json:"buyerUsername,omitempty"`
	SellerUsername string `json:"sellerUsername,omitempty"`
}

// OrderItem keeps the price paid at checkout, independent of later
// listing edits.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"orderId"`
	ProductID uuid.UUID       `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}
